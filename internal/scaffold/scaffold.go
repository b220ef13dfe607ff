package scaffold

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dyluth/noticeboard/internal/config"
	"github.com/sethvargo/go-envconfig"
)

//go:embed templates/*
var templatesFS embed.FS

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Files returns the files init writes, with paths relative to the target directory.
func Files() ([]FileInfo, error) {
	boardYml, err := templatesFS.ReadFile("templates/board.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read board.yml template: %w", err)
	}

	env, err := templatesFS.ReadFile("templates/env.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read .env template: %w", err)
	}

	return []FileInfo{
		{Path: config.DefaultPath, Content: boardYml, Permissions: 0644},
		{Path: ".env.example", Content: env, Permissions: 0644},
	}, nil
}

// CheckExisting returns an error naming every init file already present in dir.
func CheckExisting(dir string) error {
	files, err := Files()
	if err != nil {
		return err
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f.Path)); err == nil {
			existing = append(existing, f.Path)
		}
	}

	if len(existing) == 0 {
		return nil
	}
	return &ExistingError{Files: existing}
}

// ExistingError reports files that init would overwrite.
type ExistingError struct {
	Files []string
}

func (e *ExistingError) Error() string {
	return fmt.Sprintf("already initialized: found %s", strings.Join(e.Files, ", "))
}

// IsExistingError checks if an error is an ExistingError.
func IsExistingError(err error) bool {
	var ee *ExistingError
	return errors.As(err, &ee)
}

// Initialize writes the starter files into dir. Unless force is set, existing
// files are left alone and an ExistingError is returned.
func Initialize(ctx context.Context, dir string, force bool) ([]string, error) {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return nil, err
		}
	}

	files, err := Files()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	written := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(dir, file.Path)
		if err := os.WriteFile(path, file.Content, file.Permissions); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}

	// The template must load cleanly with no environment applied
	configPath := filepath.Join(dir, config.DefaultPath)
	if _, err := config.LoadWithLookuper(ctx, configPath, envconfig.MapLookuper(nil)); err != nil {
		return nil, fmt.Errorf("created %s is invalid: %w", configPath, err)
	}

	return written, nil
}

// PrintSuccess writes the list of created files and next steps.
func PrintSuccess(w io.Writer, written []string) {
	fmt.Fprintln(w, "\n✅ Board client initialized!")
	fmt.Fprintln(w, "\nCreated:")
	for _, path := range written {
		fmt.Fprintf(w, "  ✓ %s\n", path)
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Set api.url in board.yml to your message server")
	fmt.Fprintln(w, "  2. Run 'board list' to see the board")
}

// templateNames lists the embedded templates, for tests.
func templateNames() ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
