package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"
	// Zone names must resolve on hosts without a zoneinfo database
	_ "time/tzdata"

	"github.com/dyluth/noticeboard/internal/board"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its config when --config is not given.
const DefaultPath = "board.yml"

// Defaults applied before the file and the environment are read.
const (
	DefaultVersion  = "1.0"
	DefaultAPIURL   = "http://localhost:3003"
	DefaultTimeout  = 10 * time.Second
	DefaultTimeZone = "Local"
)

// BoardConfig represents the top-level board.yml configuration
type BoardConfig struct {
	Version string        `yaml:"version"`
	API     APIConfig     `yaml:"api"`
	Variant string        `yaml:"variant" env:"BOARD_VARIANT, overwrite"` // rich or simple
	Display DisplayConfig `yaml:"display"`
}

// APIConfig specifies how to reach the message server
type APIConfig struct {
	URL     string        `yaml:"url" env:"BOARD_API_URL, overwrite"`
	Timeout time.Duration `yaml:"timeout" env:"BOARD_API_TIMEOUT, overwrite"`
}

// DisplayConfig specifies how messages are rendered
type DisplayConfig struct {
	TimeZone string `yaml:"timezone" env:"BOARD_TIMEZONE, overwrite"` // IANA name or "Local"
	Color    bool   `yaml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *BoardConfig {
	return &BoardConfig{
		Version: DefaultVersion,
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: DefaultTimeout,
		},
		Variant: string(board.VariantRich),
		Display: DisplayConfig{
			TimeZone: DefaultTimeZone,
			Color:    true,
		},
	}
}

// Validate performs strict validation on the configuration
func (c *BoardConfig) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported version: %s (expected: %s)", c.Version, DefaultVersion)
	}

	if c.API.URL == "" {
		return fmt.Errorf("api.url is required")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("invalid api.url '%s': %w", c.API.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.url '%s': scheme must be http or https", c.API.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api.url '%s': missing host", c.API.URL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive (got %s)", c.API.Timeout)
	}

	if _, err := board.ParseVariant(c.Variant); err != nil {
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// BoardVariant returns the parsed variant. Call after Validate.
func (c *BoardConfig) BoardVariant() board.Variant {
	v, err := board.ParseVariant(c.Variant)
	if err != nil {
		return board.VariantRich
	}
	return v
}

// Location resolves display.timezone.
func (c *BoardConfig) Location() (*time.Location, error) {
	if c.Display.TimeZone == "" || c.Display.TimeZone == DefaultTimeZone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Display.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid display.timezone '%s': %w", c.Display.TimeZone, err)
	}
	return loc, nil
}

// Load reads board.yml from path, applies BOARD_* environment overrides and validates.
// A missing file is not an error; defaults are used instead.
func Load(ctx context.Context, path string) (*BoardConfig, error) {
	return LoadWithLookuper(ctx, path, envconfig.OsLookuper())
}

// LoadWithLookuper is Load with an explicit environment source.
func LoadWithLookuper(ctx context.Context, path string, lookuper envconfig.Lookuper) (*BoardConfig, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}
