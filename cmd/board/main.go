package main

import (
	"os"

	"github.com/dyluth/noticeboard/cmd/board/commands"
	"github.com/joho/godotenv"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// BOARD_* variables may come from a .env file next to the binary's working dir
	_ = godotenv.Load()

	commands.SetVersionInfo(version, commit, date)

	// Errors are printed directly by the printer package with color formatting
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
