// Package main provides the entry point for the metadata-explorer CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jeffcwolf/metadata-explorer/cmd/metadata-explorer/commands"
	"github.com/jeffcwolf/metadata-explorer/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	// A missing .env is normal.
	_ = godotenv.Load()

	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
