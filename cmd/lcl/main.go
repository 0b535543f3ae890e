// Package main is the entry point for the lcl CLI tool.
package main

import (
	"os"

	"github.com/linux-command-library/lcl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
