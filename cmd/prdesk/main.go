// Package main is the entry point for the prdesk desktop shell.
package main

import (
	"os"

	"github.com/prreview/prdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
