// Package main is the entry point for the foody7-pricing CLI.
package main

import (
	"fmt"
	"os"

	"foody7-pricing/cmd/cli/cmd"
	"foody7-pricing/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
