// Package main is the entry point for the content importer CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Tabletop content importer",
	Long:  `Imports class and spell content from the provider's API and HTML channels, merges the channels into canonical records, and prints them as JSON.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(importCmd)
}
