// Package main provides the entry point for the fusion engine CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fusion_agent",
	Short: "B2B company fusion engine",
	Long:  "Fusion engine aggregates per-company source documents, extracts a structured company profile, and classifies the company against a three-level industry taxonomy.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
