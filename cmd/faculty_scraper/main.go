// Package main provides the entry point for the faculty scraper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faculty_scraper",
	Short: "Extract professor data from university websites",
	Long:  "Faculty Scraper fetches university faculty pages, extracts structured professor records with Gemini, and aggregates them into a per-institution Excel workbook.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
