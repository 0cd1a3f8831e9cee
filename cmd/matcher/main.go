// Package main provides the entry point for the candidate matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matcher",
	Short: "Candidate-requisition match scoring",
	Long:  "Matcher scores structured candidate records against job requisitions: a semantic pre-filter gates cheap rejections, five evaluation dimensions are scored independently, and advisory bias flags are raised for human review.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
