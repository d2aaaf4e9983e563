// Package main provides the entry point for the FitRate card service CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitrate",
	Short: "FitRate share card service",
	Long:  "FitRate renders outfit score share cards, tracks scan quotas and talks to the FitRate matchmaking backend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
