// Package main provides the entry point for the Resume Genius HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_genius",
	Short: "Resume Genius HTTP API Server",
	Long:  "Resume Genius backs a resume builder: snapshot CRUD, HTML template rendering, PDF export, and AI-assisted text enhancement via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
