// Package main provides the resume analyzer command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume-analyzer",
	Short: "Resume analysis toolkit",
	Long:  "Resume Analyzer extracts text from resume documents, parses structured profiles, scores ATS compatibility, and matches candidates against job postings, as a CLI or a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
