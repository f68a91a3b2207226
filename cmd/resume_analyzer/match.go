package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/callen/resume-analyzer/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against a job posting",
	Long:  "Extract and parse a resume, then score it against a job posting fetched from a URL or read from a text file.",
	RunE:  runMatch,
}

var (
	matchFile       string
	matchJob        string
	matchJobURL     string
	matchJSON       bool
	matchUseBrowser bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchFile, "file", "f", "", "Resume file to match")
	matchCmd.Flags().StringVar(&matchJob, "job", "", "Path to a job description text file")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "Job posting URL to fetch")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Emit raw JSON")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Render the posting in a headless browser when static HTML is too thin")

	matchCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	if (matchJob == "") == (matchJobURL == "") {
		return fmt.Errorf("exactly one of --job or --job-url is required")
	}

	ctx := context.Background()

	jobText, err := readJobText(ctx, matchJob, matchJobURL, matchUseBrowser)
	if err != nil {
		return err
	}

	pipe, err := newPipeline(ctx, false)
	if err != nil {
		return err
	}

	profile, _, err := pipe.parseResume(matchFile, "")
	if err != nil {
		return err
	}

	result := pipe.matcher.Match(profile, jobText)

	if matchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	observability.NewPrinter(os.Stdout).PrintMatch(result)
	return nil
}
