package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/callen/resume-analyzer/internal/fetch"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Fetch a job posting and print its main text",
	Long:  "Fetch a job posting URL, strip navigation and application-form noise with platform-aware selectors, and print the remaining text.",
	RunE:  runIngestJob,
}

var (
	ingestURL        string
	ingestOut        string
	ingestUseBrowser bool
	ingestVerbose    bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestJobCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write the text to a file instead of stdout")
	ingestJobCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render in a headless browser when static HTML is too thin")
	ingestJobCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Log each fetch step")

	ingestJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	result, err := fetch.JobPosting(context.Background(), ingestURL, &fetch.JobOptions{
		UseBrowser: ingestUseBrowser,
		Verbose:    ingestVerbose,
	})
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	if ingestOut != "" {
		if err := os.WriteFile(ingestOut, []byte(result.Text), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Saved %d characters to %s (platform: %s)\n", len(result.Text), ingestOut, result.Platform)
		return nil
	}

	fmt.Fprintln(os.Stdout, result.Text)
	return nil
}
