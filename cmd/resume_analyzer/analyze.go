package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/callen/resume-analyzer/internal/extract"
	"github.com/callen/resume-analyzer/internal/observability"
	"github.com/callen/resume-analyzer/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more resume files",
	Long:  "Run the full analysis pipeline on resume files: extract text, parse the profile, score ATS compatibility, and generate recommendations. Multiple files are analyzed concurrently.",
	RunE:  runAnalyze,
}

var (
	analyzeFiles  []string
	analyzeFormat string
	analyzeJob    string
	analyzeJobURL string
	analyzeJSON   bool
	analyzePretty bool
	analyzeEnrich bool
)

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeFiles, "file", "f", nil, "Resume file to analyze (repeat for a batch)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Document format override (pdf or docx)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Path to a job description text file to match against")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "Job posting URL to fetch and match against")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit raw JSON")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "Emit boxed summaries instead of the compact report")
	analyzeCmd.Flags().BoolVar(&analyzeEnrich, "enrich", false, "Add model-generated suggestions (requires GEMINI_API_KEY)")

	analyzeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(analyzeCmd)
}

// fileAnalysis is the full analysis of one resume file.
type fileAnalysis struct {
	File            string                 `json:"file"`
	Profile         *types.Profile         `json:"profile"`
	ATS             *types.ATSResult       `json:"ats"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Match           *types.MatchResult     `json:"match,omitempty"`
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if len(analyzeFiles) == 0 {
		return fmt.Errorf("at least one --file is required")
	}
	if analyzeJob != "" && analyzeJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}
	if analyzeJSON && analyzePretty {
		return fmt.Errorf("--json and --pretty are mutually exclusive; provide only one")
	}
	if analyzeFormat != "" && analyzeFormat != extract.FormatPDF && analyzeFormat != extract.FormatDOCX {
		return fmt.Errorf("unsupported --format %q (supported: pdf, docx)", analyzeFormat)
	}

	ctx := context.Background()

	jobText, err := readJobText(ctx, analyzeJob, analyzeJobURL, false)
	if err != nil {
		return err
	}

	pipe, err := newPipeline(ctx, analyzeEnrich)
	if err != nil {
		return err
	}
	defer pipe.close()

	// Analyze the batch concurrently, keeping results in input order.
	results := make([]*fileAnalysis, len(analyzeFiles))
	g, gCtx := errgroup.WithContext(ctx)
	for i, file := range analyzeFiles {
		g.Go(func() error {
			result, err := pipe.analyzeFile(gCtx, file, analyzeFormat, jobText, analyzeEnrich)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printAnalyses(os.Stdout, results, analyzeJSON, analyzePretty)
}

// analyzeFile runs the pipeline on a single resume file.
func (p *pipeline) analyzeFile(ctx context.Context, path, format, jobText string, enrich bool) (*fileAnalysis, error) {
	profile, text, err := p.parseResume(path, format)
	if err != nil {
		return nil, err
	}

	atsResult := p.scorer.Score(profile, text)

	var recs []types.Recommendation
	if enrich {
		recs = p.engine.RecommendWithEnrichment(ctx, profile, atsResult)
	} else {
		recs = p.engine.Recommend(profile, atsResult)
	}

	result := &fileAnalysis{
		File:            path,
		Profile:         profile,
		ATS:             atsResult,
		Recommendations: recs,
	}
	if jobText != "" {
		result.Match = p.matcher.Match(profile, jobText)
	}

	return result, nil
}

// printAnalyses writes results in the requested output mode, in input order.
func printAnalyses(out io.Writer, results []*fileAnalysis, asJSON, pretty bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}

	printer := observability.NewPrinter(out)
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s\n", result.File)

		if pretty {
			printer.PrintProfile(result.Profile)
			printer.PrintATS(result.ATS)
			printer.PrintRecommendations(result.Recommendations)
			if result.Match != nil {
				printer.PrintMatch(result.Match)
			}
			continue
		}

		fmt.Fprintf(out, "  ATS score:   %d/100 (%s)\n", result.ATS.OverallScore, result.ATS.Grade)
		fmt.Fprintf(out, "  Skills:      %d found\n", len(result.Profile.Skills))
		fmt.Fprintf(out, "  Experience:  %.1f years\n", result.Profile.TotalExperienceYears)
		for _, issue := range result.ATS.Issues {
			fmt.Fprintf(out, "  ⚠ %s\n", issue)
		}
		if result.Match != nil {
			fmt.Fprintf(out, "  Job match:   %d/100 (%.0f%% of required skills)\n",
				result.Match.OverallScore, result.Match.SkillMatchPercentage)
		}
		fmt.Fprintf(out, "  Suggestions: %d (use --pretty or --json for details)\n", len(result.Recommendations))
	}

	return nil
}
