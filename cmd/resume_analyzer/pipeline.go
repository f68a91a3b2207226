package main

import (
	"context"
	"fmt"
	"os"

	"github.com/callen/resume-analyzer/internal/ats"
	"github.com/callen/resume-analyzer/internal/config"
	"github.com/callen/resume-analyzer/internal/dictionary"
	"github.com/callen/resume-analyzer/internal/extract"
	"github.com/callen/resume-analyzer/internal/fetch"
	"github.com/callen/resume-analyzer/internal/llm"
	"github.com/callen/resume-analyzer/internal/matching"
	"github.com/callen/resume-analyzer/internal/parsing"
	"github.com/callen/resume-analyzer/internal/recommend"
	"github.com/callen/resume-analyzer/internal/types"
)

// pipeline bundles the analysis components the commands share.
type pipeline struct {
	parser  *parsing.Parser
	scorer  *ats.Scorer
	matcher *matching.Matcher
	engine  *recommend.Engine
	client  llm.Client
}

// newPipeline builds the analysis pipeline. With enrich set, a Gemini client
// is created from the environment and recommendation output gains
// model-generated suggestions.
func newPipeline(ctx context.Context, enrich bool) (*pipeline, error) {
	dict := dictionary.Default()
	p := &pipeline{
		parser:  parsing.NewParser(dict),
		scorer:  ats.NewScorer(),
		matcher: matching.NewMatcher(dict),
		engine:  recommend.NewEngine(),
	}

	if enrich {
		cfg := config.LoadLLMFromEnv()
		if !cfg.Enabled() {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set for --enrich")
		}
		client, err := llm.NewGeminiClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		p.client = client
		p.engine = recommend.NewEngineWithEnricher(llm.NewEnricher(client), cfg.EnrichTimeout)
	}

	return p, nil
}

func (p *pipeline) close() {
	if p.client != nil {
		_ = p.client.Close()
	}
}

// parseResume extracts and parses one resume document, returning the profile
// and the raw text it was parsed from.
func (p *pipeline) parseResume(path, format string) (*types.Profile, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if format == "" {
		format = extract.DetectFormat(path)
	}
	text, err := extract.Extract(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return p.parser.Parse(text), text, nil
}

// readJobText resolves the job description from a text file or a fetched URL.
// Both empty returns an empty string.
func readJobText(ctx context.Context, jobFile, jobURL string, useBrowser bool) (string, error) {
	if jobFile != "" {
		data, err := os.ReadFile(jobFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), nil
	}

	if jobURL != "" {
		posting, err := fetch.JobPosting(ctx, jobURL, &fetch.JobOptions{UseBrowser: useBrowser})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return posting.Text, nil
	}

	return "", nil
}
