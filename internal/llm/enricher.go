package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

// maxEnrichedSuggestions caps how many model suggestions one call may add.
const maxEnrichedSuggestions = 5

// enrichedImpact is the fixed impact line attached to model suggestions,
// since the model's own impact claims are not verifiable.
const enrichedImpact = "Model-suggested improvement"

var suggestionLine = regexp.MustCompile(`^\s*(?:[-*]|\d+[.)])?\s*([A-Za-z][A-Za-z /&-]{0,40}):\s*(.+?)\s*$`)

// Enricher generates additional resume recommendations from a generative
// model. It satisfies the recommendation engine's enrichment interface, so
// the engine never imports this package directly.
type Enricher struct {
	client Client
	tier   ModelTier
}

// NewEnricher creates an enricher over the given client using the default
// model tier.
func NewEnricher(client Client) *Enricher {
	return &Enricher{client: client, tier: TierDefault}
}

// NewEnricherWithTier creates an enricher pinned to a specific model tier.
func NewEnricherWithTier(client Client, tier ModelTier) *Enricher {
	return &Enricher{client: client, tier: tier}
}

// Enrich asks the model for further recommendations beyond the rule-based
// ones. The response must contain at least one parseable suggestion line or
// the call is reported as failed, letting the engine keep its own list.
func (e *Enricher) Enrich(ctx context.Context, profile *types.Profile, atsResult *types.ATSResult) ([]types.Recommendation, error) {
	prompt := buildEnrichmentPrompt(profile, atsResult)

	text, err := e.client.Generate(ctx, prompt, e.tier)
	if err != nil {
		return nil, fmt.Errorf("enrichment call failed: %w", err)
	}

	recs := ParseSuggestions(text)
	if len(recs) == 0 {
		return nil, fmt.Errorf("no parseable suggestions in model response")
	}
	return recs, nil
}

// buildEnrichmentPrompt summarizes the profile and score for the model and
// pins the response format to one "Category: suggestion" line per item.
func buildEnrichmentPrompt(profile *types.Profile, atsResult *types.ATSResult) string {
	var sb strings.Builder

	sb.WriteString("You are a resume coach. Suggest concrete improvements for the resume summarized below.\n\n")

	sb.WriteString("Resume summary:\n")
	fmt.Fprintf(&sb, "- Skills (%d): %s\n", len(profile.Skills), strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&sb, "- Work history entries: %d\n", len(profile.Experience))
	fmt.Fprintf(&sb, "- Total experience: %.1f years\n", profile.TotalExperienceYears)
	if len(profile.Certifications) > 0 {
		fmt.Fprintf(&sb, "- Certifications: %s\n", strings.Join(profile.Certifications, "; "))
	}

	if atsResult != nil {
		fmt.Fprintf(&sb, "- Screening score: %d (%s)\n", atsResult.OverallScore, atsResult.Grade)
		for _, issue := range atsResult.Issues {
			fmt.Fprintf(&sb, "- Flagged: %s\n", issue)
		}
	}

	sb.WriteString("\nIMPORTANT:\n")
	fmt.Fprintf(&sb, "- Return at most %d suggestions.\n", maxEnrichedSuggestions)
	sb.WriteString("- One per line, numbered, in the exact form \"N. Category: suggestion\".\n")
	sb.WriteString("- No markdown, no explanation, no code blocks.\n")

	return sb.String()
}

// ParseSuggestions extracts recommendations from a model response, one per
// "Category: suggestion" line. Lines that do not fit the format are
// ignored, and anything beyond the cap is dropped.
func ParseSuggestions(text string) []types.Recommendation {
	var recs []types.Recommendation

	for _, line := range strings.Split(StripCodeFence(text), "\n") {
		match := suggestionLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		recs = append(recs, types.Recommendation{
			Category:   strings.TrimSpace(match[1]),
			Priority:   types.PriorityMedium,
			Suggestion: strings.TrimSpace(match[2]),
			Impact:     enrichedImpact,
		})
		if len(recs) == maxEnrichedSuggestions {
			break
		}
	}

	return recs
}
