// Package recommend generates prioritized improvement suggestions for a
// resume from fixed rules, optionally enriched by a language model. The
// rule-based path is deterministic and never fails; enrichment is additive
// and falls back to the rules on any error or timeout.
package recommend

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/callen/resume-analyzer/internal/types"
)

// DefaultEnrichTimeout bounds how long an enrichment call may run before
// the rule-based list is returned without it.
const DefaultEnrichTimeout = 15 * time.Second

// Enricher supplies additional recommendations from outside the rule set,
// typically a language model. Implementations must honor the context, but
// the engine does not rely on it: calls are abandoned at the deadline
// either way.
type Enricher interface {
	Enrich(ctx context.Context, profile *types.Profile, atsResult *types.ATSResult) ([]types.Recommendation, error)
}

// Engine produces recommendations for a profile. The zero value is not
// usable; construct with NewEngine or NewEngineWithEnricher.
type Engine struct {
	enricher Enricher
	timeout  time.Duration
}

// NewEngine creates a rule-based engine with no enrichment.
func NewEngine() *Engine {
	return &Engine{timeout: DefaultEnrichTimeout}
}

// NewEngineWithEnricher creates an engine that appends enriched
// recommendations after the rule-based ones. A non-positive timeout falls
// back to DefaultEnrichTimeout.
func NewEngineWithEnricher(enricher Enricher, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	return &Engine{enricher: enricher, timeout: timeout}
}

// Recommend applies the fixed rules in declaration order and sorts the
// result by descending priority. Rules with equal priority keep their
// declaration order, so identical inputs always produce identical output.
func (e *Engine) Recommend(profile *types.Profile, atsResult *types.ATSResult) []types.Recommendation {
	recs := []types.Recommendation{}

	if len(profile.Skills) < 10 {
		recs = append(recs, types.Recommendation{
			Category:   "Skills",
			Priority:   types.PriorityHigh,
			Suggestion: "Add more relevant skills; aim for at least 10 covering your core stack",
			Impact:     "More skill keywords directly improve automated screening and recruiter search",
		})
	}
	if len(profile.Experience) < 2 {
		recs = append(recs, types.Recommendation{
			Category:   "Experience",
			Priority:   types.PriorityHigh,
			Suggestion: "Detail your work history with dated entries for each role",
			Impact:     "Dated entries let screeners compute your experience instead of discarding it",
		})
	}
	if !profile.HasSection("summary") {
		recs = append(recs, types.Recommendation{
			Category:   "Summary",
			Priority:   types.PriorityMedium,
			Suggestion: "Add a professional summary at the top of your resume",
			Impact:     "A summary frames the rest of the document for human reviewers",
		})
	}
	if !profile.HasSection("projects") {
		recs = append(recs, types.Recommendation{
			Category:   "Projects",
			Priority:   types.PriorityMedium,
			Suggestion: "Showcase projects that demonstrate your skills in practice",
			Impact:     "Concrete projects back up the skill list with evidence",
		})
	}
	if len(profile.Certifications) == 0 {
		recs = append(recs, types.Recommendation{
			Category:   "Certifications",
			Priority:   types.PriorityLow,
			Suggestion: "Pursue a certification relevant to your target roles",
			Impact:     "Certifications are easy credibility signals for screeners and recruiters",
		})
	}

	if atsResult != nil {
		for _, issue := range atsResult.Issues {
			recs = append(recs, types.Recommendation{
				Category:   "ATS Optimization",
				Priority:   issuePriority(issue),
				Suggestion: issueSuggestion(issue),
				Impact:     "Directly raises the automated screening score",
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return types.PriorityRank(recs[i].Priority) < types.PriorityRank(recs[j].Priority)
	})
	return recs
}

// RecommendWithEnrichment runs the rules, then asks the enricher for more
// under a hard deadline. Enrichment can only append: any error, timeout, or
// missing enricher leaves the rule-based list unchanged, and enriched items
// duplicating a rule suggestion are dropped.
func (e *Engine) RecommendWithEnrichment(ctx context.Context, profile *types.Profile, atsResult *types.ATSResult) []types.Recommendation {
	recs := e.Recommend(profile, atsResult)
	if e.enricher == nil {
		return recs
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type outcome struct {
		recs []types.Recommendation
		err  error
	}
	// Buffered so an enricher that outlives the deadline can still finish
	// its send and exit.
	done := make(chan outcome, 1)
	go func() {
		enriched, err := e.enricher.Enrich(ctx, profile, atsResult)
		done <- outcome{enriched, err}
	}()

	select {
	case <-ctx.Done():
		return recs
	case result := <-done:
		if result.err != nil {
			return recs
		}
		return mergeRecommendations(recs, result.recs)
	}
}

// mergeRecommendations appends enriched items after the rule-based ones,
// dropping any whose suggestion text already appeared.
func mergeRecommendations(rules, enriched []types.Recommendation) []types.Recommendation {
	seen := make(map[string]bool, len(rules))
	for _, rec := range rules {
		seen[rec.Suggestion] = true
	}

	out := rules
	for _, rec := range enriched {
		if seen[rec.Suggestion] {
			continue
		}
		seen[rec.Suggestion] = true
		out = append(out, rec)
	}
	return out
}

// issuePriority maps a scoring issue to a recommendation priority.
// Formatting and keyword problems block parsing outright, so they outrank
// the rest.
func issuePriority(issue string) string {
	if strings.HasPrefix(issue, "formatting") || strings.HasPrefix(issue, "keywords") {
		return types.PriorityHigh
	}
	return types.PriorityMedium
}

// issueSuggestion turns a "component: detail" issue flag into a standalone
// suggestion sentence.
func issueSuggestion(issue string) string {
	detail := issue
	if _, after, found := strings.Cut(issue, ": "); found {
		detail = after
	}
	if detail == "" {
		return issue
	}
	return strings.ToUpper(detail[:1]) + detail[1:]
}
