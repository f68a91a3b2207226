// Package types provides type definitions for structured data used throughout the resume-analyzer system.
package types

// ATSResult holds the compatibility score breakdown for one resume.
// It is a pure function of (Profile, raw text) and is recomputed on demand
// rather than treated as independent state.
type ATSResult struct {
	OverallScore    int             `json:"overall_score"`
	Grade           string          `json:"grade"`
	ComponentScores map[string]int  `json:"component_scores"`
	Issues          []string        `json:"issues"`
	Strengths       []string        `json:"strengths,omitempty"`
	DetailedChecks  map[string]bool `json:"detailed_checks,omitempty"`
}

// MatchResult holds the outcome of matching one profile against one job description
type MatchResult struct {
	OverallScore         int                 `json:"overall_score"`
	SimilarityScore      float64             `json:"similarity_score"`
	SkillMatchPercentage float64             `json:"skill_match_percentage"`
	ExperienceMatch      float64             `json:"experience_match"`
	MatchedSkills        []string            `json:"matched_skills"`
	MissingSkills        []string            `json:"missing_skills"`
	CriticalMissing      []string            `json:"critical_missing,omitempty"`
	NiceToHaveMissing    []string            `json:"nice_to_have_missing,omitempty"`
	Recommendation       string              `json:"recommendation"`
	LearningResources    map[string][]string `json:"learning_resources,omitempty"`
}

// Recommendation is a single prioritized improvement suggestion
type Recommendation struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
}

// Recommendation priority levels, ordered from most to least urgent.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityRank maps a priority level to its sort rank (lower sorts first).
// Unknown levels rank last.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
