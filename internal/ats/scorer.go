// Package ats scores resumes for Applicant Tracking System compatibility.
// The score is a deterministic weighted sum of five component checks, each
// 0-100, recomputed on demand from the profile and its text.
package ats

import (
	"math"
	"regexp"
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

// Component weights. They must total 1.0.
const (
	formattingWeight  = 0.25
	keywordsWeight    = 0.25
	sectionsWeight    = 0.20
	readabilityWeight = 0.15
	contactWeight     = 0.15
)

// Component score names used as ComponentScores keys.
const (
	ComponentFormatting  = "formatting"
	ComponentKeywords    = "keywords"
	ComponentSections    = "sections"
	ComponentReadability = "readability"
	ComponentContact     = "contact_info"
)

// problematicChars are symbols many tracking systems fail to parse.
var problematicChars = []string{"•", "◆", "★", "→", "©", "®", "™"}

var (
	tablePattern       = regexp.MustCompile(`\|.*\|.*\|`)
	spaceRunPattern    = regexp.MustCompile(` {3,}`)
	bulletLinePattern  = regexp.MustCompile(`^\s*([-*•]|\d+\.)\s`)
	numericDatePattern = regexp.MustCompile(`\d{2}/\d{4}`)
	monthDatePattern   = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}`)
	yearSpanPattern    = regexp.MustCompile(`\d{4}\s*[-–]\s*\d{4}`)
)

// actionVerbs are the strong verbs the achievement check looks for.
var actionVerbs = []string{
	"achieved", "improved", "developed", "created", "managed",
	"led", "increased", "reduced", "implemented", "designed",
	"analyzed", "optimized", "streamlined", "launched", "delivered",
}

var quantifiedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\d+\+`),
	regexp.MustCompile(`\d+[KMB]`),
}

// coreSections are the sections whose presence drives the sections score,
// in reporting order.
var coreSections = []string{"summary", "experience", "education", "skills"}

// Scorer computes ATS compatibility results. It is stateless and safe for
// concurrent use.
type Scorer struct{}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the weighted compatibility result for a profile and its
// text. The same inputs always produce the same result.
func (s *Scorer) Score(profile *types.Profile, rawText string) *types.ATSResult {
	components := map[string]int{
		ComponentFormatting:  checkFormatting(rawText),
		ComponentKeywords:    checkKeywords(profile),
		ComponentSections:    checkSections(profile),
		ComponentReadability: checkReadability(rawText),
		ComponentContact:     checkContact(profile),
	}

	weighted := float64(components[ComponentFormatting])*formattingWeight +
		float64(components[ComponentKeywords])*keywordsWeight +
		float64(components[ComponentSections])*sectionsWeight +
		float64(components[ComponentReadability])*readabilityWeight +
		float64(components[ComponentContact])*contactWeight

	overall := int(math.Round(weighted))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return &types.ATSResult{
		OverallScore:    overall,
		Grade:           GradeFor(overall),
		ComponentScores: components,
		Issues:          identifyIssues(components, profile),
		Strengths:       identifyStrengths(components),
		DetailedChecks:  detailedChecks(rawText),
	}
}

// GradeFor maps a score to its letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// checkFormatting starts at 100 and subtracts for layout features tracking
// systems tend to mangle: decorative symbols, table-like pipe rows, and
// runs of spaces.
func checkFormatting(text string) int {
	score := 100

	for _, ch := range problematicChars {
		if strings.Contains(text, ch) {
			score -= 15
			break
		}
	}
	if tablePattern.MatchString(text) {
		score -= 10
	}
	if spaceRunPattern.MatchString(text) {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// checkKeywords scales with the number of distinct skills found, capped.
func checkKeywords(profile *types.Profile) int {
	switch count := len(profile.Skills); {
	case count >= 15:
		return 100
	case count >= 10:
		return 80
	case count >= 5:
		return 60
	default:
		return 40
	}
}

// checkSections scores the presence of the four core sections equally.
func checkSections(profile *types.Profile) int {
	present := 0
	for _, name := range coreSections {
		if profile.HasSection(name) {
			present++
		}
	}
	return present * 100 / len(coreSections)
}

// checkReadability bands the Flesch reading ease of the text. The ideal
// resume sits between 60 and 70.
func checkReadability(text string) int {
	if strings.TrimSpace(text) == "" {
		return 50
	}

	score := fleschReadingEase(text)
	switch {
	case score >= 60 && score <= 70:
		return 100
	case score >= 50 && score <= 80:
		return 85
	case score >= 40 && score <= 90:
		return 70
	default:
		return 50
	}
}

// checkContact awards an equal share for each contact field present.
func checkContact(profile *types.Profile) int {
	score := 0
	if profile.Contact.Email != "" {
		score += 25
	}
	if profile.Contact.Phone != "" {
		score += 25
	}
	if profile.Contact.LinkedIn != "" {
		score += 25
	}
	if profile.Contact.GitHub != "" {
		score += 25
	}
	return score
}

// identifyIssues emits one flag per component scoring below its threshold,
// in fixed component order so output is reproducible.
func identifyIssues(components map[string]int, profile *types.Profile) []string {
	issues := []string{}

	if components[ComponentFormatting] < 70 {
		issues = append(issues, "formatting: contains elements tracking systems cannot parse; remove special characters, tables, and complex layouts")
	}
	if components[ComponentKeywords] < 60 {
		issues = append(issues, "keywords: too few skills and industry keywords; add more relevant skills")
	}
	if components[ComponentSections] < 70 {
		missing := []string{}
		for _, name := range coreSections {
			if !profile.HasSection(name) {
				missing = append(missing, name)
			}
		}
		issues = append(issues, "sections: missing standard sections: "+strings.Join(missing, ", "))
	}
	if components[ComponentContact] < 70 {
		issues = append(issues, "contact info: incomplete contact information; add email, phone, and professional profiles")
	}

	return issues
}

// identifyStrengths mirrors issues for components scoring 85 or above.
func identifyStrengths(components map[string]int) []string {
	var strengths []string

	ordered := []string{ComponentFormatting, ComponentKeywords, ComponentSections, ComponentReadability, ComponentContact}
	labels := map[string]string{
		ComponentFormatting:  "clean, parseable formatting",
		ComponentKeywords:    "strong skill and keyword coverage",
		ComponentSections:    "well-structured standard sections",
		ComponentReadability: "readable, concise language",
		ComponentContact:     "complete contact information",
	}
	for _, name := range ordered {
		if components[name] >= 85 {
			strengths = append(strengths, labels[name])
		}
	}

	return strengths
}

// detailedChecks runs the supplementary pass/fail checks surfaced alongside
// the component scores.
func detailedChecks(text string) map[string]bool {
	textLower := strings.ToLower(text)

	verbCount := 0
	for _, verb := range actionVerbs {
		if strings.Contains(textLower, verb) {
			verbCount++
		}
	}

	quantified := 0
	for _, pattern := range quantifiedPatterns {
		quantified += len(pattern.FindAllString(text, -1))
	}

	bulletLines := 0
	for _, line := range strings.Split(text, "\n") {
		if bulletLinePattern.MatchString(line) {
			bulletLines++
		}
	}

	dateFormats := 0
	for _, pattern := range []*regexp.Regexp{numericDatePattern, monthDatePattern, yearSpanPattern} {
		if pattern.MatchString(text) {
			dateFormats++
		}
	}

	return map[string]bool{
		"consistent_date_formats": dateFormats <= 1,
		"uses_action_verbs":       verbCount >= 5,
		"quantifies_achievements": quantified >= 3,
		"uses_bullet_points":      bulletLines > 5,
	}
}
