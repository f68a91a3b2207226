// Package parsing turns normalized resume text into a structured Profile.
// Extraction is heuristic: fixed regular expressions and dictionary lookups,
// no trained models. Every function here is total over arbitrary text; the
// worst case is a Profile with empty collections, never an error.
package parsing

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/callen/resume-analyzer/internal/dictionary"
	"github.com/callen/resume-analyzer/internal/types"
)

// Parser extracts structured profiles from resume text. It holds compiled
// patterns and the dictionary tables, carries no per-call state, and is safe
// for concurrent use.
type Parser struct {
	dict *dictionary.Dictionary
	now  func() time.Time

	emailPattern    *regexp.Regexp
	phonePattern    *regexp.Regexp
	linkedinPattern *regexp.Regexp
	githubPattern   *regexp.Regexp
	yearRange       *regexp.Regexp
	monthRange      *regexp.Regexp
	degreePatterns  []*regexp.Regexp
	wordPattern     *regexp.Regexp
}

// NewParser creates a parser over the given dictionary, resolving open-ended
// date ranges against the wall clock.
func NewParser(dict *dictionary.Dictionary) *Parser {
	return NewParserWithClock(dict, time.Now)
}

// NewParserWithClock creates a parser with an injected clock. "Present" and
// "current" range endpoints resolve to the clock's value, which keeps parsing
// deterministic under test.
func NewParserWithClock(dict *dictionary.Dictionary, now func() time.Time) *Parser {
	return &Parser{
		dict:            dict,
		now:             now,
		emailPattern:    regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		phonePattern:    regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		linkedinPattern: regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`),
		githubPattern:   regexp.MustCompile(`(?i)github\.com/[\w-]+`),
		yearRange:       regexp.MustCompile(`(?i)(\d{4})\s*[-–—]\s*(\d{4}|present|current)`),
		monthRange:      regexp.MustCompile(`(?i)([A-Za-z]+\.?\s+\d{4})\s*[-–—]\s*([A-Za-z]+\.?\s+\d{4}|present|current)`),
		degreePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(bachelor|master|phd|doctorate|associate|b\.?s\.?|m\.?s\.?|b\.?a\.?|m\.?a\.?|mba)\b`),
			regexp.MustCompile(`(?i)\b(b\.?tech|m\.?tech|b\.?e\.?|m\.?e\.?)\b`),
		},
		wordPattern: regexp.MustCompile(`\b[a-z][a-z0-9+#]*\b`),
	}
}

// Parse extracts a Profile from resume text. It never fails: text with no
// recognizable structure yields a Profile with empty collections. Calling
// Parse twice on identical text yields identical Profiles as long as the
// clock answer is stable.
func (p *Parser) Parse(text string) *types.Profile {
	profile := &types.Profile{
		RawText:         text,
		Skills:          []string{},
		SkillCategories: map[string][]string{},
		Experience:      []types.ExperienceEntry{},
		Education:       []types.EducationEntry{},
		Sections:        map[string]bool{},
	}
	if strings.TrimSpace(text) == "" {
		for _, section := range p.dict.Sections() {
			profile.Sections[section.Name] = false
		}
		return profile
	}

	lines := strings.Split(text, "\n")

	profile.Contact = p.extractContact(text)
	profile.Skills, profile.SkillCategories = p.extractSkills(text)
	profile.Experience = p.extractExperience(lines)
	profile.Education = p.extractEducation(lines)
	profile.Certifications = p.extractCertifications(lines)
	profile.Sections = p.identifySections(text)
	profile.Keywords = p.extractKeywords(text)
	profile.TotalExperienceYears = totalYears(profile.Experience)

	return profile
}

// totalYears sums entry durations and converts to years, rounded to one
// decimal. Overlapping ranges are summed as-is, not merged.
func totalYears(entries []types.ExperienceEntry) float64 {
	totalMonths := 0
	for _, e := range entries {
		totalMonths += e.DurationMonths
	}
	return math.Round(float64(totalMonths)/12.0*10) / 10
}

// isWordChar reports whether the byte belongs to a word for boundary checks.
func isWordChar(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// containsTerm reports whether term occurs in textLower bounded by
// non-word characters on both sides. Terms may contain spaces and
// punctuation ("machine learning", "c++", "node.js"); both inputs must
// already be lowercase.
func containsTerm(textLower, term string) bool {
	for start := 0; start <= len(textLower)-len(term); {
		idx := strings.Index(textLower[start:], term)
		if idx < 0 {
			return false
		}
		abs := start + idx
		end := abs + len(term)
		beforeOK := abs == 0 || !isWordChar(textLower[abs-1])
		afterOK := end == len(textLower) || !isWordChar(textLower[end])
		if beforeOK && afterOK {
			return true
		}
		start = abs + 1
	}
	return false
}
