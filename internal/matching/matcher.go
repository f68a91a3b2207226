// Package matching scores a resume profile against a free-text job
// description. The overall score blends text similarity, skill overlap, and
// experience fit under fixed weights, and every result is recomputed from
// its inputs on each call.
package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/callen/resume-analyzer/internal/dictionary"
	"github.com/callen/resume-analyzer/internal/parsing"
	"github.com/callen/resume-analyzer/internal/types"
)

// Sub-score weights. They must total 1.0.
const (
	similarityWeight = 0.4
	skillWeight      = 0.4
	experienceWeight = 0.2
)

// criticalWindow is how many characters on each side of a skill mention are
// searched for requirement keywords.
const criticalWindow = 60

// criticalKeywords mark a nearby skill mention as a hard requirement.
var criticalKeywords = []string{"required", "must have", "essential", "mandatory"}

// requirementPatterns pull a minimum-years figure out of a job description.
// The largest number any pattern finds wins.
var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?(?:\s+of)?(?:\s+experience)?`),
	regexp.MustCompile(`(?i)minimum\s+(?:of\s+)?(\d+)\s*years?`),
	regexp.MustCompile(`(?i)at\s+least\s+(\d+)\s*years?`),
}

// Matcher scores profiles against job descriptions. It carries no per-call
// state and is safe for concurrent use.
type Matcher struct {
	dict   *dictionary.Dictionary
	parser *parsing.Parser
}

// NewMatcher creates a Matcher over the given dictionary. Job-side skill
// extraction reuses the resume parser so both documents see the same terms.
func NewMatcher(dict *dictionary.Dictionary) *Matcher {
	return &Matcher{dict: dict, parser: parsing.NewParser(dict)}
}

// Match scores the profile against the job description. The same inputs
// always produce the same result.
func (m *Matcher) Match(profile *types.Profile, jobDescription string) *types.MatchResult {
	similarity := m.computeSimilarity(profile.RawText, jobDescription)
	skillPct, matched, missing := m.computeSkillMatch(profile, jobDescription)
	experience := computeExperienceMatch(profile.TotalExperienceYears, jobDescription)

	weighted := similarity*similarityWeight + skillPct*skillWeight + experience*experienceWeight
	overall := int(math.Round(weighted))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	critical, niceToHave := partitionMissing(missing, jobDescription)

	return &types.MatchResult{
		OverallScore:         overall,
		SimilarityScore:      round2(similarity),
		SkillMatchPercentage: round2(skillPct),
		ExperienceMatch:      round2(experience),
		MatchedSkills:        matched,
		MissingSkills:        missing,
		CriticalMissing:      critical,
		NiceToHaveMissing:    niceToHave,
		Recommendation:       recommendationFor(overall),
		LearningResources:    learningResourcesFor(missing),
	}
}

// computeSimilarity returns the TF-IDF cosine similarity of the two texts
// scaled to 0-100.
func (m *Matcher) computeSimilarity(resumeText, jobText string) float64 {
	return cosineTFIDF(m.tokenize(resumeText), m.tokenize(jobText)) * 100
}

// computeSkillMatch extracts the job's skills with the shared dictionary and
// partitions them against the profile. The percentage is over job skills, so
// an empty job yields 0, never a division error.
func (m *Matcher) computeSkillMatch(profile *types.Profile, jobText string) (float64, []string, []string) {
	jobSkills := m.parser.Skills(jobText)

	matched := []string{}
	missing := []string{}
	for _, skill := range jobSkills {
		if profile.HasSkill(skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	if len(jobSkills) == 0 {
		return 0, matched, missing
	}
	return 100 * float64(len(matched)) / float64(len(jobSkills)), matched, missing
}

// computeExperienceMatch compares profile years against the largest years
// requirement found in the job text. An unstated requirement scores 100 by
// policy, not as a fallback.
func computeExperienceMatch(years float64, jobText string) float64 {
	required := 0
	for _, pattern := range requirementPatterns {
		for _, match := range pattern.FindAllStringSubmatch(jobText, -1) {
			if n, err := strconv.Atoi(match[1]); err == nil && n > required {
				required = n
			}
		}
	}

	if required == 0 {
		return 100
	}
	if years >= float64(required) {
		return 100
	}
	score := 100 * years / float64(required)
	if score < 0 {
		score = 0
	}
	return score
}

// partitionMissing splits missing skills into critical and nice-to-have.
// A skill is critical when a requirement keyword appears near one of its
// mentions; when no skill qualifies, the first three missing skills are
// treated as critical.
func partitionMissing(missing []string, jobText string) (critical, niceToHave []string) {
	jobLower := strings.ToLower(jobText)

	for _, skill := range missing {
		if mentionedAsRequired(jobLower, strings.ToLower(skill)) {
			critical = append(critical, skill)
		} else {
			niceToHave = append(niceToHave, skill)
		}
	}

	if len(critical) == 0 && len(missing) > 0 {
		n := 3
		if len(missing) < n {
			n = len(missing)
		}
		critical = append([]string(nil), missing[:n]...)
		niceToHave = append([]string(nil), missing[n:]...)
	}
	return critical, niceToHave
}

// mentionedAsRequired reports whether any occurrence of the skill sits within
// the critical window of a requirement keyword. Both inputs must already be
// lowercase.
func mentionedAsRequired(jobLower, skillLower string) bool {
	for start := 0; start < len(jobLower); {
		idx := strings.Index(jobLower[start:], skillLower)
		if idx < 0 {
			return false
		}
		abs := start + idx

		lo := abs - criticalWindow
		if lo < 0 {
			lo = 0
		}
		hi := abs + len(skillLower) + criticalWindow
		if hi > len(jobLower) {
			hi = len(jobLower)
		}
		window := jobLower[lo:hi]
		for _, keyword := range criticalKeywords {
			if strings.Contains(window, keyword) {
				return true
			}
		}
		start = abs + 1
	}
	return false
}

// recommendationFor bands the overall score into a fixed verdict string.
func recommendationFor(score int) string {
	switch {
	case score >= 80:
		return "Excellent match! You should definitely apply."
	case score >= 60:
		return "Good match. Consider applying and highlighting relevant skills."
	case score >= 40:
		return "Moderate match. You may need to acquire some skills first."
	default:
		return "Low match. Consider gaining more relevant experience and skills."
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
