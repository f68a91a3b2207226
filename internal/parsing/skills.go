package parsing

import (
	"strings"
)

// Skills returns the canonical dictionary skills found in arbitrary text.
// Job descriptions run through this same extraction as resumes, so the two
// sides of a match never disagree about what counts as a skill.
func (p *Parser) Skills(text string) []string {
	skills, _ := p.extractSkills(text)
	return skills
}

// extractSkills scans the text for every dictionary term and returns the
// canonical names found, plus the category buckets. Matches are
// case-insensitive and word-bounded, so "go" does not fire inside "Django".
// Order follows the dictionary, not the document, and the first category
// declaring a term owns it.
func (p *Parser) extractSkills(text string) ([]string, map[string][]string) {
	textLower := strings.ToLower(text)
	skills := []string{}
	categories := map[string][]string{}
	seen := map[string]struct{}{}

	for _, category := range p.dict.Categories() {
		for _, term := range p.dict.Terms(category) {
			key := strings.ToLower(term)
			if _, claimed := seen[key]; claimed {
				continue
			}
			if !containsTerm(textLower, key) {
				continue
			}
			seen[key] = struct{}{}
			canonical := p.dict.Canonical(term)
			skills = append(skills, canonical)
			categories[category] = append(categories[category], canonical)
		}
	}

	return skills, categories
}
