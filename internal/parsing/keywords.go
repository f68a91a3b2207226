package parsing

import (
	"sort"
	"strings"
)

const keywordLimit = 20

// identifySections reports which standard resume sections appear in the
// text, by case-insensitive synonym search. Every section name is present
// in the result so callers can distinguish "absent" from "unchecked".
func (p *Parser) identifySections(text string) map[string]bool {
	textLower := strings.ToLower(text)
	sections := map[string]bool{}

	for _, section := range p.dict.Sections() {
		found := false
		for _, synonym := range section.Synonyms {
			if strings.Contains(textLower, synonym) {
				found = true
				break
			}
		}
		sections[section.Name] = found
	}

	return sections
}

// extractKeywords returns the most frequent non-stopword tokens, boosted so
// dictionary skills found in the text outrank generic vocabulary. Ties
// break by first appearance, keeping the output stable for identical input.
func (p *Parser) extractKeywords(text string) []string {
	textLower := strings.ToLower(text)

	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0

	note := func(word string, weight int) {
		if _, ok := firstSeen[word]; !ok {
			firstSeen[word] = order
			order++
		}
		counts[word] += weight
	}

	for _, word := range p.wordPattern.FindAllString(textLower, -1) {
		if len(word) <= 2 || p.dict.IsStopword(word) {
			continue
		}
		note(word, 1)
	}

	for _, term := range p.dict.AllTerms() {
		key := strings.ToLower(term)
		if containsTerm(textLower, key) {
			note(key, 2)
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > keywordLimit {
		words = words[:keywordLimit]
	}
	return words
}
