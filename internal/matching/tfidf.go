package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z][a-z0-9+#]*`)

// tokenize lowercases text and extracts word tokens, dropping dictionary
// stopwords. Both sides of a match go through this same policy, which is
// what keeps the similarity score symmetric.
func (m *Matcher) tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if m.dict.IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// cosineTFIDF returns the cosine similarity of two token lists under TF-IDF
// weighting over the two-document corpus, in [0, 1]. IDF uses the smoothed
// form ln((1+N)/(1+df))+1 and vectors are L2-normalized, so shared rare
// terms count for more than shared common ones. Either side empty scores 0.
func cosineTFIDF(a, b []string) float64 {
	countsA := termCounts(a)
	countsB := termCounts(b)

	// Accumulate over a sorted vocabulary so the float sum never depends
	// on map iteration order.
	vocab := make([]string, 0, len(countsA)+len(countsB))
	seen := make(map[string]bool, len(countsA)+len(countsB))
	for term := range countsA {
		seen[term] = true
		vocab = append(vocab, term)
	}
	for term := range countsB {
		if !seen[term] {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	var dot, normA, normB float64
	for _, term := range vocab {
		df := 0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		idf := math.Log(3.0/float64(1+df)) + 1

		weightA := float64(countsA[term]) * idf
		weightB := float64(countsB[term]) * idf
		dot += weightA * weightB
		normA += weightA * weightA
		normB += weightB * weightB
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
