package ats

import (
	"strings"
	"unicode"
)

var sentenceEnders = map[rune]bool{'.': true, '!': true, '?': true}

// fleschReadingEase computes the Flesch reading ease of text:
// 206.835 - 1.015*(words/sentences) - 84.6*(syllables/words).
// Higher is easier to read; standard prose lands around 60-70.
func fleschReadingEase(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	asl := float64(len(words)) / float64(sentences)
	asw := float64(syllables) / float64(len(words))
	return 206.835 - 1.015*asl - 84.6*asw
}

// countSentences counts terminator runs, so "done!?" ends one sentence,
// not two. Trailing text without a terminator counts as a sentence.
func countSentences(text string) int {
	count := 0
	inRun := false
	sawText := false
	for _, r := range text {
		if sentenceEnders[r] {
			if !inRun {
				count++
				inRun = true
			}
			sawText = false
			continue
		}
		inRun = false
		if !unicode.IsSpace(r) {
			sawText = true
		}
	}
	if sawText {
		count++
	}
	return count
}

// countSyllables approximates syllables as the number of vowel groups in
// the word, with a floor of one for any word containing a letter.
func countSyllables(word string) int {
	groups := 0
	inGroup := false
	hasLetter := false
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if isVowel(r) {
			if !inGroup {
				groups++
				inGroup = true
			}
		} else {
			inGroup = false
		}
	}
	if groups == 0 && hasLetter {
		return 1
	}
	return groups
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
