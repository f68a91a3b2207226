// Package llm - util.go provides shared utilities for model response processing.
package llm

import "strings"

// StripCodeFence removes markdown code fence wrappers from a response.
// Models often fence their output even when instructed not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the opening fence line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		if isLanguageIdentifier(text[:idx]) {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// isLanguageIdentifier reports whether a fence's opening line is a bare
// language tag ("json", "text") rather than content.
func isLanguageIdentifier(line string) bool {
	if len(line) >= 20 {
		return false
	}
	for _, r := range line {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
