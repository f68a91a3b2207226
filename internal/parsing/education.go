package parsing

import (
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

// extractEducation captures each line containing a degree keyword. There is
// no structured parsing of institution or field; the line itself is the
// entry. Duplicate lines collapse to the first occurrence.
func (p *Parser) extractEducation(lines []string) []types.EducationEntry {
	entries := []types.EducationEntry{}
	seen := map[string]struct{}{}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		for _, pattern := range p.degreePatterns {
			match := pattern.FindString(trimmed)
			if match == "" {
				continue
			}
			if _, dup := seen[trimmed]; dup {
				break
			}
			seen[trimmed] = struct{}{}
			entries = append(entries, types.EducationEntry{
				Degree: strings.ToLower(match),
				Line:   trimmed,
			})
			break
		}
	}

	return entries
}

// extractCertifications captures lines mentioning a certification keyword,
// verbatim and deduplicated in first-seen order.
func (p *Parser) extractCertifications(lines []string) []string {
	var certifications []string
	seen := map[string]struct{}{}
	keywords := p.dict.CertificationKeywords()

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, keyword := range keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			if _, dup := seen[trimmed]; !dup {
				seen[trimmed] = struct{}{}
				certifications = append(certifications, trimmed)
			}
			break
		}
	}

	return certifications
}
