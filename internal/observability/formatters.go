// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n characters with an ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// PrintProfile outputs a human-readable summary of the parsed resume profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", profile.Contact.Email))
	}
	if profile.Contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", profile.Contact.Phone))
	}
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", profile.TotalExperienceYears))
	sb.WriteString(fmt.Sprintf("Skills:     %d found\n", len(profile.Skills)))
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		count := min(len(profile.Skills), maxItemsToShow)
		sb.WriteString("Top Skills:\n")
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	var present, missing []string
	for _, section := range []string{"summary", "experience", "education", "skills"} {
		if profile.HasSection(section) {
			present = append(present, section)
		} else {
			missing = append(missing, section)
		}
	}
	sb.WriteString(fmt.Sprintf("Sections:   %s\n", strings.Join(present, ", ")))
	if len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:    %s\n", strings.Join(missing, ", ")))
	}

	p.printBox("PARSED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATS outputs the compatibility score with its component breakdown.
func (p *Printer) PrintATS(result *types.ATSResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %d/100 (%s)\n", result.OverallScore, result.Grade))
	sb.WriteString("\n")

	if len(result.ComponentScores) > 0 {
		sb.WriteString("Components:\n")
		for _, name := range []string{"contact", "sections", "skills", "formatting", "readability"} {
			if score, ok := result.ComponentScores[name]; ok {
				sb.WriteString(fmt.Sprintf("  %-12s %d\n", name, score))
			}
		}
		sb.WriteString("\n")
	}

	if len(result.Issues) > 0 {
		sb.WriteString(fmt.Sprintf("Issues (%d):\n", len(result.Issues)))
		count := min(len(result.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", truncate(result.Issues[i], 50)))
		}
		if len(result.Issues) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Issues)-maxItemsToShow))
		}
	} else {
		sb.WriteString("✅ No issues found\n")
	}

	p.printBox("ATS COMPATIBILITY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs the job match result with skill overlap details.
func (p *Printer) PrintMatch(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match Score:  %d/100\n", result.OverallScore))
	sb.WriteString(fmt.Sprintf("Skill Match:  %.0f%%\n", result.SkillMatchPercentage))
	sb.WriteString(fmt.Sprintf("Similarity:   %.2f\n", result.SimilarityScore))
	sb.WriteString("\n")

	if len(result.MatchedSkills) > 0 {
		skills := strings.Join(result.MatchedSkills, ", ")
		sb.WriteString(fmt.Sprintf("Matched:  %s\n", truncate(skills, 45)))
	}
	if len(result.CriticalMissing) > 0 {
		skills := strings.Join(result.CriticalMissing, ", ")
		sb.WriteString(fmt.Sprintf("Critical: %s\n", truncate(skills, 45)))
	}
	if len(result.MissingSkills) > 0 {
		skills := strings.Join(result.MissingSkills, ", ")
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", truncate(skills, 45)))
	}

	if result.Recommendation != "" {
		sb.WriteString("\n")
		sb.WriteString(result.Recommendation)
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs improvement suggestions grouped by priority.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO RECOMMENDATIONS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d suggestions:\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := recs[i]
		marker := "•"
		if rec.Priority == types.PriorityHigh {
			marker = "⚠"
		}
		sb.WriteString(fmt.Sprintf("%s [%s] %s\n", marker, rec.Category, truncate(rec.Suggestion, 45)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more suggestions", len(recs)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", sb.String())
}
