package parsing

import (
	"strconv"
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

// monthNumbers maps month names and their common abbreviations to 1..12.
var monthNumbers = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

const contextLimit = 200

type span struct {
	start, end int
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// extractExperience finds date ranges line by line and emits one entry per
// range. Ranges are taken wherever they occur; nothing merges overlapping
// or duplicate periods, so concurrent positions are counted twice. Title
// and company are a best-effort guess from the surrounding text and may
// stay empty.
func (p *Parser) extractExperience(lines []string) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}

	for i, line := range lines {
		context := surroundingContext(lines, i)
		claimed := []span{}

		for _, loc := range p.monthRange.FindAllStringSubmatchIndex(line, -1) {
			start := line[loc[2]:loc[3]]
			end := line[loc[4]:loc[5]]
			months, ok := p.monthRangeDuration(start, end)
			if !ok {
				continue
			}
			claimed = append(claimed, span{loc[0], loc[1]})
			title, company := titleAndCompany(line, loc[0], loc[1])
			entries = append(entries, types.ExperienceEntry{
				Title:          title,
				Company:        company,
				StartDate:      start,
				EndDate:        canonicalEnd(end),
				DurationMonths: months,
				Context:        context,
			})
		}

		// A "YYYY - present" shape also appears inside "Month YYYY - present";
		// skip year ranges already claimed by a month-qualified match.
		for _, loc := range p.yearRange.FindAllStringSubmatchIndex(line, -1) {
			if overlapsAny(claimed, loc[0], loc[1]) {
				continue
			}
			start := line[loc[2]:loc[3]]
			end := line[loc[4]:loc[5]]
			title, company := titleAndCompany(line, loc[0], loc[1])
			entries = append(entries, types.ExperienceEntry{
				Title:          title,
				Company:        company,
				StartDate:      start,
				EndDate:        canonicalEnd(end),
				DurationMonths: p.yearRangeDuration(start, end),
				Context:        context,
			})
		}
	}

	return entries
}

// monthRangeDuration computes an inclusive month count for a
// "<Month Year> - <Month Year|present>" range: Jan 2020 - Dec 2021 is 24
// months. Returns false when a month token is not a recognized name.
func (p *Parser) monthRangeDuration(start, end string) (int, bool) {
	startYear, startMonth, ok := parseMonthYear(start)
	if !ok {
		return 0, false
	}

	var endYear, endMonth int
	if isPresent(end) {
		t := p.now()
		endYear, endMonth = t.Year(), int(t.Month())
	} else {
		endYear, endMonth, ok = parseMonthYear(end)
		if !ok {
			return 0, false
		}
	}

	months := (endYear*12 + endMonth) - (startYear*12 + startMonth) + 1
	if months < 0 {
		months = 0
	}
	return months, true
}

// yearRangeDuration computes the month count for a "<YYYY> - <YYYY|present>"
// range as whole years.
func (p *Parser) yearRangeDuration(start, end string) int {
	startYear, _ := strconv.Atoi(start)

	var endYear int
	if isPresent(end) {
		endYear = p.now().Year()
	} else {
		endYear, _ = strconv.Atoi(end)
	}

	months := (endYear - startYear) * 12
	if months < 0 {
		months = 0
	}
	return months
}

func parseMonthYear(s string) (year, month int, ok bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, false
	}
	name := strings.ToLower(strings.TrimSuffix(fields[0], "."))
	month, ok = monthNumbers[name]
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}

func isPresent(s string) bool {
	switch strings.ToLower(s) {
	case "present", "current":
		return true
	}
	return false
}

func canonicalEnd(s string) string {
	if isPresent(s) {
		return "Present"
	}
	return s
}

// titleAndCompany guesses a role title and employer from the text around a
// date range: first the text after the range on the same line, then the
// text before it. "Software Engineer at Acme" splits into both parts.
func titleAndCompany(line string, matchStart, matchEnd int) (title, company string) {
	candidate := strings.TrimLeft(line[matchEnd:], " \t-–—:,.|")
	if i := strings.Index(candidate, ". "); i >= 0 {
		candidate = candidate[:i]
	}
	candidate = strings.TrimSuffix(strings.TrimSpace(candidate), ".")

	if candidate == "" {
		before := line[:matchStart]
		if i := strings.LastIndexAny(before, ":.|"); i >= 0 {
			before = before[i+1:]
		}
		candidate = strings.Trim(before, " \t-–—:,.")
	}
	if candidate == "" {
		return "", ""
	}

	if i := strings.Index(strings.ToLower(candidate), " at "); i >= 0 {
		return strings.TrimSpace(candidate[:i]), strings.TrimSpace(candidate[i+4:])
	}
	if parts := strings.SplitN(candidate, ",", 2); len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return candidate, ""
}

// surroundingContext joins up to two lines either side of the range line,
// capped at contextLimit characters.
func surroundingContext(lines []string, i int) string {
	lo := i - 2
	if lo < 0 {
		lo = 0
	}
	hi := i + 3
	if hi > len(lines) {
		hi = len(lines)
	}
	context := strings.Join(lines[lo:hi], " ")
	if len(context) > contextLimit {
		context = context[:contextLimit]
	}
	return context
}
