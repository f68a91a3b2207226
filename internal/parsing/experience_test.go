package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExperience_Durations(t *testing.T) {
	p := newTestParser() // clock fixed at June 2023

	tests := []struct {
		name   string
		text   string
		months int
	}{
		{
			name:   "month range inclusive",
			text:   "Jan 2020 - Dec 2021 Software Engineer",
			months: 24,
		},
		{
			name:   "full month names with en dash",
			text:   "January 2020 – December 2021 Software Engineer",
			months: 24,
		},
		{
			name:   "abbreviated with periods",
			text:   "Sept. 2019 - Feb. 2020 Intern",
			months: 6,
		},
		{
			name:   "year range",
			text:   "2019 - 2022 Data Analyst",
			months: 36,
		},
		{
			name:   "month range to present",
			text:   "Mar 2021 - Present Platform Engineer",
			months: 28,
		},
		{
			name:   "year range to present",
			text:   "2021 - present",
			months: 24,
		},
		{
			name:   "current treated as present",
			text:   "Jul 2022 - Current SRE",
			months: 12,
		},
		{
			name:   "reversed range clamps to zero",
			text:   "Dec 2021 - Jan 2020 Time Traveler",
			months: 0,
		},
		{
			name:   "single month",
			text:   "May 2020 - May 2020 Contract",
			months: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := p.Parse(tt.text)
			require.Len(t, profile.Experience, 1)
			assert.Equal(t, tt.months, profile.Experience[0].DurationMonths)
		})
	}
}

func TestExtractExperience_PresentDoesNotDoubleCount(t *testing.T) {
	p := newTestParser()

	// "Jan 2020 - Present" also contains the year-range shape
	// "2020 - Present"; only the month-qualified entry may survive.
	profile := p.Parse("Jan 2020 - Present Staff Engineer")

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Jan 2020", profile.Experience[0].StartDate)
	assert.Equal(t, "Present", profile.Experience[0].EndDate)
}

func TestExtractExperience_UnrecognizedMonthFallsBackToYears(t *testing.T) {
	p := newTestParser()

	// "From" is not a month name, so the month-qualified pattern yields
	// nothing and the bare year range carries the entry.
	profile := p.Parse("From 2020 - present")

	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "2020", profile.Experience[0].StartDate)
	assert.Equal(t, 36, profile.Experience[0].DurationMonths)
}

func TestExtractExperience_OverlappingRangesSumAdditively(t *testing.T) {
	p := newTestParser()

	// Concurrent positions: both ranges count in full.
	text := "Jan 2020 - Dec 2021 Backend Engineer\nJun 2020 - May 2022 Consultant"
	profile := p.Parse(text)

	require.Len(t, profile.Experience, 2)
	assert.Equal(t, 24, profile.Experience[0].DurationMonths)
	assert.Equal(t, 24, profile.Experience[1].DurationMonths)
	assert.InDelta(t, 4.0, profile.TotalExperienceYears, 0.001)
}

func TestExtractExperience_TitleAndCompany(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name    string
		text    string
		title   string
		company string
	}{
		{
			name:    "title at company after range",
			text:    "Jan 2020 - Dec 2021 Software Engineer at Acme Corp",
			title:   "Software Engineer",
			company: "Acme Corp",
		},
		{
			name:    "title comma company",
			text:    "2018 - 2020 Data Scientist, HoloData",
			title:   "Data Scientist",
			company: "HoloData",
		},
		{
			name:    "title before range",
			text:    "Senior Engineer Jun 2019 - Dec 2020",
			title:   "Senior Engineer",
			company: "",
		},
		{
			name:    "bare range",
			text:    "2019 - 2022",
			title:   "",
			company: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := p.Parse(tt.text)
			require.Len(t, profile.Experience, 1)
			assert.Equal(t, tt.title, profile.Experience[0].Title)
			assert.Equal(t, tt.company, profile.Experience[0].Company)
		})
	}
}

func TestExtractExperience_ContextCaptured(t *testing.T) {
	p := newTestParser()

	text := "Acme Corporation\nBackend Team\nJan 2020 - Dec 2021 Software Engineer\nBuilt APIs\nShipped features"
	profile := p.Parse(text)

	require.Len(t, profile.Experience, 1)
	context := profile.Experience[0].Context
	assert.Contains(t, context, "Acme Corporation")
	assert.Contains(t, context, "Built APIs")
	assert.LessOrEqual(t, len(context), 200)
}

func TestExtractExperience_PresentResolvesViaClock(t *testing.T) {
	text := "Jan 2023 - Present Engineer"

	early := NewParserWithClock(newTestParser().dict, fixedClock(2023, time.March))
	late := NewParserWithClock(newTestParser().dict, fixedClock(2024, time.March))

	assert.Equal(t, 3, early.Parse(text).Experience[0].DurationMonths)
	assert.Equal(t, 15, late.Parse(text).Experience[0].DurationMonths)
}

func TestExtractExperience_NoDates(t *testing.T) {
	p := newTestParser()

	profile := p.Parse("A resume with plenty of prose but not a single dated range.")

	assert.Empty(t, profile.Experience)
	assert.Equal(t, 0.0, profile.TotalExperienceYears)
}
