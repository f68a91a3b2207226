// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContactInfo holds the contact fields recovered from resume text.
// Absent fields stay empty; extraction is pattern-based and nothing is
// validated beyond the match itself.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// ExperienceEntry represents a single dated work-history range found in the text
type ExperienceEntry struct {
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	DurationMonths int    `json:"duration_months"`
	Context        string `json:"context,omitempty"`
}

// EducationEntry represents a degree mention and the line it was found on
type EducationEntry struct {
	Degree string `json:"degree"`
	Line   string `json:"line"`
}

// Profile is the structured record extracted from one resume document.
// It is created once per upload and treated as read-only by every consumer:
// scores and match results are recomputed from it, never written back.
//
// Experience durations are summed as found. Overlapping ranges are not
// merged, so concurrent positions inflate TotalExperienceYears.
type Profile struct {
	RawText              string              `json:"raw_text"`
	Contact              ContactInfo         `json:"contact"`
	Skills               []string            `json:"skills"`
	SkillCategories      map[string][]string `json:"skill_categories"`
	Experience           []ExperienceEntry   `json:"experience"`
	Education            []EducationEntry    `json:"education"`
	Certifications       []string            `json:"certifications,omitempty"`
	Sections             map[string]bool     `json:"sections"`
	Keywords             []string            `json:"keywords,omitempty"`
	TotalExperienceYears float64             `json:"total_experience_years"`
}

// HasSection reports whether the named standard section was detected in the text.
func (p *Profile) HasSection(name string) bool {
	return p.Sections[name]
}

// HasSkill reports whether the canonical skill name is present on the profile.
func (p *Profile) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s == name {
			return true
		}
	}
	return false
}
