// Package store persists analyzed resumes and their match history behind a
// small interface with PostgreSQL and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/callen/resume-analyzer/internal/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DefaultListLimit bounds listing queries when the caller passes no limit.
const DefaultListLimit = 50

// topSkillsLimit is how many skills Stats reports.
const topSkillsLimit = 10

// StoredProfile is one analyzed resume at rest. The analysis stored beside
// the profile is a cached copy of a pure function; anything served to a
// client is recomputed from Profile.
type StoredProfile struct {
	ID        uuid.UUID       `json:"id"`
	Filename  string          `json:"filename"`
	Profile   types.Profile   `json:"profile"`
	ATS       types.ATSResult `json:"ats"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProfileSummary is a lightweight view of a stored profile for listing.
type ProfileSummary struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	SkillCount int       `json:"skill_count"`
	ATSScore   int       `json:"ats_score"`
	CreatedAt  time.Time `json:"created_at"`
}

// MatchRecord is one historical match of a stored profile against a job
// description. History keeps what was asked and answered; replaying a match
// recomputes the result rather than serving this copy.
type MatchRecord struct {
	ID             uuid.UUID         `json:"id"`
	ProfileID      uuid.UUID         `json:"profile_id"`
	JobDescription string            `json:"job_description"`
	Result         types.MatchResult `json:"result"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SkillCount pairs a skill with how many stored profiles carry it.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// Stats aggregates the stored corpus.
type Stats struct {
	TotalProfiles int          `json:"total_profiles"`
	TotalMatches  int          `json:"total_matches"`
	AverageATS    float64      `json:"average_ats_score"`
	AverageMatch  float64      `json:"average_match_score"`
	TopSkills     []SkillCount `json:"top_skills"`
}

// Store is the persistence boundary for profiles and match history.
type Store interface {
	// SaveProfile inserts a profile record, filling CreatedAt.
	SaveProfile(ctx context.Context, profile *StoredProfile) error
	// GetProfile returns a stored profile or ErrNotFound.
	GetProfile(ctx context.Context, id uuid.UUID) (*StoredProfile, error)
	// ListProfiles returns newest-first summaries, at most limit
	// (DefaultListLimit when limit <= 0).
	ListProfiles(ctx context.Context, limit int) ([]ProfileSummary, error)
	// DeleteProfile removes a profile and its match history, or returns
	// ErrNotFound.
	DeleteProfile(ctx context.Context, id uuid.UUID) error
	// SaveMatch appends to a profile's match history; the profile must
	// exist.
	SaveMatch(ctx context.Context, record *MatchRecord) error
	// ListMatches returns a profile's match history, newest first.
	ListMatches(ctx context.Context, profileID uuid.UUID) ([]MatchRecord, error)
	// Stats aggregates over all stored records.
	Stats(ctx context.Context) (*Stats, error)
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close()
}
