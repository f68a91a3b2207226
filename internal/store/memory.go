package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory implements Store with in-process maps. It backs tests and the
// server's --memory mode; nothing survives a restart.
type Memory struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]StoredProfile
	matches  map[uuid.UUID][]MatchRecord
	order    []uuid.UUID // profile insertion order, oldest first
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[uuid.UUID]StoredProfile),
		matches:  make(map[uuid.UUID][]MatchRecord),
	}
}

// SaveProfile inserts a profile record, filling CreatedAt when unset.
func (m *Memory) SaveProfile(_ context.Context, profile *StoredProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if _, exists := m.profiles[profile.ID]; !exists {
		m.order = append(m.order, profile.ID)
	}
	m.profiles[profile.ID] = *profile
	return nil
}

// GetProfile returns a stored profile or ErrNotFound.
func (m *Memory) GetProfile(_ context.Context, id uuid.UUID) (*StoredProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

// ListProfiles returns newest-first summaries, at most limit.
func (m *Memory) ListProfiles(_ context.Context, limit int) ([]ProfileSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var summaries []ProfileSummary
	for i := len(m.order) - 1; i >= 0 && len(summaries) < limit; i-- {
		stored := m.profiles[m.order[i]]
		summaries = append(summaries, ProfileSummary{
			ID:         stored.ID,
			Filename:   stored.Filename,
			SkillCount: len(stored.Profile.Skills),
			ATSScore:   stored.ATS.OverallScore,
			CreatedAt:  stored.CreatedAt,
		})
	}
	return summaries, nil
}

// DeleteProfile removes a profile and its match history.
func (m *Memory) DeleteProfile(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, id)
	delete(m.matches, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// SaveMatch appends to a profile's history. The profile must exist, matching
// the database's foreign key.
func (m *Memory) SaveMatch(_ context.Context, record *MatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[record.ProfileID]; !ok {
		return ErrNotFound
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	m.matches[record.ProfileID] = append(m.matches[record.ProfileID], *record)
	return nil
}

// ListMatches returns a profile's match history, newest first.
func (m *Memory) ListMatches(_ context.Context, profileID uuid.UUID) ([]MatchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.matches[profileID]
	records := make([]MatchRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		records = append(records, history[i])
	}
	return records, nil
}

// Stats aggregates over everything held in memory.
func (m *Memory) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{TotalProfiles: len(m.profiles)}

	atsTotal := 0
	skillCounts := map[string]int{}
	for _, stored := range m.profiles {
		atsTotal += stored.ATS.OverallScore
		for _, skill := range stored.Profile.Skills {
			skillCounts[skill]++
		}
	}
	if stats.TotalProfiles > 0 {
		stats.AverageATS = float64(atsTotal) / float64(stats.TotalProfiles)
	}

	matchTotal := 0
	for _, history := range m.matches {
		stats.TotalMatches += len(history)
		for _, record := range history {
			matchTotal += record.Result.OverallScore
		}
	}
	if stats.TotalMatches > 0 {
		stats.AverageMatch = float64(matchTotal) / float64(stats.TotalMatches)
	}

	for skill, count := range skillCounts {
		stats.TopSkills = append(stats.TopSkills, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(stats.TopSkills, func(i, j int) bool {
		if stats.TopSkills[i].Count != stats.TopSkills[j].Count {
			return stats.TopSkills[i].Count > stats.TopSkills[j].Count
		}
		return stats.TopSkills[i].Skill < stats.TopSkills[j].Skill
	})
	if len(stats.TopSkills) > topSkillsLimit {
		stats.TopSkills = stats.TopSkills[:topSkillsLimit]
	}

	return stats, nil
}

// Ping always succeeds for the in-memory store.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (m *Memory) Close() {}
