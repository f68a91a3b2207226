package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaSQL bootstraps the two tables. Idempotent, so it runs on every
// startup.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY,
	filename TEXT NOT NULL,
	profile JSONB NOT NULL,
	ats JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY,
	profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	job_description TEXT NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_matches_profile_id ON matches(profile_id);
`

// Postgres implements Store on a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and verifies it
// with a ping.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the tables when they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveProfile inserts a profile record. The database assigns CreatedAt,
// which is written back into the struct.
func (p *Postgres) SaveProfile(ctx context.Context, profile *StoredProfile) error {
	profileJSON, err := json.Marshal(profile.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	atsJSON, err := json.Marshal(profile.ATS)
	if err != nil {
		return fmt.Errorf("failed to marshal ats result: %w", err)
	}

	err = p.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, filename, profile, ats)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		profile.ID, profile.Filename, profileJSON, atsJSON,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a stored profile by ID.
func (p *Postgres) GetProfile(ctx context.Context, id uuid.UUID) (*StoredProfile, error) {
	var (
		stored      StoredProfile
		profileJSON []byte
		atsJSON     []byte
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, filename, profile, ats, created_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&stored.ID, &stored.Filename, &profileJSON, &atsJSON, &stored.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &stored.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if err := json.Unmarshal(atsJSON, &stored.ATS); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ats result: %w", err)
	}
	return &stored, nil
}

// ListProfiles retrieves recent profile summaries. Summary fields come
// straight out of the JSONB columns, so no full profile is decoded.
func (p *Postgres) ListProfiles(ctx context.Context, limit int) ([]ProfileSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := p.pool.Query(ctx,
		`SELECT id, filename,
		        COALESCE(jsonb_array_length(profile->'skills'), 0),
		        COALESCE((ats->>'overall_score')::int, 0),
		        created_at
		 FROM profiles ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var summaries []ProfileSummary
	for rows.Next() {
		var s ProfileSummary
		if err := rows.Scan(&s.ID, &s.Filename, &s.SkillCount, &s.ATSScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteProfile removes a profile and, via cascade, its match history.
func (p *Postgres) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveMatch appends a match record to a profile's history.
func (p *Postgres) SaveMatch(ctx context.Context, record *MatchRecord) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal match result: %w", err)
	}

	err = p.pool.QueryRow(ctx,
		`INSERT INTO matches (id, profile_id, job_description, result)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		record.ID, record.ProfileID, record.JobDescription, resultJSON,
	).Scan(&record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	return nil
}

// ListMatches retrieves a profile's match history, newest first.
func (p *Postgres) ListMatches(ctx context.Context, profileID uuid.UUID) ([]MatchRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, profile_id, job_description, result, created_at
		 FROM matches WHERE profile_id = $1 ORDER BY created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var (
			record     MatchRecord
			resultJSON []byte
		)
		if err := rows.Scan(&record.ID, &record.ProfileID, &record.JobDescription, &resultJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &record.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match result: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Stats aggregates over all stored records in the database.
func (p *Postgres) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG((ats->>'overall_score')::int), 0) FROM profiles`,
	).Scan(&stats.TotalProfiles, &stats.AverageATS)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profiles: %w", err)
	}

	err = p.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG((result->>'overall_score')::int), 0) FROM matches`,
	).Scan(&stats.TotalMatches, &stats.AverageMatch)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate matches: %w", err)
	}

	rows, err := p.pool.Query(ctx,
		`SELECT skill, COUNT(*) AS n
		 FROM profiles, jsonb_array_elements_text(profile->'skills') AS skill
		 GROUP BY skill ORDER BY n DESC, skill ASC LIMIT $1`,
		topSkillsLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate skills: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc SkillCount
		if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan skill count: %w", err)
		}
		stats.TopSkills = append(stats.TopSkills, sc)
	}
	return stats, rows.Err()
}

// Ping verifies the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
