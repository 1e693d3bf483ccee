package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on first boot. Statements are idempotent
// so repeated startups are safe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS listings (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL,
			rooms INTEGER,
			area DOUBLE PRECISION,
			property_type TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			postal_code TEXT NOT NULL DEFAULT '',
			source_site TEXT NOT NULL,
			source_url TEXT NOT NULL UNIQUE,
			source_id TEXT NOT NULL DEFAULT '',
			features TEXT[] NOT NULL DEFAULT '{}',
			status TEXT NOT NULL DEFAULT 'new',
			first_seen TIMESTAMPTZ NOT NULL,
			last_seen TIMESTAMPTZ NOT NULL,
			still_available BOOLEAN NOT NULL DEFAULT TRUE,
			duplicate_of UUID REFERENCES listings(id),
			similarity_score DOUBLE PRECISION
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listings_city_price
			ON listings (city, price) WHERE still_available AND duplicate_of IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_listings_status ON listings (status)`,

		`CREATE TABLE IF NOT EXISTS outreach_targets (
			id UUID PRIMARY KEY,
			listing_id UUID NOT NULL UNIQUE REFERENCES listings(id),
			name TEXT NOT NULL DEFAULT '',
			agency_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT 'pending',
			attempt_count INTEGER NOT NULL DEFAULT 0,
			last_attempt_at TIMESTAMPTZ,
			next_attempt_at TIMESTAMPTZ,
			responded BOOLEAN NOT NULL DEFAULT FALSE,
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outreach_eligibility
			ON outreach_targets (state, responded, attempt_count, last_attempt_at)`,

		`CREATE TABLE IF NOT EXISTS interactions (
			id UUID PRIMARY KEY,
			listing_id UUID NOT NULL REFERENCES listings(id),
			target_id UUID NOT NULL REFERENCES outreach_targets(id),
			channel TEXT NOT NULL,
			kind TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			correlation_id TEXT NOT NULL DEFAULT '',
			sent_at TIMESTAMPTZ NOT NULL,
			delivered_at TIMESTAMPTZ,
			responded_at TIMESTAMPTZ,
			metadata JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_correlation
			ON interactions (correlation_id) WHERE correlation_id <> ''`,

		`CREATE TABLE IF NOT EXISTS job_runs (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ,
			counts JSONB NOT NULL DEFAULT '{}',
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_job_runs_started ON job_runs (started_at)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
