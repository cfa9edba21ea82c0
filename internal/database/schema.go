package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS recruiters (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		company_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS skills (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		industry TEXT NOT NULL DEFAULT '',
		popularity INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS skill_translations (
		skill_id UUID NOT NULL REFERENCES skills(id) ON DELETE CASCADE,
		lang TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (skill_id, lang)
	)`,
	`CREATE TABLE IF NOT EXISTS workers (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL,
		skill_id UUID REFERENCES skills(id),
		region TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		is_pro BOOLEAN NOT NULL DEFAULT FALSE,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		bio TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY,
		recruiter_id UUID NOT NULL REFERENCES recruiters(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		job_type TEXT NOT NULL DEFAULT 'full_time',
		skill_id UUID REFERENCES skills(id),
		region TEXT NOT NULL DEFAULT '',
		salary_min BIGINT,
		salary_max BIGINT,
		pay_cycle TEXT,
		budget BIGINT,
		max_applicants INT NOT NULL DEFAULT 0 CHECK (max_applicants >= 0),
		applicants_count INT NOT NULL DEFAULT 0 CHECK (applicants_count >= 0),
		status TEXT NOT NULL DEFAULT 'active',
		is_offer BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS interviews (
		id UUID PRIMARY KEY,
		scheduled_at TIMESTAMPTZ NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'scheduled'
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		worker_id UUID NOT NULL REFERENCES workers(id),
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'applied',
		interview_id UUID REFERENCES interviews(id),
		decline_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (job_id, worker_id)
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		id UUID PRIMARY KEY,
		job_id UUID NOT NULL UNIQUE REFERENCES jobs(id) ON DELETE CASCADE,
		worker_id UUID NOT NULL REFERENCES workers(id),
		recruiter_id UUID NOT NULL REFERENCES recruiters(id),
		status TEXT NOT NULL DEFAULT 'pending',
		decline_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id UUID PRIMARY KEY,
		worker_id UUID NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
		caption TEXT NOT NULL DEFAULT '',
		media_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_region ON jobs (region)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_skill ON jobs (skill_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workers_region ON workers (region)`,
	`CREATE INDEX IF NOT EXISTS idx_workers_industry ON workers (industry)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_worker ON applications (worker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_offers_worker_status ON offers (worker_id, status)`,
}

// EnsureSchema creates the marketplace tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsureTableColumns verifies that a table carries the columns the
// repositories expect, failing fast on schema drift.
func EnsureTableColumns(ctx context.Context, db DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}
