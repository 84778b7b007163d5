package postgres

import "context"

// schema is applied idempotently at startup. statement_counts mirrors the
// committed registration count per statement so the conditional insert can
// take a row-level lock on a single counter row.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS teams (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	college      TEXT NOT NULL,
	leader_id    TEXT UNIQUE NOT NULL REFERENCES users(id),
	statement_id TEXT NOT NULL,
	members      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_teams_statement ON teams(statement_id);

CREATE TABLE IF NOT EXISTS statement_counts (
	statement_id TEXT PRIMARY KEY,
	team_count   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS submissions (
	team_id      TEXT PRIMARY KEY REFERENCES teams(id),
	title        TEXT NOT NULL,
	deck_url     TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the schema if it does not exist
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}
