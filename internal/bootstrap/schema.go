package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/projecthub/projecthub-backend/config"
)

// embeddingDim matches the text-embedding-3-small contract. The store
// rejects vectors of any other dimensionality.
const embeddingDim = 1536

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector;`,

	`CREATE TABLE IF NOT EXISTS accounts (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('teacher', 'student')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,

	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS projects (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		synopsis   TEXT,
		status     TEXT NOT NULL DEFAULT 'pending'
		           CHECK (status IN ('pending', 'approved', 'rejected')),
		owner_id   BIGINT NOT NULL REFERENCES accounts(id),
		embedding  vector(%d),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`, embeddingDim),

	`CREATE TABLE IF NOT EXISTS project_mentors (
		project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		mentor_id  BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, mentor_id)
	);`,

	`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects (status);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects (owner_id);`,
}

// EnsureSchema applies the schema on a plain connection, before the
// pool registers the pgvector types (the extension has to exist first).
func EnsureSchema(ctx context.Context, cfg *config.DatabaseConfig) error {
	conn, err := pgx.Connect(ctx, DSN(cfg))
	if err != nil {
		return fmt.Errorf("schema connect: %w", err)
	}
	defer conn.Close(ctx)

	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
