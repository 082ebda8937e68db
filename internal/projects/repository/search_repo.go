package repository

import (
	"context"

	pgvector "github.com/pgvector/pgvector-go"

	"github.com/projecthub/projecthub-backend/internal/originality"
)

// NearestApproved finds the k nearest approved, embedded projects to the
// candidate vector by L2 distance. Ties are broken by id ascending so
// the ordering is deterministic.
func (r *ProjectRepository) NearestApproved(ctx context.Context, vec []float32, k int) ([]originality.Neighbor, error) {
	const q = `
SELECT id, title, embedding <-> $1 AS distance
FROM projects
WHERE status = 'approved' AND embedding IS NOT NULL
ORDER BY distance, id
LIMIT $2;
`
	rows, err := r.db.Query(ctx, q, pgvector.NewVector(vec), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]originality.Neighbor, 0, k)
	for rows.Next() {
		var n originality.Neighbor
		if err := rows.Scan(&n.ID, &n.Title, &n.Distance); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ListMissingEmbedding returns projects stored without an embedding,
// oldest first, so the backfill job can retry them.
func (r *ProjectRepository) ListMissingEmbedding(ctx context.Context, limit int) ([]EmbeddingCandidate, error) {
	const q = `
SELECT id, title, coalesce(synopsis, '')
FROM projects
WHERE embedding IS NULL
ORDER BY id
LIMIT $1;
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmbeddingCandidate
	for rows.Next() {
		var c EmbeddingCandidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Synopsis); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetEmbedding stores a freshly computed vector for an existing project.
func (r *ProjectRepository) SetEmbedding(ctx context.Context, id int64, vec []float32) error {
	const q = `UPDATE projects SET embedding = $2, updated_at = now() WHERE id = $1;`
	_, err := r.db.Exec(ctx, q, id, pgvector.NewVector(vec))
	return err
}

// EmbeddingCandidate is a project row missing its embedding.
type EmbeddingCandidate struct {
	ID       int64
	Title    string
	Synopsis string
}
