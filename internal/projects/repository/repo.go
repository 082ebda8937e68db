package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/projecthub/projecthub-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects and
// their mentor associations.
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = "id, title, synopsis, status, owner_id, created_at, updated_at"

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(&p.ID, &p.Title, &p.Synopsis, &p.Status, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Synopsis, &p.Status, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nullableVector(embedding []float32) any {
	if embedding == nil {
		return nil
	}
	v := pgvector.NewVector(embedding)
	return &v
}

// Create inserts a new project. A nil embedding is stored as NULL.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (title, synopsis, status, owner_id, embedding)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at;
`
	return r.db.QueryRow(ctx, q, p.Title, p.Synopsis, p.Status, p.OwnerID, nullableVector(p.Embedding)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID retrieves a project by id, with its mentor view populated.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`

	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	mentors, err := r.mentorsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Mentors = mentors
	return p, nil
}

// ListApproved returns all approved projects.
func (r *ProjectRepository) ListApproved(ctx context.Context) ([]domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE status = 'approved' ORDER BY id;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// ListByOwner returns every project owned by the account, regardless of
// status.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY id;`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// ListMentored returns the approved projects the account mentors.
func (r *ProjectRepository) ListMentored(ctx context.Context, mentorID int64) ([]domain.Project, error) {
	const q = `
SELECT p.id, p.title, p.synopsis, p.status, p.owner_id, p.created_at, p.updated_at
FROM projects p
JOIN project_mentors pm ON pm.project_id = p.id
WHERE pm.mentor_id = $1 AND p.status = 'approved'
ORDER BY p.id;
`
	rows, err := r.db.Query(ctx, q, mentorID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// ListPending returns all projects awaiting review.
func (r *ProjectRepository) ListPending(ctx context.Context) ([]domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE status = 'pending' ORDER BY id;`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

// SetStatus unconditionally sets the project status. Re-approving an
// already approved project is a no-op in effect, not an error.
func (r *ProjectRepository) SetStatus(ctx context.Context, id int64, status string) (*domain.Project, error) {
	const q = `
UPDATE projects
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + projectColumns + `;`
	return scanProject(r.db.QueryRow(ctx, q, id, status))
}

// UpdateContent persists a content edit. The embedding column is always
// overwritten: a nil embedding replaces any stale vector with NULL.
func (r *ProjectRepository) UpdateContent(ctx context.Context, p *domain.Project) error {
	const q = `
UPDATE projects
SET title = $2, synopsis = $3, embedding = $4, updated_at = now()
WHERE id = $1
RETURNING updated_at;
`
	err := r.db.QueryRow(ctx, q, p.ID, p.Title, p.Synopsis, nullableVector(p.Embedding)).
		Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// Delete removes a project permanently. Join rows in project_mentors go
// with it via FK cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// AttachMentor records a (project, mentor) association in the join
// relation. Attaching the same mentor twice is a no-op.
func (r *ProjectRepository) AttachMentor(ctx context.Context, projectID, mentorID int64) error {
	const q = `
INSERT INTO project_mentors (project_id, mentor_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;
`
	_, err := r.db.Exec(ctx, q, projectID, mentorID)
	return err
}

func (r *ProjectRepository) mentorsOf(ctx context.Context, projectID int64) ([]domain.Mentor, error) {
	const q = `
SELECT a.id, a.email
FROM project_mentors pm
JOIN accounts a ON a.id = pm.mentor_id
WHERE pm.project_id = $1
ORDER BY a.id;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentors []domain.Mentor
	for rows.Next() {
		var m domain.Mentor
		if err := rows.Scan(&m.AccountID, &m.Email); err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}
