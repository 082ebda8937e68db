package integration

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecthub/projecthub-backend/config"
	authrepo "github.com/projecthub/projecthub-backend/internal/auth/repository"
	"github.com/projecthub/projecthub-backend/internal/bootstrap"
	"github.com/projecthub/projecthub-backend/internal/projects/domain"
	projectrepo "github.com/projecthub/projecthub-backend/internal/projects/repository"
)

const embeddingDim = 1536

// setupTestPool connects to the test database, or skips the test.
// Configure with TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER,
// TEST_DB_PASSWORD, TEST_DB_NAME. The database needs the pgvector
// extension available; the schema itself is created here.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping PostgreSQL integration test")
	}
	port := 5432
	if p := os.Getenv("TEST_DB_PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		require.NoError(t, err)
	}

	dbCfg := &config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: os.Getenv("TEST_DB_PASSWORD"),
		Name:     envOr("TEST_DB_NAME", "projecthub_test"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, bootstrap.EnsureSchema(ctx, dbCfg))

	pool, err := bootstrap.OpenDB(ctx, dbCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// Each run starts from a clean slate.
	_, err = pool.Exec(ctx, `TRUNCATE project_mentors, projects, accounts RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)

	return pool
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// unitVector builds a 1536-dim vector with weight 1 at the given axis.
func unitVector(axis int) []float32 {
	v := make([]float32, embeddingDim)
	v[axis] = 1
	return v
}

func TestProjectRepository_Lifecycle(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	accounts := authrepo.NewAccountRepository(pool)
	repo := projectrepo.NewProjectRepository(pool)

	teacher, err := accounts.Create(ctx, "teacher@example.com", "unused-hash", "teacher")
	require.NoError(t, err)
	student, err := accounts.Create(ctx, "student@example.com", "unused-hash", "student")
	require.NoError(t, err)

	synopsis := "IoT sensors detect free parking spots"
	p := &domain.Project{
		Title:     "Smart Parking",
		Synopsis:  &synopsis,
		Status:    domain.StatusPending,
		OwnerID:   student.ID,
		Embedding: unitVector(0),
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)
	require.NoError(t, repo.AttachMentor(ctx, p.ID, teacher.ID))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Smart Parking", got.Title)
	assert.Equal(t, domain.StatusPending, got.Status)
	require.Len(t, got.Mentors, 1)
	assert.Equal(t, teacher.Email, got.Mentors[0].Email)

	// Attaching the same mentor again is a no-op, not an error.
	require.NoError(t, repo.AttachMentor(ctx, p.ID, teacher.ID))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Mentors, 1)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := repo.SetStatus(ctx, p.ID, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)

	listed, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, p.ID, listed[0].ID)

	mentored, err := repo.ListMentored(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, mentored, 1)
	assert.Equal(t, p.ID, mentored[0].ID)

	mine, err := repo.ListByOwner(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = repo.SetStatus(ctx, 99999, domain.StatusApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_UpdateContentClearsEmbedding(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	accounts := authrepo.NewAccountRepository(pool)
	repo := projectrepo.NewProjectRepository(pool)

	owner, err := accounts.Create(ctx, "teacher@example.com", "unused-hash", "teacher")
	require.NoError(t, err)

	p := &domain.Project{
		Title:     "Grading Assistant",
		Status:    domain.StatusApproved,
		OwnerID:   owner.ID,
		Embedding: unitVector(1),
	}
	require.NoError(t, repo.Create(ctx, p))

	missing, err := repo.ListMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, missing)

	p.Title = "Rubric Scorer"
	p.Embedding = nil
	require.NoError(t, repo.UpdateContent(ctx, p))

	missing, err = repo.ListMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, p.ID, missing[0].ID)
	assert.Equal(t, "Rubric Scorer", missing[0].Title)

	require.NoError(t, repo.SetEmbedding(ctx, p.ID, unitVector(2)))

	missing, err = repo.ListMissingEmbedding(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestProjectRepository_NearestApproved(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	accounts := authrepo.NewAccountRepository(pool)
	repo := projectrepo.NewProjectRepository(pool)

	owner, err := accounts.Create(ctx, "teacher@example.com", "unused-hash", "teacher")
	require.NoError(t, err)

	seed := []struct {
		title     string
		status    string
		embedding []float32
	}{
		{"Exact Twin", domain.StatusApproved, unitVector(0)},
		{"Different Axis", domain.StatusApproved, unitVector(5)},
		{"Pending Twin", domain.StatusPending, unitVector(0)},
		{"No Vector", domain.StatusApproved, nil},
	}
	ids := make(map[string]int64)
	for _, s := range seed {
		p := &domain.Project{Title: s.title, Status: s.status, OwnerID: owner.ID, Embedding: s.embedding}
		require.NoError(t, repo.Create(ctx, p))
		ids[s.title] = p.ID
	}

	neighbors, err := repo.NearestApproved(ctx, unitVector(0), 3)
	require.NoError(t, err)

	// Pending and unembedded rows never appear.
	require.Len(t, neighbors, 2)
	assert.Equal(t, ids["Exact Twin"], neighbors[0].ID)
	assert.InDelta(t, 0.0, neighbors[0].Distance, 1e-6)
	assert.Equal(t, ids["Different Axis"], neighbors[1].ID)
	assert.Greater(t, neighbors[1].Distance, neighbors[0].Distance)
}
