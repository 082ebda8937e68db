package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projecthub/projecthub-backend/internal/auth"
	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	"github.com/projecthub/projecthub-backend/internal/auth/middleware"
	"github.com/projecthub/projecthub-backend/internal/embedding"
	"github.com/projecthub/projecthub-backend/internal/originality"
	"github.com/projecthub/projecthub-backend/internal/projects/domain"
	"github.com/projecthub/projecthub-backend/internal/projects/service"
)

var (
	testStudent = &authdomain.Account{ID: 1, Email: "student@example.com", Role: authdomain.RoleStudent}
	testTeacher = &authdomain.Account{ID: 2, Email: "teacher@example.com", Role: authdomain.RoleTeacher}
)

// tokenMap resolves fixed bearer tokens to accounts.
type tokenMap map[string]*authdomain.Account

func (m tokenMap) Authenticate(_ context.Context, credential string) (*authdomain.Account, error) {
	if a, ok := m[credential]; ok {
		return a, nil
	}
	return nil, authdomain.ErrInvalidCredential
}

// memoryStore is an in-memory ProjectStore that also serves as the
// originality Searcher.
type memoryStore struct {
	projects map[int64]*domain.Project
	nextID   int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{projects: make(map[int64]*domain.Project)}
}

func (m *memoryStore) Create(_ context.Context, p *domain.Project) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.projects[p.ID] = &cp
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) all(filter func(*domain.Project) bool) []domain.Project {
	out := make([]domain.Project, 0)
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.projects[id]; ok && filter(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (m *memoryStore) ListApproved(_ context.Context) ([]domain.Project, error) {
	return m.all(func(p *domain.Project) bool { return p.Status == domain.StatusApproved }), nil
}

func (m *memoryStore) ListByOwner(_ context.Context, ownerID int64) ([]domain.Project, error) {
	return m.all(func(p *domain.Project) bool { return p.OwnerID == ownerID }), nil
}

func (m *memoryStore) ListMentored(_ context.Context, _ int64) ([]domain.Project, error) {
	return nil, nil
}

func (m *memoryStore) ListPending(_ context.Context) ([]domain.Project, error) {
	return m.all(func(p *domain.Project) bool { return p.Status == domain.StatusPending }), nil
}

func (m *memoryStore) SetStatus(_ context.Context, id int64, status string) (*domain.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = status
	cp := *p
	return &cp, nil
}

func (m *memoryStore) UpdateContent(_ context.Context, p *domain.Project) error {
	stored, ok := m.projects[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Title = p.Title
	stored.Synopsis = p.Synopsis
	stored.Embedding = p.Embedding
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.projects[id]; !ok {
		return false, nil
	}
	delete(m.projects, id)
	return true, nil
}

func (m *memoryStore) AttachMentor(_ context.Context, _, _ int64) error { return nil }

func (m *memoryStore) NearestApproved(_ context.Context, _ []float32, k int) ([]originality.Neighbor, error) {
	approved := m.all(func(p *domain.Project) bool {
		return p.Status == domain.StatusApproved && p.Embedding != nil
	})
	var out []originality.Neighbor
	for _, p := range approved {
		if len(out) == k {
			break
		}
		out = append(out, originality.Neighbor{ID: p.ID, Title: p.Title, Distance: 0})
	}
	return out, nil
}

type mentorDirectory struct{}

func (mentorDirectory) GetByEmail(_ context.Context, email string) (*authdomain.Account, error) {
	if email == testTeacher.Email {
		return testTeacher, nil
	}
	return nil, authdomain.ErrAccountNotFound
}

type constEmbedder struct{ down bool }

func (e constEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if e.down {
		return nil, embedding.ErrUnavailable
	}
	return []float32{1, 0, 0}, nil
}

func newProjectsRouter(embedder embedding.Embedder) (*gin.Engine, *memoryStore) {
	gin.SetMode(gin.TestMode)
	store := newMemoryStore()
	svc := service.NewProjectService(store, mentorDirectory{}, embedder, auth.NewPolicy())
	engine := originality.NewEngine(store, embedder, originality.Config{Threshold: 0.8, Neighbors: 3})

	r := gin.New()
	group := r.Group("/projects")
	group.Use(middleware.BearerAuth(tokenMap{
		"student-token": testStudent,
		"teacher-token": testTeacher,
	}))
	New(svc, engine).Register(group)
	return r, store
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProjects_RequireAuth(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{})

	w := doRequest(r, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/projects", "forged-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProjects_CreateAndList(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{})

	w := doRequest(r, http.MethodPost, "/projects", "student-token", gin.H{
		"title":        "Smart Parking",
		"synopsis":     "IoT sensors detect spots",
		"mentor_email": testTeacher.Email,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.NotContains(t, w.Body.String(), "embedding", "vectors never leave the API")

	// Pending projects are invisible in the public catalogue.
	w = doRequest(r, http.MethodGet, "/projects", "student-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doRequest(r, http.MethodGet, "/projects/my-projects", "student-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestProjects_CreateValidation(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{})

	// Student without a mentor email.
	w := doRequest(r, http.MethodPost, "/projects", "student-token", gin.H{
		"title": "Smart Parking",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown mentor.
	w = doRequest(r, http.MethodPost, "/projects", "student-token", gin.H{
		"title":        "Smart Parking",
		"mentor_email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_ReviewFlow(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{})

	w := doRequest(r, http.MethodPost, "/projects", "student-token", gin.H{
		"title":        "Smart Parking",
		"mentor_email": testTeacher.Email,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Students are blocked from the review queue and verbs.
	w = doRequest(r, http.MethodGet, "/projects/pending", "student-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/projects/%d/approve", created.ID), "student-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodGet, "/projects/pending", "teacher-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Len(t, queue, 1)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/projects/%d/approve", created.ID), "teacher-token", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var approved domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &approved))
	assert.Equal(t, domain.StatusApproved, approved.Status)

	w = doRequest(r, http.MethodPut, "/projects/99/reject", "teacher-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPut, "/projects/abc/approve", "teacher-token", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjects_UpdateAndDelete(t *testing.T) {
	r, store := newProjectsRouter(constEmbedder{})

	w := doRequest(r, http.MethodPost, "/projects", "student-token", gin.H{
		"title":        "Smart Parking",
		"mentor_email": testTeacher.Email,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/projects/%d", created.ID), "student-token", gin.H{
		"title": "Smarter Parking",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Smarter Parking", store.projects[created.ID].Title)

	// Approving locks the owner out.
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/projects/%d/approve", created.ID), "teacher-token", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPut, fmt.Sprintf("/projects/%d", created.ID), "student-token", gin.H{
		"title": "Yet Smarter Parking",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/projects/%d", created.ID), "student-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/projects/%d", created.ID), "teacher-token", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/projects/%d", created.ID), "teacher-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_CheckOriginality(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{})

	// Empty corpus: everything is original.
	w := doRequest(r, http.MethodPost, "/projects/check-originality", "student-token", gin.H{
		"title":    "Smart Parking",
		"synopsis": "IoT sensors detect spots",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result originality.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.IsOriginal)
	assert.Empty(t, result.SimilarProjects)

	// Seed an approved project; the constant embedder makes every pair
	// an exact match.
	w = doRequest(r, http.MethodPost, "/projects", "teacher-token", gin.H{"title": "Smart Parking"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPost, "/projects/check-originality", "student-token", gin.H{
		"title": "Smart Parking",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.IsOriginal)
	require.Len(t, result.SimilarProjects, 1)
	assert.InDelta(t, 1.0, result.SimilarProjects[0].SimilarityScore, 1e-9)
}

func TestProjects_CheckOriginalityUnavailable(t *testing.T) {
	r, _ := newProjectsRouter(constEmbedder{down: true})

	w := doRequest(r, http.MethodPost, "/projects/check-originality", "student-token", gin.H{
		"title": "Smart Parking",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot check originality without embedding generation.")
}
