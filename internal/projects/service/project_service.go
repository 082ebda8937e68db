package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/projecthub/projecthub-backend/internal/auth"
	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	"github.com/projecthub/projecthub-backend/internal/embedding"
	"github.com/projecthub/projecthub-backend/internal/projects/domain"
)

// ProjectStore is the persistence surface the lifecycle manager needs.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListApproved(ctx context.Context) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	ListMentored(ctx context.Context, mentorID int64) ([]domain.Project, error)
	ListPending(ctx context.Context) ([]domain.Project, error)
	SetStatus(ctx context.Context, id int64, status string) (*domain.Project, error)
	UpdateContent(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) (bool, error)
	AttachMentor(ctx context.Context, projectID, mentorID int64) error
}

// AccountLookup resolves mentor emails against the identity store.
type AccountLookup interface {
	GetByEmail(ctx context.Context, email string) (*authdomain.Account, error)
}

// ProjectService owns the project state machine and the coupling
// between content edits and re-embedding.
type ProjectService struct {
	repo     ProjectStore
	accounts AccountLookup
	embedder embedding.Embedder
	policy   *auth.Policy
}

// NewProjectService creates a new project service.
func NewProjectService(repo ProjectStore, accounts AccountLookup, embedder embedding.Embedder, policy *auth.Policy) *ProjectService {
	return &ProjectService{
		repo:     repo,
		accounts: accounts,
		embedder: embedder,
		policy:   policy,
	}
}

// CreateInput carries a submit request.
type CreateInput struct {
	Title       string
	Synopsis    *string
	MentorEmail string
}

// UpdateInput carries a partial edit; nil fields are left unchanged.
type UpdateInput struct {
	Title    *string
	Synopsis *string
}

// Create submits a new proposal. Teachers self-publish as approved;
// student submissions start pending and must name a teacher mentor.
// Embedding failures are soft: the project is stored with a NULL
// embedding and can be re-embedded later.
func (s *ProjectService) Create(ctx context.Context, actor *authdomain.Account, in CreateInput) (*domain.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	if actor.Role == authdomain.RoleStudent && in.MentorEmail == "" {
		return nil, fmt.Errorf("%w: mentor's email is required", domain.ErrValidation)
	}

	var mentor *authdomain.Account
	if in.MentorEmail != "" {
		found, err := s.accounts.GetByEmail(ctx, in.MentorEmail)
		if err != nil || found.Role != authdomain.RoleTeacher {
			return nil, fmt.Errorf("%w: no teacher with email %q", domain.ErrMentorNotFound, in.MentorEmail)
		}
		mentor = found
	}

	status := domain.StatusPending
	if actor.IsTeacher() {
		status = domain.StatusApproved
	}

	p := &domain.Project{
		Title:    title,
		Synopsis: in.Synopsis,
		Status:   status,
		OwnerID:  actor.ID,
	}
	p.Embedding = s.tryEmbed(ctx, p.Title, p.SynopsisText())

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if mentor != nil {
		if err := s.repo.AttachMentor(ctx, p.ID, mentor.ID); err != nil {
			return nil, err
		}
		p.Mentors = []domain.Mentor{{AccountID: mentor.ID, Email: mentor.Email}}
	}

	return p, nil
}

// ListApproved returns all approved projects. Open to any
// authenticated account.
func (s *ProjectService) ListApproved(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListApproved(ctx)
}

// ListMine returns the caller's own projects regardless of status.
func (s *ProjectService) ListMine(ctx context.Context, actor *authdomain.Account) ([]domain.Project, error) {
	return s.repo.ListByOwner(ctx, actor.ID)
}

// ListMentored returns the approved projects the caller mentors.
// Reviewer-only.
func (s *ProjectService) ListMentored(ctx context.Context, actor *authdomain.Account) ([]domain.Project, error) {
	if !s.policy.CanReview(actor) {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.ListMentored(ctx, actor.ID)
}

// ListPending returns the review queue. Reviewer-only.
func (s *ProjectService) ListPending(ctx context.Context, actor *authdomain.Account) ([]domain.Project, error) {
	if !s.policy.CanReview(actor) {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.ListPending(ctx)
}

// Approve sets the project status to approved. Reviewer-only and
// unconditional: approving an already approved project succeeds again.
func (s *ProjectService) Approve(ctx context.Context, actor *authdomain.Account, id int64) (*domain.Project, error) {
	return s.review(ctx, actor, id, domain.StatusApproved)
}

// Reject sets the project status to rejected. Reviewer-only.
func (s *ProjectService) Reject(ctx context.Context, actor *authdomain.Account, id int64) (*domain.Project, error) {
	return s.review(ctx, actor, id, domain.StatusRejected)
}

func (s *ProjectService) review(ctx context.Context, actor *authdomain.Account, id int64, status string) (*domain.Project, error) {
	if !s.policy.CanReview(actor) {
		return nil, authdomain.ErrForbidden
	}
	return s.repo.SetStatus(ctx, id, status)
}

// Update applies a partial edit. If title or synopsis changed, the
// embedding is recomputed from the new text; a failed recompute stores
// NULL rather than keeping a stale vector. An edit touching neither
// field leaves the stored embedding untouched.
func (s *ProjectService) Update(ctx context.Context, actor *authdomain.Account, id int64, in UpdateInput) (*domain.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanModify(actor, p) {
		return nil, domain.ErrForbidden
	}

	if in.Title == nil && in.Synopsis == nil {
		return p, nil
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
		}
		p.Title = title
	}
	if in.Synopsis != nil {
		p.Synopsis = in.Synopsis
	}

	p.Embedding = s.tryEmbed(ctx, p.Title, p.SynopsisText())

	if err := s.repo.UpdateContent(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a project and its mentor associations permanently.
func (s *ProjectService) Delete(ctx context.Context, actor *authdomain.Account, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.policy.CanModify(actor, p) {
		return domain.ErrForbidden
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// tryEmbed computes the embedding for the concatenated content, logging
// and returning nil on failure so the primary workflow keeps going.
func (s *ProjectService) tryEmbed(ctx context.Context, title, synopsis string) []float32 {
	vec, err := s.embedder.Embed(ctx, title+" "+synopsis)
	if err != nil {
		log.Printf("[projects] embedding skipped: %v", err)
		return nil
	}
	return vec
}
