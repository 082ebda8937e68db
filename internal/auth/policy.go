package auth

import (
	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	projdomain "github.com/projecthub/projecthub-backend/internal/projects/domain"
)

// Policy is the single place the role-based access rules live. Every
// lifecycle operation consults it instead of comparing role strings
// inline.
type Policy struct{}

// NewPolicy creates the access policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// CanReview reports whether the account may act as a reviewer
// (approve, reject, browse the pending queue, list mentored projects).
func (p *Policy) CanReview(account *authdomain.Account) bool {
	return account.Role == authdomain.RoleTeacher
}

// CanModify reports whether the account may edit or delete the project.
// Owners may only act while their submission is still pending review;
// reviewers may always act.
func (p *Policy) CanModify(account *authdomain.Account, project *projdomain.Project) bool {
	if account.Role == authdomain.RoleTeacher {
		return true
	}
	return project.OwnerID == account.ID && project.Status == projdomain.StatusPending
}
