package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authdomain "github.com/projecthub/projecthub-backend/internal/auth/domain"
	projdomain "github.com/projecthub/projecthub-backend/internal/projects/domain"
)

func TestPolicy_CanReview(t *testing.T) {
	policy := NewPolicy()

	assert.True(t, policy.CanReview(&authdomain.Account{Role: authdomain.RoleTeacher}))
	assert.False(t, policy.CanReview(&authdomain.Account{Role: authdomain.RoleStudent}))
}

func TestPolicy_CanModify(t *testing.T) {
	policy := NewPolicy()

	owner := &authdomain.Account{ID: 1, Role: authdomain.RoleStudent}
	stranger := &authdomain.Account{ID: 2, Role: authdomain.RoleStudent}
	teacher := &authdomain.Account{ID: 3, Role: authdomain.RoleTeacher}

	tests := []struct {
		name    string
		account *authdomain.Account
		status  string
		want    bool
	}{
		{"owner while pending", owner, projdomain.StatusPending, true},
		{"owner after approval", owner, projdomain.StatusApproved, false},
		{"owner after rejection", owner, projdomain.StatusRejected, false},
		{"non-owner student", stranger, projdomain.StatusPending, false},
		{"teacher on pending", teacher, projdomain.StatusPending, true},
		{"teacher on approved", teacher, projdomain.StatusApproved, true},
		{"teacher on rejected", teacher, projdomain.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := &projdomain.Project{ID: 10, OwnerID: owner.ID, Status: tt.status}
			assert.Equal(t, tt.want, policy.CanModify(tt.account, project))
		})
	}
}
