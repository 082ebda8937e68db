package domain

import "time"

// Project lifecycle states. Status is always exactly one of these; a
// pending project is re-targeted to approved or rejected only by
// explicit reviewer action.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Project represents a submitted proposal. The embedding is owned
// exclusively by the project and is nil whenever the embedding service
// was unavailable at the last content change.
type Project struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Synopsis  *string   `json:"synopsis,omitempty"`
	Status    string    `json:"status"`
	OwnerID   int64     `json:"owner_id"`
	Embedding []float32 `json:"-"`
	Mentors   []Mentor  `json:"mentors,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mentor is the read-only derived view of a mentor association. The
// association itself lives in the project_mentors join relation.
type Mentor struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
}

// SynopsisText returns the synopsis or the empty string when absent.
func (p *Project) SynopsisText() string {
	if p.Synopsis == nil {
		return ""
	}
	return *p.Synopsis
}

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
