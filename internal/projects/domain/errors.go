package domain

import "errors"

var (
	ErrNotFound             = errors.New("project not found")
	ErrMentorNotFound       = errors.New("mentor not found")
	ErrValidation           = errors.New("validation failed")
	ErrForbidden            = errors.New("not authorized for this project")
	ErrEmbeddingUnavailable = errors.New("embedding generation unavailable")
)
