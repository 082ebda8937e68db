package domain

import "errors"

var (
	ErrInvalidCredential = errors.New("could not validate credentials")
	ErrUnknownIdentity   = errors.New("no account for credential subject")
	ErrForbidden         = errors.New("operation not permitted for this role")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidRole       = errors.New("role must be teacher or student")
	ErrAccountNotFound   = errors.New("account not found")
)
