package service

import (
	"context"
	"errors"

	"github.com/projecthub/projecthub-backend/internal/auth/domain"
)

// AccountStore is the identity-store surface the auth service depends on.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, email, passwordHash, role string) (*domain.Account, error)
}

// AuthService handles registration, login, and credential resolution.
type AuthService struct {
	accounts AccountStore
	tokens   *TokenIssuer
}

// NewAuthService creates a new auth service.
func NewAuthService(accounts AccountStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens}
}

// Register creates a new account with the given role. The role is fixed
// at registration; there is no promotion or demotion afterwards.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.Account, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.accounts.Create(ctx, email, hash, role)
}

// Login verifies the email/password pair and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredential
		}
		return "", nil, err
	}

	if !VerifyPassword(password, account.PasswordHash) {
		return "", nil, domain.ErrInvalidCredential
	}

	token, err := s.tokens.Issue(domain.Claims{Email: account.Email, Role: account.Role})
	if err != nil {
		return "", nil, err
	}
	return token, account, nil
}

// Authenticate resolves a bearer credential to exactly one account.
// A malformed, tampered, or expired token fails with ErrInvalidCredential;
// a valid token whose subject has no account row fails with
// ErrUnknownIdentity.
func (s *AuthService) Authenticate(ctx context.Context, credential string) (*domain.Account, error) {
	claims, err := s.tokens.Verify(credential)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrUnknownIdentity
		}
		return nil, err
	}
	return account, nil
}
