package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projecthub/projecthub-backend/internal/auth/domain"
)

// Authenticator resolves a bearer credential to an account.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (*domain.Account, error)
}

// BearerAuth validates the Authorization header, resolves the acting
// account, and stores it in the gin context for handlers.
func BearerAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		account, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := "could not validate credentials"
			if !errors.Is(err, domain.ErrInvalidCredential) && !errors.Is(err, domain.ErrUnknownIdentity) {
				status = http.StatusInternalServerError
				msg = "authentication lookup failed"
			}
			c.JSON(status, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set("account", account)
		c.Next()
	}
}

// RequireTeacher rejects requests from non-teacher accounts. Must run
// after BearerAuth.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("account")
		account, _ := v.(*domain.Account)
		if !ok || account == nil || !account.IsTeacher() {
			c.JSON(http.StatusForbidden, gin.H{"error": "operation not permitted for this role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
