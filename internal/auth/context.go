package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/projecthub/projecthub-backend/internal/auth/domain"
)

// CtxAccount is the gin context key the bearer middleware stores the
// resolved account under.
const CtxAccount = "account"

// CurrentAccount extracts the authenticated account from the gin
// context. Returns nil when the middleware did not run or rejected the
// request.
func CurrentAccount(c *gin.Context) *domain.Account {
	v, ok := c.Get(CtxAccount)
	if !ok {
		return nil
	}
	account, ok := v.(*domain.Account)
	if !ok {
		return nil
	}
	return account
}
