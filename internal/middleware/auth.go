package middleware

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rahafha1/project-manager-api/internal/access"
	"github.com/rahafha1/project-manager-api/internal/auth"
	"github.com/rahafha1/project-manager-api/internal/constants"
	apierrors "github.com/rahafha1/project-manager-api/internal/errors"
)

// PrincipalResolver turns credentials into a principal.
type PrincipalResolver interface {
	ParseAccessToken(token string) (uint64, error)
	Principal(ctx context.Context, userID uint64) (access.Principal, error)
}

// RequireAuth authenticates the request with a bearer access token or,
// failing that, the session cookie. The resolved principal is stored in
// the context.
func RequireAuth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := credentials(c, resolver)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		principal, err := resolver.Principal(c.Request.Context(), userID)
		if err != nil || !principal.IsAuthenticated {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, principal.UserID)
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

func credentials(c *gin.Context, resolver PrincipalResolver) (uint64, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, ok := auth.BearerToken(header)
		if !ok {
			return 0, false
		}
		userID, err := resolver.ParseAccessToken(token)
		if err != nil {
			return 0, false
		}
		return userID, true
	}

	session := sessions.Default(c)
	return toUserID(session.Get(constants.ContextKeyUserID))
}

// GetPrincipal returns the principal set by RequireAuth, or the anonymous
// principal.
func GetPrincipal(c *gin.Context) access.Principal {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return access.Principal{}
	}
	principal, _ := value.(access.Principal)
	return principal
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}

func toUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
