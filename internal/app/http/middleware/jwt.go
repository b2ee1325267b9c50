package middleware

import (
	"net/http"
	"strings"

	"artmarket-admin/internal/api/respond"
	"artmarket-admin/internal/auth/token"
	"artmarket-admin/internal/domain/users"
	"artmarket-admin/internal/infra/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// bearer accepts both the raw token and the "Bearer <token>" form.
func bearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func AuthMiddleware(iss *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c.GetHeader("Authorization"))
		if raw == "" {
			respond.Fail(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		claims, err := iss.Parse(raw)
		if err != nil {
			logger.FromGin(c).Debug("rejected token", zap.Error(err))
			respond.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRole lets the request through when the caller holds any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(CtxRole)
		if !exists {
			respond.Fail(c, http.StatusUnauthorized, "Role not found in token")
			c.Abort()
			return
		}

		role, _ := value.(string)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		respond.Fail(c, http.StatusForbidden, "Access denied")
		c.Abort()
	}
}

// Actor returns the authenticated user id, or nil on public routes.
func Actor(c *gin.Context) *uint {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

func Role(c *gin.Context) string {
	return c.GetString(CtxRole)
}

// CurrentActor bundles the caller's id and role for ownership checks.
func CurrentActor(c *gin.Context) users.Actor {
	a := users.Actor{Role: Role(c)}
	if id := Actor(c); id != nil {
		a.ID = *id
	}
	return a
}
