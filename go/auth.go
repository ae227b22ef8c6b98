package erpserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
	apierrors "github.com/Apurer/erpflow/internal/shared/errors"
)

const principalContextKey = "erpflow.principal"

// Authenticator resolves a bearer token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userports.Principal, error)
}

// RequirePermission rejects requests whose bearer token is missing, invalid, or lacks permission.
func RequirePermission(authenticator Authenticator, permission userdomain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("Access token required"))
			return
		}
		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("Invalid or expired token"))
			return
		}
		if !principal.Can(permission) {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("Insufficient permissions"))
			return
		}
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal attached by RequirePermission, if any.
func PrincipalFrom(c *gin.Context) (*userports.Principal, bool) {
	value, ok := c.Get(principalContextKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(*userports.Principal)
	return principal, ok
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}
