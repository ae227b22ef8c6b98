package ports

import (
	"context"
	"time"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
}

// LoginResult is returned on a successful sign-in.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Message   string
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID string
	Email  string
	Role   domain.Role
	Token  string
}

// Can reports whether the principal's role grants permission.
func (p Principal) Can(permission domain.Permission) bool {
	return domain.HasPermission(p.Role, permission)
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*Principal, error)
}
