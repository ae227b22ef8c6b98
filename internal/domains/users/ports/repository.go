package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("User with this email already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient permissions")
)

type Repository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// SessionStore tracks issued tokens so they can be revoked before expiry.
type SessionStore interface {
	Save(ctx context.Context, userID, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}

// NoopSessionStore accepts every token. Revocation is then a no-op.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(context.Context, string, string, time.Time) error { return nil }
func (noopSessionStore) Delete(context.Context, string) error                   { return nil }
func (noopSessionStore) Exists(context.Context, string) (bool, error)           { return true, nil }

// PasswordHasher hashes and verifies secrets.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(user *domain.User, now time.Time) (token string, expiresAt time.Time, err error)
	Parse(token string) (Claims, error)
}
