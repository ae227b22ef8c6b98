package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
	"github.com/Apurer/erpflow/internal/domains/users/ports"
)

// Demo credentials that bootstrap an administrator on an empty database.
const (
	DemoEmail     = "admin@demo.com"
	DemoPassword  = "demo123456"
	DemoFirstName = "John"
	DemoLastName  = "Administrator"
)

const (
	MessageLoginSuccess = "Login successful"
	MessageDemoCreated  = "Demo user created and logged in successfully"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	now      func() time.Time
}

type Option func(*Service)

// WithSessionStore records issued tokens so they can be revoked.
func WithSessionStore(sessions ports.SessionStore) Option {
	return func(s *Service) { s.sessions = sessions }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo ports.Repository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{repo: repo, hasher: hasher, tokens: tokens, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.sessions == nil {
		s.sessions = ports.NoopSessionStore
	}
	return s
}

// Register creates an account with a hashed password.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	role := input.Role
	if role != "" {
		parsed, err := domain.ParseRole(string(role))
		if err != nil {
			return nil, mapError(err)
		}
		role = parsed
	}
	user, err := domain.NewUser(uuid.NewString(), input.Email, input.FirstName, input.LastName, role)
	if err != nil {
		return nil, mapError(err)
	}
	return s.create(ctx, user, input.Password)
}

// Login verifies credentials and issues a token. On an empty database the demo
// credentials create the demo administrator first.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := domain.ValidateEmail(email); err != nil {
		return nil, mapError(err)
	}
	if password == "" {
		return nil, mapError(domain.ErrEmptyPassword)
	}

	message := MessageLoginSuccess
	user, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		user, err = s.bootstrapDemo(ctx, email, password)
		if err != nil {
			return nil, err
		}
		message = MessageDemoCreated
	case err != nil:
		return nil, err
	default:
		if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
	}

	token, expiresAt, err := s.tokens.Issue(user, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &ports.LoginResult{User: user, Token: token, ExpiresAt: expiresAt, Message: message}, nil
}

// Logout revokes the session bound to token.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate verifies the token and its live session.
func (s *Service) Authenticate(ctx context.Context, token string) (*ports.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrInvalidToken)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, mapError(ports.ErrInvalidToken)
	}
	live, err := s.sessions.Exists(ctx, token)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, mapError(ports.ErrInvalidToken)
	}
	return &ports.Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role, Token: token}, nil
}

func (s *Service) bootstrapDemo(ctx context.Context, email, password string) (*domain.User, error) {
	if email != DemoEmail || password != DemoPassword {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := domain.NewUser(uuid.NewString(), DemoEmail, DemoFirstName, DemoLastName, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, user, password)
}

func (s *Service) create(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	now := s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	return s.repo.Create(ctx, user)
}

var _ ports.Service = (*Service)(nil)
