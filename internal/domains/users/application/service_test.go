package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
	"github.com/Apurer/erpflow/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, ports.ErrDuplicateEmail
	}
	copy := *user
	f.users[user.Email] = &copy
	return &copy, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]string{}}
}

func (f *fakeSessionStore) Save(_ context.Context, userID, token string, _ time.Time) error {
	f.sessions[token] = userID
	return nil
}

func (f *fakeSessionStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionStore) Exists(_ context.Context, token string) (bool, error) {
	_, ok := f.sessions[token]
	return ok, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokens struct {
	issued map[string]ports.Claims
}

func (f *fakeTokens) Issue(user *domain.User, now time.Time) (string, time.Time, error) {
	if f.issued == nil {
		f.issued = map[string]ports.Claims{}
	}
	token := "tok-" + user.ID
	exp := now.Add(time.Hour)
	f.issued[token] = ports.Claims{UserID: user.ID, Email: user.Email, Role: user.Role, ExpiresAt: exp}
	return token, exp, nil
}

func (f *fakeTokens) Parse(token string) (ports.Claims, error) {
	claims, ok := f.issued[token]
	if !ok {
		return ports.Claims{}, errors.New("bad token")
	}
	return claims, nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionStore) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, plainHasher{}, &fakeTokens{},
		WithSessionStore(sessions),
		WithClock(func() time.Time { return fixed }),
	)
	return svc, repo, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{
		Email: "Sales@Demo.com", Password: "demo123456", FirstName: "Jane", LastName: "Sales", Role: "sales",
	})
	require.NoError(t, err)
	assert.Equal(t, "sales@demo.com", user.Email)
	assert.Equal(t, domain.RoleSales, user.Role)
	assert.Equal(t, "hashed:demo123456", user.PasswordHash)

	result, err := svc.Login(ctx, "sales@demo.com", "demo123456")
	require.NoError(t, err)
	assert.Equal(t, MessageLoginSuccess, result.Message)
	assert.NotEmpty(t, result.Token)
	assert.Contains(t, sessions.sessions, result.Token)

	principal, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.True(t, principal.Can(domain.PermWriteCRM))
	assert.False(t, principal.Can(domain.PermWriteFinance))

	require.NoError(t, svc.Logout(ctx, result.Token))
	_, err = svc.Authenticate(ctx, result.Token)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrWeakPassword)

	_, err = svc.Register(ctx, ports.RegisterInput{Email: "a@b.com", Password: "longenough", FirstName: "A", LastName: "B", Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	input := ports.RegisterInput{Email: "a@b.com", Password: "longenough", FirstName: "A", LastName: "B"}
	_, err = svc.Register(ctx, input)
	require.NoError(t, err)
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)
}

func TestLogin_DemoBootstrap(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Login(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, MessageDemoCreated, result.Message)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
	assert.Equal(t, "John Administrator", result.User.FullName())
	assert.Len(t, repo.users, 1)

	again, err := svc.Login(ctx, DemoEmail, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, MessageLoginSuccess, again.Message)
}

func TestLogin_DemoSkippedWhenUsersExist(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Email: "other@demo.com", Password: "longenough", FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, DemoEmail, DemoPassword)
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, "missing@demo.com", "whatever1")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Register(ctx, ports.RegisterInput{Email: "x@demo.com", Password: "longenough", FirstName: "A", LastName: "B"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "x@demo.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = svc.Login(ctx, "x@demo.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthenticate_RejectsUnknownToken(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Authenticate(context.Background(), "forged")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
	_, err = svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrInvalidToken)
}
