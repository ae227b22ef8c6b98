package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
	"github.com/Apurer/erpflow/internal/domains/users/ports"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("demo123456")
	require.NoError(t, err)
	assert.NotEqual(t, "demo123456", hash)
	assert.NoError(t, h.Compare(hash, "demo123456"))
	assert.Error(t, h.Compare(hash, "wrong"))

	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)
	user := &domain.User{ID: "u-1", Email: "admin@demo.com", Role: domain.RoleAdmin}

	now := time.Now()
	token, exp, err := issuer.Issue(user, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	second, _, err := issuer.Issue(user, now)
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer, err := NewJWTIssuer("secret", time.Hour)
	require.NoError(t, err)
	user := &domain.User{ID: "u-1", Email: "a@b.com", Role: domain.RoleUser}

	expired, _, err := issuer.Issue(user, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	other, err := NewJWTIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Issue(user, time.Now())
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = NewJWTIssuer("", time.Hour)
	assert.Error(t, err)
}
