package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Apurer/erpflow/internal/domains/users/domain"
	"github.com/Apurer/erpflow/internal/domains/users/ports"
)

// DefaultTokenTTL applies when no TTL is configured.
const DefaultTokenTTL = 24 * time.Hour

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL reports how long issued tokens stay valid.
func (j *JWTIssuer) TTL() time.Duration { return j.ttl }

func (j *JWTIssuer) Issue(user *domain.User, now time.Time) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, errors.New("user is nil")
	}
	expiresAt := now.Add(j.ttl)
	claims := accessClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWTIssuer) Parse(token string) (ports.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &accessClaims{}, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ports.Claims{}, ports.ErrInvalidToken
	}
	return ports.Claims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Role:      domain.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
