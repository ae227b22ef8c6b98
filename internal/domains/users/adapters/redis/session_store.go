package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
)

const keyPrefix = "erpflow:session:"

// SessionStore keeps sessions in Redis with a TTL matching the token expiry.
type SessionStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewSessionStore(client goredis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return errors.New("user id and token are required")
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+token, userID, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *SessionStore) Exists(ctx context.Context, token string) (bool, error) {
	if s == nil || s.client == nil {
		return false, errors.New("redis session store not configured")
	}
	n, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
