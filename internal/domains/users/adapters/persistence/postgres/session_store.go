package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
)

// SessionStore persists issued tokens in the relational database.
type SessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// DefaultSessionTTL provides the fallback TTL when a token carries no expiry.
const DefaultSessionTTL = 24 * time.Hour

// NewSessionStore wires a GORM-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;size:36;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts a session keyed by token.
func (s *SessionStore) Save(ctx context.Context, userID, token string, expiresAt time.Time) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	token = strings.TrimSpace(token)
	if userID == "" || token == "" {
		return errors.New("user id and token are required")
	}
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(DefaultSessionTTL)
	}
	expiry := expiresAt.UTC()
	rec := sessionRecord{UserID: userID, Token: token, ExpiresAt: &expiry}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete revokes a session by token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "token = ?", token).Error
}

// Exists reports whether token has an unexpired session.
func (s *SessionStore) Exists(ctx context.Context, token string) (bool, error) {
	if err := s.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&sessionRecord{}).
		Where("token = ? AND (expires_at IS NULL OR expires_at > ?)", token, s.now().UTC()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PurgeExpired removes all expired sessions and reports how many were dropped.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", s.now().UTC()).Delete(&sessionRecord{})
	return res.RowsAffected, res.Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}

var _ userports.SessionStore = (*SessionStore)(nil)
