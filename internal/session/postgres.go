package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	appErrors "mindhaven/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps sessions in the sessions table with a TTL applied
// at write time.
type PostgresStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewPostgresStore(db *gorm.DB, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl}
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*Record, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&sess).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return sess.toRecord(), nil
}

func (s *PostgresStore) Set(ctx context.Context, token string, record *Record) error {
	sess := Session{
		Token:     token,
		UserID:    record.UserID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
		Role:      record.Role,
		LoggedIn:  record.LoggedIn,
		ExpiresAt: time.Now().Add(s.ttl),
		CreatedAt: time.Now(),
	}

	// Tokens are normally fresh, but re-setting an existing one must
	// overwrite rather than fail on the primary key.
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&sess).Error
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Delete(&Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry. Called periodically
// from main; a failed purge only delays cleanup.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&Session{}, "expires_at <= ?", time.Now())
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
