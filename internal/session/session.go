package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the server-side state addressed by the opaque token held in
// the browser cookie. Absence of a record, or LoggedIn != true, means
// the request is anonymous.
type Record struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      string
	LoggedIn  bool
}

// Store is the process-external session state. Implementations must
// treat unknown and expired tokens identically (ErrSessionNotFound) and
// Destroy must be idempotent.
type Store interface {
	Get(ctx context.Context, token string) (*Record, error)
	Set(ctx context.Context, token string, record *Record) error
	Destroy(ctx context.Context, token string) error
}

// NewToken returns a fresh opaque session token.
func NewToken() string {
	return uuid.New().String()
}

// Session is the persisted shape of a Record, kept in its own table so
// sessions survive process restarts but never outlive their expiry.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	FirstName string
	LastName  string
	Email     string
	Role      string
	LoggedIn  bool
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) toRecord() *Record {
	return &Record{
		UserID:    s.UserID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Role:      s.Role,
		LoggedIn:  s.LoggedIn,
	}
}
