package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindhaven/internal/database"
	"mindhaven/internal/user/model"
	appErrors "mindhaven/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository is the data-access contract for the users table. The
// service layer only sees this interface so tests can swap in an
// in-memory fake.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error)
	Transaction(ctx context.Context, fn func(UserRepository) error) error
}

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewRepository(db *database.Database) *PostgresUserRepository {
	return &PostgresUserRepository{db: db.DB}
}

func newWithGorm(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts the user row and, for patient-role users, the dependent
// patient_details row in the same transaction. A unique violation on the
// email index maps to ErrDuplicateEmail, which also closes the
// check-then-insert race on concurrent registrations.
func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		if user.Role == model.RolePatient {
			details := &model.PatientDetails{
				UserID:    user.ID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(details).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if isEmailUniqueViolation(err) {
			return appErrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// uniqueViolation is the postgres SQLSTATE for a unique constraint hit.
const uniqueViolation = "23505"

func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		strings.Contains(pgErr.ConstraintName, "email")
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login": at,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

// UpdatePasswordByEmail returns the number of rows changed; zero means
// no user with that email, which bulk callers report and skip.
func (r *PostgresUserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to update password for %s: %w", email, result.Error)
	}
	return result.RowsAffected, nil
}

// Transaction runs fn against a repository bound to a single database
// transaction; any error from fn rolls the whole batch back.
func (r *PostgresUserRepository) Transaction(ctx context.Context, fn func(UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newWithGorm(tx))
	})
}
