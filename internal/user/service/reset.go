package service

import (
	"context"
	"fmt"

	"mindhaven/internal/logger"
	"mindhaven/internal/user/repository"
	"mindhaven/internal/user/validator"
	"mindhaven/pkg/utils"

	"go.uber.org/zap"
)

// ResetEntry pairs an account email with its replacement password.
type ResetEntry struct {
	Email       string
	NewPassword string
}

// ResetReport summarizes a bulk reset. Skipped lists entries that were
// malformed or matched no user; they do not block the rest of the batch.
type ResetReport struct {
	Updated int
	Skipped []string
}

// ResetPasswords rehashes and updates every entry inside one
// transaction. An entry matching zero rows is reported and skipped; any
// database error rolls the whole batch back, so a partial reset can
// never be committed.
func ResetPasswords(ctx context.Context, repo repository.UserRepository, entries []ResetEntry) (*ResetReport, error) {
	report := &ResetReport{}

	err := repo.Transaction(ctx, func(tx repository.UserRepository) error {
		for _, entry := range entries {
			if !validator.IsValidEmail(entry.Email) {
				logger.Warn("Malformed email in reset entry", zap.String("email", entry.Email))
				report.Skipped = append(report.Skipped, entry.Email)
				continue
			}

			hashed, err := utils.HashPassword(entry.NewPassword)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", entry.Email, err)
			}

			rows, err := tx.UpdatePasswordByEmail(ctx, entry.Email, hashed)
			if err != nil {
				return err
			}
			if rows == 0 {
				logger.Warn("No user matched reset entry", zap.String("email", entry.Email))
				report.Skipped = append(report.Skipped, entry.Email)
				continue
			}

			report.Updated += int(rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}
