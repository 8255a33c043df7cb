// Command resetpw performs a bulk password reset from a CSV file of
// email,newPassword lines. All updates run in one transaction: entries
// matching no user are reported and skipped, any database error rolls
// the whole batch back. Passwords are never echoed to the output.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"time"

	"mindhaven/internal/config"
	"mindhaven/internal/database"
	"mindhaven/internal/logger"
	"mindhaven/internal/user/repository"
	"mindhaven/internal/user/service"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "", "CSV file with email,newPassword lines")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for the batch")
	flag.Parse()

	if *file == "" {
		os.Stderr.WriteString("usage: resetpw -file <csv>\n")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	entries, err := readEntries(*file)
	if err != nil {
		logger.Fatal("Failed to read reset file", zap.Error(err))
	}
	if len(entries) == 0 {
		logger.Fatal("Reset file contains no entries")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := repository.NewRepository(db)
	report, err := service.ResetPasswords(ctx, repo, entries)
	if err != nil {
		logger.Fatal("Password reset rolled back", zap.Error(err))
	}

	logger.Info("Password reset committed",
		zap.Int("updated", report.Updated),
		zap.Strings("skipped", report.Skipped),
	)
}

func readEntries(path string) ([]service.ResetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	entries := make([]service.ResetEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, service.ResetEntry{
			Email:       record[0],
			NewPassword: record[1],
		})
	}
	return entries, nil
}
