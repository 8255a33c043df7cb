package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindhaven/internal/session"
	"mindhaven/internal/user/model"
	appErrors "mindhaven/pkg/errors"
	"mindhaven/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.User{
		FirstName:      "Test",
		LastName:       "User",
		Email:          email,
		PasswordHashed: hash,
		Role:           model.RolePatient,
		AccountStatus:  model.StatusActive,
	}))
}

func TestResetPasswords_UpdatesAndCommits(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	ctx := context.Background()
	seedUser(t, repo, "a@example.com", "OldPass1a")
	seedUser(t, repo, "b@example.com", "OldPass1b")

	report, err := ResetPasswords(ctx, repo, []ResetEntry{
		{Email: "a@example.com", NewPassword: "NewPass1a"},
		{Email: "b@example.com", NewPassword: "NewPass1b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Updated)
	assert.Empty(t, report.Skipped)

	// Round-trip: passwords set by the reset verify via Authenticate.
	svc := NewService(repo, session.NewMemoryStore(time.Minute))
	_, err = svc.Authenticate(ctx, "a@example.com", "NewPass1a")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "a@example.com", "OldPass1a")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestResetPasswords_UnknownEmailSkippedBatchCommits(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	ctx := context.Background()
	seedUser(t, repo, "a@example.com", "OldPass1a")

	report, err := ResetPasswords(ctx, repo, []ResetEntry{
		{Email: "ghost@example.com", NewPassword: "NewPass1x"},
		{Email: "a@example.com", NewPassword: "NewPass1a"},
	})
	require.NoError(t, err)

	// The unknown entry is reported, the rest of the batch still lands.
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []string{"ghost@example.com"}, report.Skipped)

	user, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(user.PasswordHashed, "NewPass1a"))
}

func TestResetPasswords_MalformedEmailSkippedWithoutDBHit(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	ctx := context.Background()
	seedUser(t, repo, "a@example.com", "OldPass1a")

	// If the malformed entry reached the repository this injected error
	// would roll the batch back.
	repo.updatePasswordErr["not-an-email"] = errors.New("should not be queried")

	report, err := ResetPasswords(ctx, repo, []ResetEntry{
		{Email: "not-an-email", NewPassword: "NewPass1x"},
		{Email: "a@example.com", NewPassword: "NewPass1a"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, []string{"not-an-email"}, report.Skipped)
}

func TestResetPasswords_ErrorRollsBackWholeBatch(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	ctx := context.Background()
	seedUser(t, repo, "a@example.com", "OldPass1a")
	seedUser(t, repo, "b@example.com", "OldPass1b")
	repo.updatePasswordErr["b@example.com"] = errors.New("disk full")

	_, err := ResetPasswords(ctx, repo, []ResetEntry{
		{Email: "a@example.com", NewPassword: "NewPass1a"},
		{Email: "b@example.com", NewPassword: "NewPass1b"},
	})
	require.Error(t, err)

	// The first entry's update was rolled back with the batch.
	user, findErr := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, findErr)
	assert.True(t, utils.CheckPassword(user.PasswordHashed, "OldPass1a"))
}
