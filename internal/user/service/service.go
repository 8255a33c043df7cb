package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindhaven/internal/logger"
	"mindhaven/internal/session"
	"mindhaven/internal/user/model"
	"mindhaven/internal/user/repository"
	"mindhaven/internal/user/validator"
	appErrors "mindhaven/pkg/errors"
	"mindhaven/pkg/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo     repository.UserRepository
	sessions session.Store
}

func NewService(repo repository.UserRepository, sessions session.Store) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: sessions,
	}
}

// Register runs every field check and performs no writes unless all
// pass. New accounts are always patient-role and active; the dependent
// patient_details row is created by the repository in the same
// transaction as the user row.
func (s *AuthService) Register(ctx context.Context, form *model.RegisterForm) (*model.User, error) {
	if fieldErrs := validator.ValidateRegisterForm(form); fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	existing, err := s.repo.FindByEmail(ctx, form.Email)
	if err != nil && !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, appErrors.ErrDuplicateEmail
	}

	hashedPassword, err := utils.HashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Email:          form.Email,
		PasswordHashed: hashedPassword,
		Role:           model.RolePatient,
		AccountStatus:  model.StatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, appErrors.ErrDuplicateEmail) {
			// Lost the race between the uniqueness check and the insert.
			return nil, appErrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", appErrors.ErrRegistrationFailed, err)
	}

	return user, nil
}

// AuthResult is what a successful login produces: the authenticated
// user, the opaque session token for the cookie and the role-based
// redirect target.
type AuthResult struct {
	User         *model.User
	SessionToken string
	RedirectPath string
}

// Authenticate verifies credentials against the stored hash. The error
// is the same opaque ErrInvalidCredentials whether the email is unknown,
// the account inactive or the password wrong, so responses never leak
// which part failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive() {
		logger.Warn("Login attempt on inactive account", zap.String("email", email))
		return nil, appErrors.ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.PasswordHashed, password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// A failed touch must not invalidate an otherwise good login.
		logger.Error("Failed to update last login", zap.String("email", email), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	token := session.NewToken()
	record := &session.Record{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		LoggedIn:  true,
	}
	if err := s.sessions.Set(ctx, token, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	switch user.Role {
	case model.RoleAdmin, model.RoleTherapist, model.RolePatient:
	default:
		logger.Warn("Unknown role, defaulting to patient area",
			zap.String("email", email),
			zap.String("role", user.Role),
		)
	}

	return &AuthResult{
		User:         user,
		SessionToken: token,
		RedirectPath: model.DashboardPath(user.Role),
	}, nil
}

// Logout destroys the session for the given token. Destroying an
// unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}
