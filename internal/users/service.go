package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/telemetry"
)

// DeleteConfirmation must be sent verbatim to delete an account.
const DeleteConfirmation = "DELETE"

// AccountCleaner removes data owned by a user before the user row goes away.
type AccountCleaner interface {
	PurgeUser(ctx context.Context, userID string) error
}

type Service struct {
	Repo    Repo
	Cleaner AccountCleaner
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new active user with a hashed password.
func (s *Service) Create(ctx context.Context, email, password, fullName string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidInput
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(fullName),
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

// Authenticate returns the active user matching email and password.
// Unknown emails, bad passwords and inactive accounts all yield ErrWrongPassword.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	user, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrWrongPassword
	}
	if err != nil {
		return User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) || !user.IsActive {
		return User{}, ErrWrongPassword
	}
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if err := s.ready(); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

// IsActive reports whether userID exists and is active.
func (s *Service) IsActive(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

// ProfileUpdate carries optional profile changes.
type ProfileUpdate struct {
	FullName *string
	Email    *string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (User, error) {
	if upd.FullName == nil && upd.Email == nil {
		return User{}, ErrInvalidInput
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if upd.FullName != nil {
		user.FullName = strings.TrimSpace(*upd.FullName)
	}
	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		if email == "" {
			return User{}, ErrInvalidInput
		}
		user.Email = email
	}
	return s.Repo.Update(ctx, user)
}

func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}
	if oldPassword == newPassword {
		return ErrSamePassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	_, err = s.Repo.Update(ctx, user)
	return err
}

// DeleteAccount verifies the password and confirmation, purges owned data
// through the cleaner, then removes the user.
func (s *Service) DeleteAccount(ctx context.Context, userID, password, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return ErrBadConfirmation
	}
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return ErrWrongPassword
	}
	if s.Cleaner != nil {
		if err := s.Cleaner.PurgeUser(ctx, userID); err != nil {
			return fmt.Errorf("purge user data: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	telemetry.Info("users.account_deleted", map[string]any{"user_id": userID})
	return nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return nil
}
