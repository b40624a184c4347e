package service

import (
	"context"
	"fmt"
	"strings"

	"lostfound/internal/models"
	"lostfound/internal/repository"
)

// AccountService handles profile operations on an authenticated user.
type AccountService struct {
	users repository.Users
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users}
}

var _ Accounts = (*AccountService)(nil)

// Current returns the caller's account without credential fields.
func (s *AccountService) Current(ctx context.Context, userID int) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, fmt.Errorf("user %w", ErrNotFound)
	}
	out := *u
	out.PasswordHash = ""
	out.RefreshToken = ""
	return out, nil
}

// UpdateAccount changes name, email, and contact number. Name and email are
// required; moving to an email held by another account is a conflict.
func (s *AccountService) UpdateAccount(ctx context.Context, userID int, name, email, number string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return models.User{}, invalidInput("name and email are required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, fmt.Errorf("user %w", ErrNotFound)
	}

	if email != u.Email {
		if existing, err := s.users.GetByEmail(ctx, email); err != nil {
			return models.User{}, err
		} else if existing != nil && existing.ID != userID {
			return models.User{}, fmt.Errorf("email %w", ErrConflict)
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, name, email, strings.TrimSpace(number)); err != nil {
		return models.User{}, err
	}
	return s.Current(ctx, userID)
}

// ChangePassword verifies the old password before storing a new hash.
func (s *AccountService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return invalidInput("old and new password are required")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	if err := verifyPassword(u.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
