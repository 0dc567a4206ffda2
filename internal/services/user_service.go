package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/repository"
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/utils"
)

// UserService handles the user directory
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpsertUserInput is the profile sent by the client after sign-in.
type UpsertUserInput struct {
	Name     string
	Email    string
	PhotoURL string
	Role     models.Role
	Skill    string
}

// Upsert creates the user or overwrites the profile of the one with the same
// email. Anyone may register a new email as Worker or Buyer. An existing
// profile may only be changed by its owner or an Admin, and Admin is never
// granted or taken away here. caller is the token email, empty when anonymous.
// The returned flag is true when a new user was created.
func (s *UserService) Upsert(ctx context.Context, caller string, input UpsertUserInput) (*models.User, bool, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if input.Role != "" && !input.Role.Valid() {
		return nil, false, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	role := input.Role
	if existing == nil {
		if role == "" {
			role = models.RoleWorker
		}
		if role == models.RoleAdmin {
			return nil, false, ErrAdminSelfAssign
		}
	} else {
		if err := s.authorizeProfileChange(ctx, caller, existing); err != nil {
			return nil, false, err
		}
		switch {
		case existing.Role == models.RoleAdmin, role == "":
			role = existing.Role
		case role == models.RoleAdmin:
			return nil, false, ErrAdminSelfAssign
		}
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		PhotoURL: input.PhotoURL,
		Role:     role,
		Skill:    input.Skill,
	}
	created, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, created, nil
}

func (s *UserService) authorizeProfileChange(ctx context.Context, caller string, target *models.User) error {
	if caller == "" {
		return ErrAuthenticationRequired
	}
	if caller == target.Email {
		return nil
	}

	actor, err := s.userRepo.FindByEmail(ctx, caller)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// RoleOf returns the stored role; unknown emails are ErrUserNotFound.
func (s *UserService) RoleOf(ctx context.Context, email string) (models.Role, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// List returns users newest first, optionally restricted to one role.
func (s *UserService) List(ctx context.Context, role *models.Role, pagination utils.PaginationParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, repository.UserFilter{Role: role, Pagination: pagination})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// AdjustCoins applies a signed delta to a balance. Admins may apply any delta;
// everyone else may only spend from their own balance.
func (s *UserService) AdjustCoins(ctx context.Context, actor *models.User, email string, delta int64) (*models.User, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: coins must be non-zero", ErrValidation)
	}
	if actor.Role != models.RoleAdmin && (actor.Email != email || delta > 0) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.AdjustCoins(ctx, email, delta)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrInsufficientCoins):
			return nil, ErrInsufficientCoins
		}
		return nil, fmt.Errorf("failed to adjust coins: %w", err)
	}
	return user, nil
}

// SetComment replaces the comment field of the caller, or of anyone for admins.
func (s *UserService) SetComment(ctx context.Context, actor *models.User, email, comment string) error {
	if actor.Role != models.RoleAdmin && actor.Email != email {
		return ErrForbidden
	}
	if err := s.userRepo.SetComment(ctx, email, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set comment: %w", err)
	}
	return nil
}

// SetRole changes a user's role. It is the only way to grant Admin.
func (s *UserService) SetRole(ctx context.Context, email string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if err := s.userRepo.SetRole(ctx, email, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}
