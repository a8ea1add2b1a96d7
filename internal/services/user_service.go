package services

import (
	"errors"
	"fmt"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

// ErrNameRequired is returned when a profile edit blanks the name.
var ErrNameRequired = errors.New("name cannot be empty")

// UserService handles user administration and profile management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(actor *models.User) ([]models.User, error) {
	if !authz.Can(actor, authz.ActionListUsers, nil) {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.List()
}

// ListOnlineUsers returns the accounts currently marked online. Admin only.
func (s *UserService) ListOnlineUsers(actor *models.User) ([]models.User, error) {
	if !authz.Can(actor, authz.ActionListOnline, nil) {
		return nil, ErrPermissionDenied
	}
	return s.userRepo.ListOnline()
}

// ListProfiles returns all accounts for the profile directory. Any
// authenticated user may browse profiles.
func (s *UserService) ListProfiles() ([]models.User, error) {
	return s.userRepo.List()
}

// SetAdmin promotes or demotes the target. Promotion only applies to
// non-admins; demotion is refused for the original admin.
func (s *UserService) SetAdmin(actor *models.User, targetID uint64, admin bool) (*models.User, error) {
	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	action := authz.ActionDemoteUser
	if admin {
		action = authz.ActionPromoteUser
	}
	if !authz.Can(actor, action, target) {
		return nil, ErrPermissionDenied
	}

	if err := s.userRepo.SetAdmin(targetID, admin); err != nil {
		return nil, fmt.Errorf("failed to update admin flag: %w", err)
	}
	target.IsAdmin = admin

	return target, nil
}

// DeleteUser removes the target account. The original admin can never be
// deleted.
func (s *UserService) DeleteUser(actor *models.User, targetID uint64) error {
	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !authz.Can(actor, authz.ActionDeleteUser, target) {
		return ErrPermissionDenied
	}

	return s.userRepo.Delete(targetID)
}

// ProfileInput holds the editable profile fields. Nil fields are left
// untouched.
type ProfileInput struct {
	Name       *string
	JobProfile *string
	Github     *string
	Discord    *string
}

// UpdateProfile edits the actor's own profile fields.
func (s *UserService) UpdateProfile(actor *models.User, input ProfileInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		user.Name = *input.Name
	}
	if input.JobProfile != nil {
		user.JobProfile = *input.JobProfile
	}
	if input.Github != nil {
		user.Github = *input.Github
	}
	if input.Discord != nil {
		user.Discord = *input.Discord
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
