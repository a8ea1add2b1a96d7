package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrFieldsRequired       = errors.New("username and name are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrTokenRequired        = errors.New("a registration token is required")
	ErrInvalidToken         = errors.New("invalid or already used token")
	ErrDuplicateIdentity    = errors.New("username or email already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var emailPattern = regexp.MustCompile(`^[\w\.\-+]+@[\w\.\-]+\.\w+$`)

// AuthService handles registration, credential verification and
// online-status tracking.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	Name            string
	Token           string
}

// Register creates a new account. The first account ever created needs no
// token and becomes the original admin; every later registration must
// redeem an unused token, consumed atomically with the user insert.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if username == "" || name == "" {
		return nil, ErrFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateWithRegistration(user, strings.TrimSpace(input.Token)); err != nil {
		switch {
		case errors.Is(err, repository.ErrTokenRequired):
			return nil, ErrTokenRequired
		case errors.Is(err, repository.ErrTokenUnavailable):
			return nil, ErrInvalidToken
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, ErrDuplicateIdentity
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials, marks the user online, and returns the
// authenticated user. Failures never reveal whether the username exists.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.SetOnline(user.ID, true); err != nil {
		return nil, fmt.Errorf("failed to mark user online: %w", err)
	}
	user.IsOnline = true

	return user, nil
}

// Logout marks the user offline. Session invalidation happens at the HTTP
// layer.
func (s *AuthService) Logout(userID uint64) error {
	return s.userRepo.SetOnline(userID, false)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ResetPassword rehashes and stores a new password for the target user.
// Admin only.
func (s *AuthService) ResetPassword(actor *models.User, targetID uint64, newPassword string) error {
	if !authz.Can(actor, authz.ActionResetPassword, nil) {
		return ErrPermissionDenied
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	return s.userRepo.UpdatePasswordHash(targetID, string(hashedPassword))
}
