package services

import (
	"errors"
	"fmt"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"github.com/irisdash/dashboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenAlreadyUsed = errors.New("token already used")
)

// TokenService manages registration tokens. All operations are admin only.
type TokenService struct {
	tokenRepo repository.TokenRepository
}

// NewTokenService creates a new TokenService.
func NewTokenService(tokenRepo repository.TokenRepository) *TokenService {
	return &TokenService{
		tokenRepo: tokenRepo,
	}
}

// Mint generates and stores a fresh registration token.
func (s *TokenService) Mint(actor *models.User) (*models.RegistrationToken, error) {
	if !authz.Can(actor, authz.ActionMintToken, nil) {
		return nil, ErrPermissionDenied
	}

	value, err := utils.GenerateRegistrationToken()
	if err != nil {
		return nil, err
	}

	token := &models.RegistrationToken{
		Token:     value,
		CreatedBy: actor.ID,
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// List returns all registration tokens.
func (s *TokenService) List(actor *models.User) ([]models.RegistrationToken, error) {
	if !authz.Can(actor, authz.ActionListTokens, nil) {
		return nil, ErrPermissionDenied
	}
	return s.tokenRepo.List()
}

// Delete removes an unused token. A token that has already been redeemed
// cannot be deleted.
func (s *TokenService) Delete(actor *models.User, token string) error {
	if !authz.Can(actor, authz.ActionDeleteToken, nil) {
		return ErrPermissionDenied
	}

	if err := s.tokenRepo.DeleteUnused(token); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrTokenNotFound
		case errors.Is(err, repository.ErrTokenSpent):
			return ErrTokenAlreadyUsed
		default:
			return fmt.Errorf("failed to delete token: %w", err)
		}
	}
	return nil
}
