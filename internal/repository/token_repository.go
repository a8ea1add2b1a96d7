package repository

import (
	"errors"

	"github.com/irisdash/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrTokenSpent is returned when deleting a token that has already been
// consumed by a registration.
var ErrTokenSpent = errors.New("token repository: token already used")

// GormTokenRepository is a GORM implementation of TokenRepository
type GormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &GormTokenRepository{db: db}
}

// Create stores a freshly minted token
func (r *GormTokenRepository) Create(token *models.RegistrationToken) error {
	return r.db.Create(token).Error
}

// List retrieves all tokens
func (r *GormTokenRepository) List() ([]models.RegistrationToken, error) {
	var tokens []models.RegistrationToken
	if err := r.db.Order("created_at ASC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// FindByToken finds a token by its value
func (r *GormTokenRepository) FindByToken(token string) (*models.RegistrationToken, error) {
	var t models.RegistrationToken
	if err := r.db.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteUnused deletes a token only while it is still unused. The delete is
// conditional on is_used = 0 so a concurrent redemption cannot race it.
func (r *GormTokenRepository) DeleteUnused(token string) error {
	t, err := r.FindByToken(token)
	if err != nil {
		return err
	}
	if t.IsUsed {
		return ErrTokenSpent
	}

	res := r.db.Where("token = ? AND is_used = ?", token, false).
		Delete(&models.RegistrationToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenSpent
	}
	return nil
}
