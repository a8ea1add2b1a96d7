package repository

import (
	"errors"
	"fmt"

	"github.com/irisdash/dashboard-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrTokenRequired is returned when registration is attempted without a
	// token and the first account already exists.
	ErrTokenRequired = errors.New("user repository: registration token required")
	// ErrTokenUnavailable is returned when the supplied token does not
	// exist or was already consumed by a concurrent registration.
	ErrTokenUnavailable = errors.New("user repository: token invalid or already used")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithRegistration creates the user atomically with token
// consumption. The token row is flipped used with a conditional update so
// two concurrent registrations cannot both redeem it: whichever transaction
// sees RowsAffected == 0 loses.
func (r *GormUserRepository) CreateWithRegistration(user *models.User, token string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}

		if count == 0 {
			// Bootstrap: the first account needs no token and becomes the
			// original admin. This is the only place the flag is ever set.
			user.IsAdmin = true
			user.IsOriginalAdmin = true
		} else {
			if token == "" {
				return ErrTokenRequired
			}
			res := tx.Model(&models.RegistrationToken{}).
				Where("token = ? AND is_used = ?", token, false).
				Update("is_used", true)
			if res.Error != nil {
				return fmt.Errorf("failed to consume token: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrTokenUnavailable
			}
		}

		return tx.Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves all users
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListOnline retrieves users currently marked online
func (r *GormUserRepository) ListOnline() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("is_online = ?", true).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// SetOnline toggles the online flag
func (r *GormUserRepository) SetOnline(id uint64, online bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_online", online).Error
}

// SetAdmin toggles the admin flag
func (r *GormUserRepository) SetAdmin(id uint64, admin bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_admin", admin).Error
}

// UpdatePasswordHash stores a new password hash
func (r *GormUserRepository) UpdatePasswordHash(id uint64, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

// Delete removes a user
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}
