package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	JobProfile   string         `gorm:"type:varchar(255)" json:"job_profile"`
	Github       string         `gorm:"type:varchar(255)" json:"github"`
	Discord      string         `gorm:"type:varchar(255)" json:"discord"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
	// IsOriginalAdmin marks the first-ever registered account. Set once at
	// registration time and never mutated; that account can never be demoted
	// or deleted.
	IsOriginalAdmin bool           `gorm:"not null;default:false" json:"is_original_admin"`
	IsOnline        bool           `gorm:"not null;default:false" json:"is_online"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Notes []Note `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:OwnerUserID" json:"-"`
}
