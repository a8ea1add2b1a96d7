package models

import "time"

// RegistrationToken is a single-use credential gating self-registration
// after the first account. It is consumed atomically with the user insert.
type RegistrationToken struct {
	Token     string    `gorm:"type:varchar(50);primarykey" json:"token"`
	IsUsed    bool      `gorm:"not null;default:false" json:"is_used"`
	CreatedBy uint64    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
