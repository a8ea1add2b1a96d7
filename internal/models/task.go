package models

import (
	"time"

	"gorm.io/gorm"
)

// Task moves through three states:
//
//	Dropped  (OwnerUserID == nil, IsGlobal)  — unclaimed pool
//	Assigned (OwnerUserID != nil, !IsDone)   — active with a deadline
//	Done     (IsDone)                        — terminal
//
// A task enters Assigned either at admin creation or when a user picks it
// up from the pool, which stamps a server-side deadline.
type Task struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	// DisplayID is the 6-digit identifier shown to users. It is a cosmetic
	// label generated at creation; collisions are possible and accepted.
	DisplayID   int        `gorm:"not null" json:"display_id"`
	OwnerUserID *uint64    `gorm:"index" json:"owner_user_id"`
	Description string     `gorm:"type:text;not null" json:"description"`
	IsDone      bool       `gorm:"not null;default:false" json:"is_done"`
	IsGlobal    bool       `gorm:"not null;default:false" json:"is_global"`
	Deadline    *time.Time `json:"deadline"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner *User `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
}

// IsDropped reports whether the task sits in the unclaimed pool.
func (t *Task) IsDropped() bool {
	return t.OwnerUserID == nil && t.IsGlobal
}
