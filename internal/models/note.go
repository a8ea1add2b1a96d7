package models

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	UserID   uint64 `gorm:"not null;index" json:"user_id"`
	Title    string `gorm:"type:varchar(255);not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	IsGlobal bool   `gorm:"not null;default:false" json:"is_global"`
	IsPinned bool   `gorm:"not null;default:false" json:"is_pinned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner       User             `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Attachments []NoteAttachment `gorm:"foreignKey:NoteID" json:"attachments,omitempty"`
}

// NoteAttachment stores one binary blob belonging to a note. Attachments
// are an ordered list; Position preserves the upload order. Editing a note
// replaces the full list in one transaction.
type NoteAttachment struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	NoteID   uint64 `gorm:"not null;index" json:"note_id"`
	Filename string `gorm:"type:varchar(255);not null" json:"filename"`
	Size     int64  `gorm:"not null" json:"size"`
	Position int    `gorm:"not null" json:"position"`
	Data     []byte `gorm:"type:blob" json:"data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
