package models

import "time"

type Chat struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy uint64    `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Messages []Message `gorm:"foreignKey:ChatID" json:"messages,omitempty"`
}

// Message is one entry in a chat's append-only log. An admin purge deletes
// all messages of a chat but never the chat itself.
type Message struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ChatID    uint64    `gorm:"not null;index" json:"chat_id"`
	UserID    uint64    `gorm:"not null" json:"user_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
