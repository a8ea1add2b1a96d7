package repository

import (
	"github.com/irisdash/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// CreateChat creates a new chat room
func (r *GormChatRepository) CreateChat(chat *models.Chat) error {
	return r.db.Create(chat).Error
}

// ListChats retrieves all chats
func (r *GormChatRepository) ListChats() ([]models.Chat, error) {
	var chats []models.Chat
	if err := r.db.Order("id ASC").Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

// FindChatByID finds a chat by ID
func (r *GormChatRepository) FindChatByID(id uint64) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.First(&chat, id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateMessage appends a message to a chat
func (r *GormChatRepository) CreateMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// ListMessages retrieves messages newest-first with offset/limit
func (r *GormChatRepository) ListMessages(chatID uint64, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("chat_id = ?", chatID).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// PurgeMessages deletes every message in a chat
func (r *GormChatRepository) PurgeMessages(chatID uint64) error {
	return r.db.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error
}
