package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChatNotFound     = errors.New("chat not found")
	ErrChatNameRequired = errors.New("chat name cannot be empty")
	ErrMessageRequired  = errors.New("message cannot be empty")
)

// ChatService handles the poll-based group chat.
type ChatService struct {
	chatRepo repository.ChatRepository
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
	}
}

// CreateChat creates a new chat room. Admin only.
func (s *ChatService) CreateChat(actor *models.User, name string) (*models.Chat, error) {
	if !authz.Can(actor, authz.ActionCreateChat, nil) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrChatNameRequired
	}

	chat := &models.Chat{
		Name:      name,
		CreatedBy: actor.ID,
	}
	if err := s.chatRepo.CreateChat(chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat, nil
}

// ListChats returns all chat rooms.
func (s *ChatService) ListChats() ([]models.Chat, error) {
	return s.chatRepo.ListChats()
}

// ListMessages returns a page of a chat's log, newest first.
func (s *ChatService) ListMessages(actor *models.User, chatID uint64, offset, limit int) ([]models.Message, error) {
	if !authz.Can(actor, authz.ActionReadChat, nil) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.findChat(chatID); err != nil {
		return nil, err
	}

	return s.chatRepo.ListMessages(chatID, offset, limit)
}

// SendMessage appends a message to the chat.
func (s *ChatService) SendMessage(actor *models.User, chatID uint64, body string) (*models.Message, error) {
	if !authz.Can(actor, authz.ActionSendMessage, nil) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrMessageRequired
	}

	if _, err := s.findChat(chatID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ChatID: chatID,
		UserID: actor.ID,
		Body:   body,
	}
	if err := s.chatRepo.CreateMessage(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return msg, nil
}

// PurgeMessages deletes every message in a chat but keeps the chat itself.
// Admin only.
func (s *ChatService) PurgeMessages(actor *models.User, chatID uint64) error {
	if !authz.Can(actor, authz.ActionPurgeChat, nil) {
		return ErrPermissionDenied
	}

	if _, err := s.findChat(chatID); err != nil {
		return err
	}

	return s.chatRepo.PurgeMessages(chatID)
}

func (s *ChatService) findChat(chatID uint64) (*models.Chat, error) {
	chat, err := s.chatRepo.FindChatByID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return chat, nil
}
