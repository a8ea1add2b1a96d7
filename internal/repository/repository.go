package repository

import (
	"time"

	"github.com/irisdash/dashboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithRegistration creates a user and, when a token is supplied,
	// consumes it in the same transaction. The first account ever created
	// needs no token and is granted admin + original-admin.
	CreateWithRegistration(user *models.User, token string) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves all users
	List() ([]models.User, error)

	// ListOnline retrieves users currently marked online
	ListOnline() ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// SetOnline toggles the online flag
	SetOnline(id uint64, online bool) error

	// SetAdmin toggles the admin flag
	SetAdmin(id uint64, admin bool) error

	// UpdatePasswordHash stores a new password hash
	UpdatePasswordHash(id uint64, hash string) error

	// Delete removes a user
	Delete(id uint64) error
}

// TokenRepository defines the interface for registration token data access
type TokenRepository interface {
	// Create stores a freshly minted token
	Create(token *models.RegistrationToken) error

	// List retrieves all tokens
	List() ([]models.RegistrationToken, error)

	// FindByToken finds a token by its value
	FindByToken(token string) (*models.RegistrationToken, error)

	// DeleteUnused deletes a token only while it is still unused;
	// returns ErrTokenSpent when it has already been consumed.
	DeleteUnused(token string) error
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a note together with its attachments
	Create(note *models.Note) error

	// FindByID finds a note with its attachments
	FindByID(id uint64) (*models.Note, error)

	// ListVisible lists notes readable by the actor, pinned first then
	// newest first
	ListVisible(actorID uint64, isAdmin bool) ([]models.Note, error)

	// Update replaces title/content/visibility and the full attachment
	// list in a single transaction
	Update(note *models.Note, attachments []models.NoteAttachment) error

	// SetPinned toggles the pin flag
	SetPinned(id uint64, pinned bool) error

	// Delete removes a note and its attachments
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListCurrent lists the actor's assigned, unfinished tasks
	ListCurrent(ownerID uint64) ([]models.Task, error)

	// ListPast lists the actor's completed tasks
	ListPast(ownerID uint64) ([]models.Task, error)

	// ListDropped lists the unclaimed pool
	ListDropped() ([]models.Task, error)

	// ListAssigned lists every assigned task regardless of owner
	ListAssigned() ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Claim transitions a dropped task to the actor with the given
	// deadline; returns ErrTaskAlreadyClaimed if the task is no longer
	// unassigned at write time.
	Claim(taskID, userID uint64, deadline time.Time) error

	// MoveToDropped clears the owner and returns the task to the pool
	MoveToDropped(taskID uint64) error

	// Delete removes a task
	Delete(id uint64) error
}

// ChatRepository defines the interface for chat and message data access
type ChatRepository interface {
	// CreateChat creates a new chat room
	CreateChat(chat *models.Chat) error

	// ListChats retrieves all chats
	ListChats() ([]models.Chat, error)

	// FindChatByID finds a chat by ID
	FindChatByID(id uint64) (*models.Chat, error)

	// CreateMessage appends a message to a chat
	CreateMessage(msg *models.Message) error

	// ListMessages retrieves messages newest-first with offset/limit
	ListMessages(chatID uint64, offset, limit int) ([]models.Message, error)

	// PurgeMessages deletes every message in a chat
	PurgeMessages(chatID uint64) error
}
