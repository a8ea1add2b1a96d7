package dto

import (
	"time"

	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              uint64 `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	JobProfile      string `json:"job_profile,omitempty"`
	Github          string `json:"github,omitempty"`
	Discord         string `json:"discord,omitempty"`
	IsAdmin         bool   `json:"is_admin"`
	IsOriginalAdmin bool   `json:"is_original_admin"`
	IsOnline        bool   `json:"is_online"`
}

// ProfileDTO is the public directory view of a user
type ProfileDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	JobProfile string `json:"job_profile,omitempty"`
	Github     string `json:"github,omitempty"`
	Discord    string `json:"discord,omitempty"`
}

// TokenDTO represents a registration token in API responses
type TokenDTO struct {
	Token     string    `json:"token"`
	IsUsed    bool      `json:"is_used"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// AttachmentDTO describes one note attachment. Data is omitted in list
// responses.
type AttachmentDTO struct {
	ID       uint64 `json:"id"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Position int    `json:"position"`
	Data     []byte `json:"data,omitempty"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID          uint64          `json:"id"`
	UserID      uint64          `json:"user_id"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	IsGlobal    bool            `json:"is_global"`
	IsPinned    bool            `json:"is_pinned"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// TaskDTO represents a task in API responses. RemainingDays and
// ReminderDue are display values derived from the deadline.
type TaskDTO struct {
	ID            uint64     `json:"id"`
	DisplayID     int        `json:"display_id"`
	OwnerUserID   *uint64    `json:"owner_user_id"`
	OwnerName     string     `json:"owner_name,omitempty"`
	Description   string     `json:"description"`
	IsDone        bool       `json:"is_done"`
	IsGlobal      bool       `json:"is_global"`
	Deadline      *time.Time `json:"deadline"`
	RemainingDays *int       `json:"remaining_days,omitempty"`
	ReminderDue   bool       `json:"reminder_due"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ChatDTO represents a chat room in API responses
type ChatDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedBy uint64 `json:"created_by"`
}

// MessageDTO represents a chat message in API responses
type MessageDTO struct {
	ID         uint64    `json:"id"`
	ChatID     uint64    `json:"chat_id"`
	UserID     uint64    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		Name:            user.Name,
		JobProfile:      user.JobProfile,
		Github:          user.Github,
		Discord:         user.Discord,
		IsAdmin:         user.IsAdmin,
		IsOriginalAdmin: user.IsOriginalAdmin,
		IsOnline:        user.IsOnline,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToProfileDTO converts a User model to its public directory view
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:         user.ID,
		Name:       user.Name,
		JobProfile: user.JobProfile,
		Github:     user.Github,
		Discord:    user.Discord,
	}
}

// ToProfileDTOs converts a slice of users to profile views
func ToProfileDTOs(users []models.User) []ProfileDTO {
	out := make([]ProfileDTO, len(users))
	for i, u := range users {
		out[i] = ToProfileDTO(u)
	}
	return out
}

// ToTokenDTO converts a RegistrationToken model to TokenDTO
func ToTokenDTO(token models.RegistrationToken) TokenDTO {
	return TokenDTO{
		Token:     token.Token,
		IsUsed:    token.IsUsed,
		CreatedBy: token.CreatedBy,
		CreatedAt: token.CreatedAt,
	}
}

// ToTokenDTOs converts a slice of tokens
func ToTokenDTOs(tokens []models.RegistrationToken) []TokenDTO {
	out := make([]TokenDTO, len(tokens))
	for i, t := range tokens {
		out[i] = ToTokenDTO(t)
	}
	return out
}

// ToNoteDTO converts a Note model to NoteDTO. includeData controls whether
// attachment payloads are embedded or only their metadata.
func ToNoteDTO(note models.Note, includeData bool) NoteDTO {
	attachments := make([]AttachmentDTO, len(note.Attachments))
	for i, a := range note.Attachments {
		attachments[i] = AttachmentDTO{
			ID:       a.ID,
			Filename: a.Filename,
			Size:     a.Size,
			Position: a.Position,
		}
		if includeData {
			attachments[i].Data = a.Data
		}
	}

	return NoteDTO{
		ID:          note.ID,
		UserID:      note.UserID,
		Title:       note.Title,
		Content:     note.Content,
		IsGlobal:    note.IsGlobal,
		IsPinned:    note.IsPinned,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
		Attachments: attachments,
	}
}

// ToNoteDTOs converts a slice of notes with attachment metadata only
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	out := make([]NoteDTO, len(notes))
	for i, n := range notes {
		out[i] = ToNoteDTO(n, false)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO, computing the deadline
// display values relative to now.
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	out := TaskDTO{
		ID:          task.ID,
		DisplayID:   task.DisplayID,
		OwnerUserID: task.OwnerUserID,
		Description: task.Description,
		IsDone:      task.IsDone,
		IsGlobal:    task.IsGlobal,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
	}

	if task.Owner != nil {
		out.OwnerName = task.Owner.Name
	}

	if task.Deadline != nil && !task.IsDone {
		days := utils.DaysUntil(*task.Deadline, now)
		out.RemainingDays = &days
		out.ReminderDue = days == constants.ReminderThresholdDays
	}

	return out
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task, now time.Time) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t, now)
	}
	return out
}

// ToChatDTO converts a Chat model to ChatDTO
func ToChatDTO(chat models.Chat) ChatDTO {
	return ChatDTO{
		ID:        chat.ID,
		Name:      chat.Name,
		CreatedBy: chat.CreatedBy,
	}
}

// ToChatDTOs converts a slice of chats
func ToChatDTOs(chats []models.Chat) []ChatDTO {
	out := make([]ChatDTO, len(chats))
	for i, ch := range chats {
		out[i] = ToChatDTO(ch)
	}
	return out
}

// ToMessageDTO converts a Message model to MessageDTO
func ToMessageDTO(msg models.Message) MessageDTO {
	return MessageDTO{
		ID:         msg.ID,
		ChatID:     msg.ChatID,
		UserID:     msg.UserID,
		AuthorName: msg.Author.Name,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(msgs []models.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = ToMessageDTO(m)
	}
	return out
}
