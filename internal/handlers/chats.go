package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/dto"
	apierrors "github.com/irisdash/dashboard-api/internal/errors"
	"github.com/irisdash/dashboard-api/internal/middleware"
	"github.com/irisdash/dashboard-api/internal/services"
	"github.com/irisdash/dashboard-api/internal/utils"
)

// ChatHandler coordinates group chat handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListChats returns every chat room.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatService.ListChats()
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatDTOs(chats))
}

// CreateChat creates a new chat room. Admin only.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateChatRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chat, err := h.chatService.CreateChat(actor, req.Name)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChatDTO(*chat))
}

// ListMessages returns a page of the chat log, newest first. Chat is
// poll-based; clients refresh this endpoint.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	params := utils.GetOffsetParams(c)
	messages, err := h.chatService.ListMessages(actor, chatID, params.Offset, params.Limit)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTOs(messages))
}

// SendMessage appends a message to the chat.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type SendMessageRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.chatService.SendMessage(actor, chatID, req.Body)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*msg))
}

// PurgeMessages clears the chat log. Admin only; the chat itself survives.
func (h *ChatHandler) PurgeMessages(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	chatID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.chatService.PurgeMessages(actor, chatID); err != nil {
		respondChatError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChatNameRequired),
		errors.Is(err, services.ErrMessageRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrChatNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
