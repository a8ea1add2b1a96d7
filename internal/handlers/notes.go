package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/dto"
	apierrors "github.com/irisdash/dashboard-api/internal/errors"
	"github.com/irisdash/dashboard-api/internal/middleware"
	"github.com/irisdash/dashboard-api/internal/services"
)

// NoteHandler coordinates notes repository handlers.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// attachmentRequest carries one uploaded file; Data arrives base64-encoded
// in JSON.
type attachmentRequest struct {
	Filename string `json:"filename" binding:"required"`
	Data     []byte `json:"data"`
}

type noteRequest struct {
	Title       string              `json:"title" binding:"required"`
	Content     string              `json:"content" binding:"required"`
	IsGlobal    bool                `json:"is_global"`
	Attachments []attachmentRequest `json:"attachments"`
}

func (r noteRequest) toInput() services.NoteInput {
	attachments := make([]services.AttachmentInput, len(r.Attachments))
	for i, a := range r.Attachments {
		attachments[i] = services.AttachmentInput{
			Filename: a.Filename,
			Data:     a.Data,
		}
	}
	return services.NoteInput{
		Title:       r.Title,
		Content:     r.Content,
		IsGlobal:    r.IsGlobal,
		Attachments: attachments,
	}
}

// ListNotes returns the notes visible to the caller, pinned first.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	notes, err := h.noteService.List(actor)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// GetNote returns a single note with attachment payloads.
func (h *NoteHandler) GetNote(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.Get(actor, noteID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note, true))
}

// CreateNote stores a new note owned by the caller.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Create(actor, req.toInput())
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note, false))
}

// UpdateNote rewrites a note including its full attachment list.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.Update(actor, noteID, req.toInput())
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note, false))
}

// DeleteNote removes a note and its attachments.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.noteService.Delete(actor, noteID); err != nil {
		respondNoteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TogglePin flips the note's pin flag.
func (h *NoteHandler) TogglePin(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	noteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := h.noteService.TogglePin(actor, noteID)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note, false))
}

// ImportNote fetches a URL, strips the markup, and saves the text as a
// private note.
func (h *NoteHandler) ImportNote(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ImportRequest struct {
		URL   string `json:"url" binding:"required"`
		Title string `json:"title" binding:"required"`
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.ImportFromLink(c.Request.Context(), actor, req.URL, req.Title)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(*note, false))
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoteFieldsMissing),
		errors.Is(err, services.ErrImportURLMissing),
		errors.Is(err, services.ErrImportFetchFailed):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
