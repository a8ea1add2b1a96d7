package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/linkimport"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteFieldsMissing = errors.New("both title and content are required")
	ErrImportURLMissing  = errors.New("URL cannot be empty")
	ErrImportFetchFailed = errors.New("could not fetch the page")
)

// NoteService handles the notes repository: CRUD, visibility, pinning and
// attachments.
type NoteService struct {
	noteRepo repository.NoteRepository
	fetcher  *linkimport.Fetcher
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo repository.NoteRepository, fetcher *linkimport.Fetcher) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		fetcher:  fetcher,
	}
}

// AttachmentInput is one uploaded file.
type AttachmentInput struct {
	Filename string
	Data     []byte
}

// NoteInput holds the writable note fields.
type NoteInput struct {
	Title       string
	Content     string
	IsGlobal    bool
	Attachments []AttachmentInput
}

// Create stores a new note owned by the actor.
func (s *NoteService) Create(actor *models.User, input NoteInput) (*models.Note, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrNoteFieldsMissing
	}

	note := &models.Note{
		UserID:      actor.ID,
		Title:       input.Title,
		Content:     input.Content,
		IsGlobal:    input.IsGlobal,
		Attachments: buildAttachments(input.Attachments),
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// Get returns a note if the actor may read it.
func (s *NoteService) Get(actor *models.User, noteID uint64) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionReadNote, note) {
		return nil, ErrPermissionDenied
	}

	return note, nil
}

// List returns the notes visible to the actor, pinned first, newest first
// within each pin group.
func (s *NoteService) List(actor *models.User) ([]models.Note, error) {
	return s.noteRepo.ListVisible(actor.ID, actor.IsAdmin)
}

// Update rewrites a note's title, content, visibility, and the FULL
// attachment list in one transaction. The full-replace contract is
// intentional; incremental attachment edits are not supported.
func (s *NoteService) Update(actor *models.User, noteID uint64, input NoteInput) (*models.Note, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrNoteFieldsMissing
	}

	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionEditNote, note) {
		return nil, ErrPermissionDenied
	}

	note.Title = input.Title
	note.Content = input.Content
	note.IsGlobal = input.IsGlobal

	if err := s.noteRepo.Update(note, buildAttachments(input.Attachments)); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return s.findNote(noteID)
}

// Delete removes a note and its attachments.
func (s *NoteService) Delete(actor *models.User, noteID uint64) error {
	note, err := s.findNote(noteID)
	if err != nil {
		return err
	}

	if !authz.Can(actor, authz.ActionDeleteNote, note) {
		return ErrPermissionDenied
	}

	return s.noteRepo.Delete(noteID)
}

// TogglePin flips the note's pin flag and returns the updated note.
func (s *NoteService) TogglePin(actor *models.User, noteID uint64) (*models.Note, error) {
	note, err := s.findNote(noteID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionPinNote, note) {
		return nil, ErrPermissionDenied
	}

	if err := s.noteRepo.SetPinned(noteID, !note.IsPinned); err != nil {
		return nil, fmt.Errorf("failed to toggle pin: %w", err)
	}
	note.IsPinned = !note.IsPinned

	return note, nil
}

// ImportFromLink fetches a page, strips its markup, and saves the text as a
// private note with no attachments.
func (s *NoteService) ImportFromLink(ctx context.Context, actor *models.User, url, title string) (*models.Note, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrImportURLMissing
	}

	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFetchFailed, err)
	}

	return s.Create(actor, NoteInput{
		Title:    title,
		Content:  text,
		IsGlobal: false,
	})
}

func (s *NoteService) findNote(noteID uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

func buildAttachments(inputs []AttachmentInput) []models.NoteAttachment {
	attachments := make([]models.NoteAttachment, len(inputs))
	for i, in := range inputs {
		attachments[i] = models.NoteAttachment{
			Filename: in.Filename,
			Size:     int64(len(in.Data)),
			Position: i,
			Data:     in.Data,
		}
	}
	return attachments
}
