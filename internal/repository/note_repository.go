package repository

import (
	"github.com/irisdash/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a note together with its attachments
func (r *GormNoteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

// FindByID finds a note with its attachments in upload order
func (r *GormNoteRepository) FindByID(id uint64) (*models.Note, error) {
	var note models.Note
	err := r.db.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListVisible lists notes readable by the actor: global notes plus the
// actor's own, or everything for admins. Pinned notes come first, then
// newest within each pin group.
func (r *GormNoteRepository) ListVisible(actorID uint64, isAdmin bool) ([]models.Note, error) {
	query := r.db.Model(&models.Note{})
	if !isAdmin {
		query = query.Where("is_global = ? OR user_id = ?", true, actorID)
	}

	var notes []models.Note
	err := query.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("is_pinned DESC, id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Update replaces title/content/visibility and the full attachment list in
// one transaction. Partial attachment edits are not supported; every update
// swaps the whole list.
func (r *GormNoteRepository) Update(note *models.Note, attachments []models.NoteAttachment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(note).Select("title", "content", "is_global").Updates(map[string]interface{}{
			"title":     note.Title,
			"content":   note.Content,
			"is_global": note.IsGlobal,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("note_id = ?", note.ID).Delete(&models.NoteAttachment{}).Error; err != nil {
			return err
		}

		for i := range attachments {
			attachments[i].ID = 0
			attachments[i].NoteID = note.ID
			attachments[i].Position = i
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// SetPinned toggles the pin flag
func (r *GormNoteRepository) SetPinned(id uint64, pinned bool) error {
	return r.db.Model(&models.Note{}).Where("id = ?", id).Update("is_pinned", pinned).Error
}

// Delete removes a note and its attachments
func (r *GormNoteRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.NoteAttachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Note{}, id).Error
	})
}
