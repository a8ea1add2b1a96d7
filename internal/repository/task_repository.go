package repository

import (
	"errors"
	"time"

	"github.com/irisdash/dashboard-api/internal/models"
	"gorm.io/gorm"
)

// ErrTaskAlreadyClaimed is returned when a pickup races another user and
// the task is no longer in the dropped pool at write time.
var ErrTaskAlreadyClaimed = errors.New("task repository: task already claimed")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Owner").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListCurrent lists the actor's assigned, unfinished tasks
func (r *GormTaskRepository) ListCurrent(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_user_id = ? AND is_done = ?", ownerID, false).
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListPast lists the actor's completed tasks
func (r *GormTaskRepository) ListPast(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_user_id = ? AND is_done = ?", ownerID, true).
		Order("updated_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListDropped lists the unclaimed pool
func (r *GormTaskRepository) ListDropped() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_user_id IS NULL AND is_global = ?", true).
		Order("id DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAssigned lists every assigned task regardless of owner
func (r *GormTaskRepository) ListAssigned() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_user_id IS NOT NULL").
		Preload("Owner").
		Order("deadline ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Claim transitions a dropped task to the given user. The update is
// conditioned on the row still being unassigned, so concurrent pickups are
// serialized by the store: exactly one update affects a row, the rest see
// RowsAffected == 0.
func (r *GormTaskRepository) Claim(taskID, userID uint64, deadline time.Time) error {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND owner_user_id IS NULL AND is_global = ?", taskID, true).
		Updates(map[string]interface{}{
			"owner_user_id": userID,
			"is_global":     false,
			"deadline":      deadline,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskAlreadyClaimed
	}
	return nil
}

// MoveToDropped clears the owner and returns the task to the pool
func (r *GormTaskRepository) MoveToDropped(taskID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"owner_user_id": nil,
			"is_global":     true,
		}).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
