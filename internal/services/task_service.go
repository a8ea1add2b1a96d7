package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/irisdash/dashboard-api/internal/authz"
	"github.com/irisdash/dashboard-api/internal/constants"
	"github.com/irisdash/dashboard-api/internal/models"
	"github.com/irisdash/dashboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskDescriptionReq  = errors.New("task description is required")
	ErrTaskAssigneeReq     = errors.New("an assignee and deadline are required unless the task is dropped")
	ErrTaskAlreadyClaimed  = errors.New("task already picked up")
	ErrTaskAlreadyDone     = errors.New("task is already completed")
	ErrTaskNotAssigned     = errors.New("task is not assigned")
	ErrInvalidTaskAssignee = errors.New("assignee does not exist")
	ErrUnknownTaskView     = errors.New("unknown task view")
)

// TaskService drives the task lifecycle: dropped pool, assignment,
// completion, and the admin override transitions.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task. Dump sends the task
// straight to the dropped pool; otherwise an assignee and deadline are
// required.
type CreateTaskInput struct {
	Description string
	AssigneeID  *uint64
	Deadline    *time.Time
	Dump        bool
	DisplayID   int
}

// Create creates a task. Admin only. DisplayID is a cosmetic random
// 6-digit label supplied by the caller (usually generated by the handler);
// collisions are accepted.
func (s *TaskService) Create(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if !authz.Can(actor, authz.ActionCreateTask, nil) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, ErrTaskDescriptionReq
	}

	task := &models.Task{
		DisplayID:   input.DisplayID,
		Description: input.Description,
		Deadline:    input.Deadline,
	}

	if input.Dump {
		task.IsGlobal = true
	} else {
		if input.AssigneeID == nil || input.Deadline == nil {
			return nil, ErrTaskAssigneeReq
		}
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidTaskAssignee
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		task.OwnerUserID = input.AssigneeID
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Pickup claims a dropped task for the actor. The deadline is computed
// server-side as now + 7 days; the claim is conditional on the task still
// being unassigned, so exactly one of two racing pickups succeeds.
func (s *TaskService) Pickup(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if !authz.Can(actor, authz.ActionPickupTask, task) {
		return nil, ErrTaskAlreadyClaimed
	}

	deadline := s.now().AddDate(0, 0, constants.PickupDeadlineDays)
	if err := s.taskRepo.Claim(taskID, actor.ID, deadline); err != nil {
		if errors.Is(err, repository.ErrTaskAlreadyClaimed) {
			return nil, ErrTaskAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	return s.findTask(taskID)
}

// Complete marks an assigned task done. Only the current assignee may
// complete it; Done is terminal.
func (s *TaskService) Complete(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if task.IsDone {
		return nil, ErrTaskAlreadyDone
	}
	if !authz.Can(actor, authz.ActionCompleteTask, task) {
		return nil, ErrPermissionDenied
	}

	task.IsDone = true
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// MoveToDropped returns an assigned task to the pool. Admin only; completed
// tasks stay completed.
func (s *TaskService) MoveToDropped(actor *models.User, taskID uint64) (*models.Task, error) {
	if !authz.Can(actor, authz.ActionDropTask, nil) {
		return nil, ErrPermissionDenied
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.IsDone {
		return nil, ErrTaskAlreadyDone
	}
	if task.OwnerUserID == nil {
		return nil, ErrTaskNotAssigned
	}

	if err := s.taskRepo.MoveToDropped(taskID); err != nil {
		return nil, fmt.Errorf("failed to move task to dropped: %w", err)
	}

	return s.findTask(taskID)
}

// Delete removes a task. Admin only; valid from any non-terminal state.
func (s *TaskService) Delete(actor *models.User, taskID uint64) error {
	if !authz.Can(actor, authz.ActionDeleteTask, nil) {
		return ErrPermissionDenied
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if task.IsDone {
		return ErrTaskAlreadyDone
	}

	return s.taskRepo.Delete(taskID)
}

// Task views
const (
	ViewCurrent = "current"
	ViewPast    = "past"
	ViewDropped = "dropped"
	ViewOthers  = "others"
)

// List returns tasks for one of the four workflow views. The "others" view
// deliberately exposes every assignment and deadline to any authenticated
// user.
func (s *TaskService) List(actor *models.User, view string) ([]models.Task, error) {
	switch view {
	case ViewCurrent:
		return s.taskRepo.ListCurrent(actor.ID)
	case ViewPast:
		return s.taskRepo.ListPast(actor.ID)
	case ViewDropped:
		return s.taskRepo.ListDropped()
	case ViewOthers:
		return s.taskRepo.ListAssigned()
	default:
		return nil, ErrUnknownTaskView
	}
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
