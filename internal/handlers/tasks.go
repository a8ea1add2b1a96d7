package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/irisdash/dashboard-api/internal/dto"
	apierrors "github.com/irisdash/dashboard-api/internal/errors"
	"github.com/irisdash/dashboard-api/internal/middleware"
	"github.com/irisdash/dashboard-api/internal/services"
	"github.com/irisdash/dashboard-api/internal/utils"
)

// TaskHandler coordinates task workflow handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns one of the four workflow views:
// current | past | dropped | others.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	view := c.DefaultQuery("view", services.ViewCurrent)
	tasks, err := h.taskService.List(actor, view)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks, time.Now()))
}

// CreateTask creates a task, either assigned directly or dumped into the
// dropped pool. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Description string     `json:"description" binding:"required"`
		AssigneeID  *uint64    `json:"assignee_id"`
		Deadline    *time.Time `json:"deadline"`
		Dump        bool       `json:"dump"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	displayID, err := utils.GenerateTaskDisplayID()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	task, err := h.taskService.Create(actor, services.CreateTaskInput{
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Deadline:    req.Deadline,
		Dump:        req.Dump,
		DisplayID:   displayID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task, time.Now()))
}

// PickupTask claims a dropped task for the caller.
func (h *TaskHandler) PickupTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Pickup(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// CompleteTask marks the caller's assigned task done.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Complete(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// DropTask returns an assigned task to the dropped pool. Admin only.
func (h *TaskHandler) DropTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.MoveToDropped(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task, time.Now()))
}

// DeleteTask removes a non-completed task. Admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(actor, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskDescriptionReq),
		errors.Is(err, services.ErrTaskAssigneeReq),
		errors.Is(err, services.ErrUnknownTaskView):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskAlreadyClaimed),
		errors.Is(err, services.ErrTaskAlreadyDone),
		errors.Is(err, services.ErrTaskNotAssigned),
		errors.Is(err, services.ErrInvalidTaskAssignee):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
