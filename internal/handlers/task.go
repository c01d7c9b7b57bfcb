package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promanage/promanage-api/internal/dto"
	apierrors "github.com/promanage/promanage-api/internal/errors"
	"github.com/promanage/promanage-api/internal/middleware"
	"github.com/promanage/promanage-api/internal/models"
	"github.com/promanage/promanage-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create creates a new task owned by the caller.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChecklistItemRequest struct {
		Title       string `json:"title"`
		IsCompleted bool   `json:"isCompleted"`
	}

	type CreateTaskRequest struct {
		Title      string                 `json:"title" binding:"required"`
		Priority   string                 `json:"priority" binding:"required"`
		Status     string                 `json:"status"`
		DueDate    *time.Time             `json:"dueDate"`
		AssignedTo *string                `json:"assignedTo"`
		Checklist  []ChecklistItemRequest `json:"checklist"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	checklist := make([]services.ChecklistItemInput, len(req.Checklist))
	for i, item := range req.Checklist {
		checklist[i] = services.ChecklistItemInput{
			Title:       item.Title,
			IsCompleted: item.IsCompleted,
		}
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Priority:      req.Priority,
		Status:        req.Status,
		DueDate:       req.DueDate,
		AssigneeEmail: req.AssignedTo,
		Checklist:     checklist,
		OwnerID:       userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully.",
		"task":    dto.ToTaskDTO(*task),
	})
}

// Update applies a partial update to a task.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title      *string    `json:"title"`
		Priority   *string    `json:"priority"`
		Status     *string    `json:"status"`
		DueDate    *time.Time `json:"dueDate"`
		AssignedTo *string    `json:"assignedTo"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateTask(taskID, services.UpdateTaskInput{
		Title:         req.Title,
		Priority:      req.Priority,
		Status:        req.Status,
		DueDate:       req.DueDate,
		AssigneeEmail: req.AssignedTo,
	}, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully.",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateStatus sets a task's status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, req.Status, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task status updated successfully.",
		"task":    dto.ToTaskDTO(*task),
	})
}

// Delete removes a task and its checklist.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully.",
	})
}

// Get returns a single task by id.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task fetched successfully.",
		"task":    dto.ToTaskDTO(*task),
	})
}

// List returns the caller's visible tasks grouped by status.
func (h *TaskHandler) List(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	board, err := h.taskService.ListTasksForUser(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tasks fetched successfully.",
		"tasks":   dto.ToTaskBoardDTO(board),
	})
}

// Analytics returns dashboard counts over the caller's visible tasks.
func (h *TaskHandler) Analytics(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	analytics, err := h.taskService.GetAnalytics(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Analytics fetched successfully.",
		"analytics": analytics,
	})
}

// CreateChecklistItem appends an item to a task's checklist.
func (h *TaskHandler) CreateChecklistItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type CreateChecklistRequest struct {
		Title       string `json:"title" binding:"required"`
		IsCompleted bool   `json:"isCompleted"`
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	item, err := h.taskService.AddChecklistItem(taskID, req.Title, req.IsCompleted, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Checklist created successfully.",
		"item":    dto.ToChecklistItemDTO(*item),
	})
}

// UpdateChecklistItem updates only the supplied fields of an item.
func (h *TaskHandler) UpdateChecklistItem(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	itemID, ok := parseChecklistID(c)
	if !ok {
		return
	}

	type UpdateChecklistRequest struct {
		Title       *string `json:"title"`
		IsCompleted *bool   `json:"isCompleted"`
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	item, err := h.taskService.UpdateChecklistItem(taskID, itemID, services.UpdateChecklistItemInput{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	}, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checklist updated successfully.",
		"item":    dto.ToChecklistItemDTO(*item),
	})
}

// DeleteChecklistItem removes an item from a task's checklist.
func (h *TaskHandler) DeleteChecklistItem(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}
	itemID, ok := parseChecklistID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteChecklistItem(taskID, itemID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checklist deleted successfully.",
	})
}

// GetChecklist returns a task's checklist in insertion order.
func (h *TaskHandler) GetChecklist(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	items, err := h.taskService.GetChecklist(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Checklist fetched successfully.",
		"checklist": dto.ToChecklistItemDTOs(items),
	})
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID.")
		return 0, false
	}
	return taskID, true
}

func parseChecklistID(c *gin.Context) (uint64, bool) {
	itemID, err := strconv.ParseUint(c.Param("checklistId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid checklist item ID.")
		return 0, false
	}
	return itemID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrPriorityRequired),
		errors.Is(err, services.ErrChecklistTitleRequired),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTitleTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrChecklistItemNotFound),
		errors.Is(err, services.ErrChecklistEmpty):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskOwner),
		errors.Is(err, services.ErrTaskPermissionDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
