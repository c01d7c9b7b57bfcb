package dto

import (
	"time"

	"github.com/promanage/promanage-api/internal/models"
	"github.com/promanage/promanage-api/internal/services"
)

// ChecklistItemDTO represents a checklist item in API responses
type ChecklistItemDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskDTO represents a task in API responses. Owner and assignee are
// exposed as email addresses; the stable IDs stay internal.
type TaskDTO struct {
	ID         uint64              `json:"id"`
	Title      string              `json:"title"`
	Priority   models.TaskPriority `json:"priority"`
	Status     models.TaskStatus   `json:"status"`
	Owner      string              `json:"owner"`
	AssignedTo *string             `json:"assigned_to"`
	DueDate    *time.Time          `json:"due_date"`
	Checklist  []ChecklistItemDTO  `json:"checklist,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// TaskBoardDTO is the grouped list response: one bucket per status.
type TaskBoardDTO struct {
	Backlog    []TaskDTO `json:"backlog"`
	Todo       []TaskDTO `json:"to_do"`
	InProgress []TaskDTO `json:"in_progress"`
	Done       []TaskDTO `json:"done"`
}

// ToChecklistItemDTO converts a ChecklistItem model
func ToChecklistItemDTO(item models.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		IsCompleted: item.IsCompleted,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToChecklistItemDTOs converts a slice of checklist items
func ToChecklistItemDTOs(items []models.ChecklistItem) []ChecklistItemDTO {
	dtos := make([]ChecklistItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToChecklistItemDTO(item)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Status:    task.Status,
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}

	// Owner email if preloaded
	if task.Owner.ID != 0 {
		dto.Owner = task.Owner.Email
	}

	// Assignee email if assigned and preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		email := task.Assignee.Email
		dto.AssignedTo = &email
	}

	if len(task.Checklist) > 0 {
		dto.Checklist = ToChecklistItemDTOs(task.Checklist)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskBoardDTO converts a service TaskBoard to its response shape
func ToTaskBoardDTO(board *services.TaskBoard) TaskBoardDTO {
	return TaskBoardDTO{
		Backlog:    ToTaskDTOs(board.Backlog),
		Todo:       ToTaskDTOs(board.Todo),
		InProgress: ToTaskDTOs(board.InProgress),
		Done:       ToTaskDTOs(board.Done),
	}
}
