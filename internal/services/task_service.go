package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/promanage/promanage-api/internal/models"
	"github.com/promanage/promanage-api/internal/policy"
	"github.com/promanage/promanage-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTitleRequired          = errors.New("title is required")
	ErrPriorityRequired       = errors.New("priority is required")
	ErrTitleTaken             = errors.New("task already exists")
	ErrNotTaskOwner           = errors.New("only the task owner can perform this action")
	ErrTaskPermissionDenied   = errors.New("user does not have permission to modify this task")
	ErrAssigneeNotFound       = errors.New("assignee does not exist")
	ErrChecklistTitleRequired = errors.New("checklist item title is required")
	ErrChecklistItemNotFound  = errors.New("checklist item not found")
	ErrChecklistEmpty         = errors.New("checklist is empty")
)

// taskPreloads are the relations loaded for single-task responses.
var taskPreloads = []string{"Owner", "Assignee", "Checklist"}

// TaskService handles the task lifecycle: creation, mutation, status
// transitions, checklists, and the derived board and analytics views.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// ChecklistItemInput seeds a checklist item at task creation.
type ChecklistItemInput struct {
	Title       string
	IsCompleted bool
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title         string
	Priority      string
	Status        string
	DueDate       *time.Time
	AssigneeEmail *string
	Checklist     []ChecklistItemInput
	OwnerID       uint64
}

// CreateTask creates a task owned by the caller. Titles are globally
// unique; a duplicate is a conflict and leaves the existing task
// untouched.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Priority) == "" {
		return nil, ErrPriorityRequired
	}

	priority, err := models.ParsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	status := models.TaskStatusTodo
	if strings.TrimSpace(input.Status) != "" {
		status, err = models.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
	}

	// Fast path for the common duplicate; the unique index on title is
	// the real guarantee under concurrency.
	if _, err := s.taskRepo.FindByTitle(title); err == nil {
		return nil, ErrTitleTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}

	var assigneeID *uint64
	if input.AssigneeEmail != nil && strings.TrimSpace(*input.AssigneeEmail) != "" {
		assigneeID, err = s.resolveAssignee(*input.AssigneeEmail)
		if err != nil {
			return nil, err
		}
	}

	ownerID := input.OwnerID
	task := &models.Task{
		Title:      title,
		Priority:   priority,
		Status:     status,
		OwnerID:    ownerID,
		AssigneeID: assigneeID,
		DueDate:    input.DueDate,
		CreatedBy:  &ownerID,
		UpdatedBy:  &ownerID,
	}

	for _, item := range input.Checklist {
		itemTitle := strings.TrimSpace(item.Title)
		if itemTitle == "" {
			return nil, ErrChecklistTitleRequired
		}
		task.Checklist = append(task.Checklist, models.ChecklistItem{
			Title:       itemTitle,
			IsCompleted: item.IsCompleted,
			CreatedBy:   &ownerID,
		})
	}

	if err := s.taskRepo.Create(task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTitleTaken
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateTaskInput represents a partial task update; absent fields are
// untouched. An AssigneeEmail of "" clears the assignment.
type UpdateTaskInput struct {
	Title         *string
	Priority      *string
	Status        *string
	DueDate       *time.Time
	AssigneeEmail *string
}

// UpdateTask applies a partial update. The owner and the current
// assignee may update; only the owner may change the assignee.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanUpdate(task, actorID) {
		return nil, ErrTaskPermissionDenied
	}

	if input.AssigneeEmail != nil {
		if !policy.CanReassign(task, actorID) {
			return nil, ErrNotTaskOwner
		}
		if strings.TrimSpace(*input.AssigneeEmail) == "" {
			task.AssigneeID = nil
		} else {
			assigneeID, err := s.resolveAssignee(*input.AssigneeEmail)
			if err != nil {
				return nil, err
			}
			task.AssigneeID = assigneeID
		}
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Priority != nil {
		priority, err := models.ParsePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}
	if input.Status != nil {
		status, err := models.ParseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	task.UpdatedBy = &actorID

	if err := s.taskRepo.Update(task); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTitleTaken
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// UpdateStatus sets the task's status. Any status is reachable from any
// other; only the enum value itself is validated.
func (s *TaskService) UpdateStatus(taskID uint64, status string, actorID uint64) (*models.Task, error) {
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanUpdate(task, actorID) {
		return nil, ErrTaskPermissionDenied
	}

	task.Status = parsed
	task.UpdatedBy = &actorID

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskPreloads...)
}

// DeleteTask removes a task and its checklist if the actor is the owner.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanDelete(task, actorID) {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// GetTask returns a task with its owner, assignee and checklist.
func (s *TaskService) GetTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !policy.CanRead(task, actorID) {
		return nil, ErrTaskPermissionDenied
	}

	return task, nil
}

// AddChecklistItem appends an item to a task's checklist.
func (s *TaskService) AddChecklistItem(taskID uint64, title string, isCompleted bool, actorID uint64) (*models.ChecklistItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrChecklistTitleRequired
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	item := &models.ChecklistItem{
		TaskID:      taskID,
		Title:       title,
		IsCompleted: isCompleted,
		CreatedBy:   &actorID,
	}

	if err := s.taskRepo.AddChecklistItem(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	return item, nil
}

// UpdateChecklistItemInput represents a partial checklist item update.
type UpdateChecklistItemInput struct {
	Title       *string
	IsCompleted *bool
}

// UpdateChecklistItem updates only the supplied fields of an item.
func (s *TaskService) UpdateChecklistItem(taskID, itemID uint64, input UpdateChecklistItemInput, actorID uint64) (*models.ChecklistItem, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	item, err := s.taskRepo.FindChecklistItem(taskID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrChecklistTitleRequired
		}
		item.Title = title
	}
	if input.IsCompleted != nil {
		item.IsCompleted = *input.IsCompleted
	}

	item.UpdatedBy = &actorID

	if err := s.taskRepo.UpdateChecklistItem(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	return item, nil
}

// DeleteChecklistItem removes exactly the matched item; siblings keep
// their identifiers and order.
func (s *TaskService) DeleteChecklistItem(taskID, itemID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.taskRepo.FindChecklistItem(taskID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChecklistItemNotFound
		}
		return fmt.Errorf("failed to find checklist item: %w", err)
	}

	if err := s.taskRepo.DeleteChecklistItem(taskID, itemID); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}

	return nil
}

// GetChecklist returns a task's checklist in insertion order. An empty
// checklist is reported as not found.
func (s *TaskService) GetChecklist(taskID uint64) ([]models.ChecklistItem, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	items, err := s.taskRepo.ListChecklist(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrChecklistEmpty
	}

	return items, nil
}

// TaskBoard groups a user's visible tasks into the four status buckets.
type TaskBoard struct {
	Backlog    []models.Task
	Todo       []models.Task
	InProgress []models.Task
	Done       []models.Task
}

// ListTasksForUser returns every task the user owns or is assigned to,
// partitioned by status. Every visible task lands in exactly one bucket.
func (s *TaskService) ListTasksForUser(userID uint64) (*TaskBoard, error) {
	tasks, err := s.taskRepo.ListVisible(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	board := &TaskBoard{}
	for _, task := range tasks {
		// Stored labels may predate the canonical enumeration; normalize
		// before bucketing so legacy rows are not dropped.
		status, err := models.ParseStatus(string(task.Status))
		if err != nil {
			status = models.TaskStatusBacklog
		}
		switch status {
		case models.TaskStatusBacklog:
			board.Backlog = append(board.Backlog, task)
		case models.TaskStatusTodo:
			board.Todo = append(board.Todo, task)
		case models.TaskStatusInProgress:
			board.InProgress = append(board.InProgress, task)
		case models.TaskStatusDone:
			board.Done = append(board.Done, task)
		}
	}

	return board, nil
}

// Analytics holds the dashboard counts over a user's visible task set.
type Analytics struct {
	Backlog    int64 `json:"backlog"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
	Low        int64 `json:"low_priority"`
	Moderate   int64 `json:"moderate_priority"`
	High       int64 `json:"high_priority"`
	DueDated   int64 `json:"due_dated"`
}

// GetAnalytics derives counts by status, priority and due-date presence
// over the same visibility set as ListTasksForUser.
func (s *TaskService) GetAnalytics(userID uint64) (*Analytics, error) {
	tasks, err := s.taskRepo.ListVisible(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	a := &Analytics{}
	for _, task := range tasks {
		status, err := models.ParseStatus(string(task.Status))
		if err != nil {
			status = models.TaskStatusBacklog
		}
		switch status {
		case models.TaskStatusBacklog:
			a.Backlog++
		case models.TaskStatusTodo:
			a.Todo++
		case models.TaskStatusInProgress:
			a.InProgress++
		case models.TaskStatusDone:
			a.Done++
		}

		switch task.Priority {
		case models.TaskPriorityLow:
			a.Low++
		case models.TaskPriorityModerate:
			a.Moderate++
		case models.TaskPriorityHigh:
			a.High++
		}

		if task.DueDate != nil {
			a.DueDated++
		}
	}

	return a, nil
}

// resolveAssignee maps an assignee email onto a stable user ID.
func (s *TaskService) resolveAssignee(email string) (*uint64, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to resolve assignee: %w", err)
	}
	id := user.ID
	return &id, nil
}
