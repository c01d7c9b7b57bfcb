package repository

import (
	"github.com/promanage/promanage-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// ListByCreator lists users provisioned by the given owner
	ListByCreator(creatorID uint64) ([]models.User, error)
}

// TaskRepository defines the interface for task and checklist data access
type TaskRepository interface {
	// Create creates a new task, including any seeded checklist items
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByTitle finds a task by its exact title
	FindByTitle(title string) (*models.Task, error)

	// ListVisible lists all tasks the user owns or is assigned to
	ListVisible(userID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and its checklist atomically
	Delete(id uint64) error

	// AddChecklistItem appends an item to a task's checklist
	AddChecklistItem(item *models.ChecklistItem) error

	// FindChecklistItem finds an item by ID within a task
	FindChecklistItem(taskID, itemID uint64) (*models.ChecklistItem, error)

	// UpdateChecklistItem updates a checklist item
	UpdateChecklistItem(item *models.ChecklistItem) error

	// DeleteChecklistItem removes an item from a task's checklist
	DeleteChecklistItem(taskID, itemID uint64) error

	// ListChecklist lists a task's checklist in insertion order
	ListChecklist(taskID uint64) ([]models.ChecklistItem, error)
}
