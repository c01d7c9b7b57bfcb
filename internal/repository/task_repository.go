package repository

import (
	"github.com/promanage/promanage-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task, including any seeded checklist items
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByTitle finds a task by its exact title
func (r *GormTaskRepository) FindByTitle(title string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("title = ?", title).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListVisible lists all tasks the user owns or is assigned to
func (r *GormTaskRepository) ListVisible(userID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Owner").
		Preload("Assignee").
		Preload("Checklist").
		Where("owner_id = ? OR assignee_id = ?", userID, userID).
		Order("tasks.created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task and its checklist in a transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddChecklistItem appends an item to a task's checklist
func (r *GormTaskRepository) AddChecklistItem(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// FindChecklistItem finds an item by ID within a task
func (r *GormTaskRepository) FindChecklistItem(taskID, itemID uint64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.Where("task_id = ? AND id = ?", taskID, itemID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateChecklistItem updates a checklist item
func (r *GormTaskRepository) UpdateChecklistItem(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}

// DeleteChecklistItem removes an item from a task's checklist. Sibling
// items keep their identifiers; removal is by matched id, not by index.
func (r *GormTaskRepository) DeleteChecklistItem(taskID, itemID uint64) error {
	return r.db.Where("task_id = ? AND id = ?", taskID, itemID).
		Delete(&models.ChecklistItem{}).Error
}

// ListChecklist lists a task's checklist in insertion order
func (r *GormTaskRepository) ListChecklist(taskID uint64) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := r.db.Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
