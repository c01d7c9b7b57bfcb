package models

import (
	"errors"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusBacklog    TaskStatus = "BACKLOG"
	TaskStatusTodo       TaskStatus = "TO_DO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityModerate TaskPriority = "MODERATE"
	TaskPriorityHigh     TaskPriority = "HIGH"
)

var (
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type Task struct {
	ID         uint64       `gorm:"primarykey" json:"id"`
	Title      string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"title"`
	Priority   TaskPriority `gorm:"type:varchar(20);not null;default:'MODERATE'" json:"priority"`
	Status     TaskStatus   `gorm:"type:varchar(20);not null;default:'TO_DO'" json:"status"`
	OwnerID    uint64       `gorm:"not null" json:"owner_id"`
	AssigneeID *uint64      `json:"assignee_id"`
	DueDate    *time.Time   `json:"due_date"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	CreatedBy  *uint64      `json:"created_by"`
	UpdatedBy  *uint64      `json:"updated_by"`

	// Relations
	Owner     User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Assignee  *User           `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Checklist []ChecklistItem `gorm:"foreignKey:TaskID" json:"checklist,omitempty"`
}

// normalizeLabel folds case and strips separators so that "To Do",
// "to-do" and "TODO" all compare equal.
func normalizeLabel(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return r
	}, s)
}

// ParseStatus maps a user-supplied status label onto the canonical
// enumeration. "COMPLETED" is accepted as a legacy alias for DONE.
func ParseStatus(s string) (TaskStatus, error) {
	switch normalizeLabel(s) {
	case "BACKLOG":
		return TaskStatusBacklog, nil
	case "TODO":
		return TaskStatusTodo, nil
	case "INPROGRESS":
		return TaskStatusInProgress, nil
	case "DONE", "COMPLETED":
		return TaskStatusDone, nil
	}
	return "", ErrInvalidStatus
}

// ParsePriority maps a user-supplied priority label onto the canonical
// enumeration.
func ParsePriority(s string) (TaskPriority, error) {
	switch normalizeLabel(s) {
	case "LOW":
		return TaskPriorityLow, nil
	case "MODERATE":
		return TaskPriorityModerate, nil
	case "HIGH":
		return TaskPriorityHigh, nil
	}
	return "", ErrInvalidPriority
}
