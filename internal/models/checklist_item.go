package models

import "time"

type ChecklistItem struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;index" json:"task_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   *uint64   `json:"created_by"`
	UpdatedBy   *uint64   `json:"updated_by"`
}
