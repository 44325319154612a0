package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus matches a status case-insensitively.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	ProjectID    uint64         `gorm:"not null" json:"project"`
	Title        string         `gorm:"type:varchar(100);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	AssignedToID uint64         `gorm:"not null" json:"assigned_to"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
	AssignedTo User    `gorm:"foreignKey:AssignedToID" json:"-"`
}
