package models

import (
	"time"

	"gorm.io/gorm"
)

// Task lifecycle columns on the kanban board
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Priority levels shared by tasks and inquiries
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ValidTaskStatus reports whether s is one of the three board columns
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority level
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a kanban board item. Order is the position inside its status
// column; after any move settles, a column with N tasks carries exactly the
// orders 0..N-1. Deletes leave gaps, the next move heals them.
type Task struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Status   string `gorm:"not null;default:'todo';index" json:"status"`
	Order    int    `gorm:"not null;default:0;column:position" json:"order"`
	Priority string `gorm:"not null;default:'medium'" json:"priority"`

	DueDate      *time.Time `json:"due_date,omitempty"`
	AssignedToID *uint      `gorm:"index" json:"assigned_to_id,omitempty"`
	ClientID     *uint      `gorm:"index" json:"client_id,omitempty"`
	InquiryID    *uint      `gorm:"index" json:"inquiry_id,omitempty"`

	// Relations
	AssignedTo *User     `json:"assigned_to,omitempty"`
	Client     *Client   `json:"client,omitempty"`
	Inquiry    *Inquiry  `json:"inquiry,omitempty"`
	Tags       []TaskTag `gorm:"foreignKey:TaskID" json:"tags,omitempty"`
}

// TaskTag is a short label attached to a task (normalized)
type TaskTag struct {
	gorm.Model
	TaskID uint   `gorm:"not null;index" json:"task_id"`
	Tag    string `gorm:"not null;index" json:"tag"`
}
