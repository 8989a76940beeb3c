package models

import (
	"time"

	"gorm.io/gorm"
)

// Reminder is a scheduled notification for an admin, usually attached to an
// inquiry follow-up
type Reminder struct {
	gorm.Model
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	InquiryID *uint `gorm:"index" json:"inquiry_id,omitempty"`

	Title    string    `gorm:"not null" json:"title"`
	Message  string    `gorm:"type:text" json:"message"`
	RemindAt time.Time `gorm:"not null;index" json:"remind_at"`

	IsSent bool       `gorm:"default:false" json:"is_sent"`
	SentAt *time.Time `json:"sent_at,omitempty"`

	// Relations
	User    User     `json:"-"`
	Inquiry *Inquiry `json:"inquiry,omitempty"`
}
