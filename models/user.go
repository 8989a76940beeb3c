package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an admin account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	TokenVersion int    `gorm:"default:0" json:"-"`

	// Google OAuth fields
	GoogleID       *string `gorm:"uniqueIndex" json:"google_id,omitempty"`
	GoogleImageURL *string `json:"google_image_url,omitempty"`

	// Profile information
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`

	// Account status
	IsActive bool   `gorm:"default:true" json:"is_active"`
	Role     string `gorm:"default:'admin'" json:"role"` // admin, editor, viewer

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relations
	Tasks     []Task     `gorm:"foreignKey:AssignedToID" json:"tasks,omitempty"`
	Reminders []Reminder `gorm:"foreignKey:UserID" json:"reminders,omitempty"`
}

// RefreshToken stores issued refresh tokens so they can be revoked
type RefreshToken struct {
	gorm.Model
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Token     string     `gorm:"not null;uniqueIndex" json:"-"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip_address"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`

	User User `json:"-"`
}
