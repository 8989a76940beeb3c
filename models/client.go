package models

import (
	"gorm.io/gorm"
)

// Client represents a confirmed customer, usually converted from an inquiry
type Client struct {
	gorm.Model
	Name    string `gorm:"not null;index" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `gorm:"type:text" json:"notes"`

	// Back-reference to the inquiry this client was converted from
	ConvertedFromID *uint `gorm:"index" json:"converted_from_id,omitempty"`

	// Relations
	Tasks []Task `gorm:"foreignKey:ClientID" json:"tasks,omitempty"`
}
