package models

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry (lead) statuses
const (
	InquiryStatusNew       = "new"
	InquiryStatusHot       = "hot"
	InquiryStatusWarm      = "warm"
	InquiryStatusCold      = "cold"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
	InquiryStatusLost      = "lost"
)

// ValidInquiryStatus reports whether s is a known inquiry status
func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusHot, InquiryStatusWarm, InquiryStatusCold,
		InquiryStatusContacted, InquiryStatusClosed, InquiryStatusLost:
		return true
	}
	return false
}

// Inquiry represents a prospective customer contact (lead)
type Inquiry struct {
	gorm.Model
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Phone   string `json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	Status   string `gorm:"not null;default:'new';index" json:"status"`
	Priority string `gorm:"not null;default:'medium'" json:"priority"`
	Source   string `gorm:"default:'web'" json:"source"` // web, manual

	// Derived scheduling fields, maintained by follow-up appends
	LastContactDate  *time.Time `json:"last_contact_date,omitempty"`
	NextFollowUpDate *time.Time `gorm:"index" json:"next_follow_up_date,omitempty"`

	// One-way conversion flag; once set, further conversions are rejected
	IsConvertedToClient bool  `gorm:"default:false" json:"is_converted_to_client"`
	ClientID            *uint `gorm:"index" json:"client_id,omitempty"`

	// Relations
	Tags      []InquiryTag     `gorm:"foreignKey:InquiryID" json:"tags,omitempty"`
	Products  []InquiryProduct `gorm:"foreignKey:InquiryID" json:"products,omitempty"`
	FollowUps []FollowUp       `gorm:"foreignKey:InquiryID" json:"follow_ups,omitempty"`
	Client    *Client          `json:"client,omitempty"`
}

// InquiryTag is a categorical tag computed once at inquiry creation
type InquiryTag struct {
	gorm.Model
	InquiryID uint   `gorm:"not null;index" json:"inquiry_id"`
	Tag       string `gorm:"not null;index" json:"tag"`
}

// InquiryProduct links an inquiry to a requested product. ProductID is nil
// when the submitted name did not resolve to a catalog product (best-effort
// link, never an error).
type InquiryProduct struct {
	gorm.Model
	InquiryID     uint   `gorm:"not null;index" json:"inquiry_id"`
	ProductID     *uint  `gorm:"index" json:"product_id,omitempty"`
	RequestedName string `gorm:"not null" json:"requested_name"`
	Quantity      int    `gorm:"not null;default:1" json:"quantity"`

	Product *Product `json:"product,omitempty"`
}

// FollowUp is an append-only record of an outreach attempt against a lead
type FollowUp struct {
	gorm.Model
	InquiryID uint `gorm:"not null;index" json:"inquiry_id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`

	Type        string     `gorm:"not null" json:"type"` // call, email, whatsapp, meeting
	Description string     `gorm:"type:text" json:"description"`
	Outcome     string     `json:"outcome"`
	NextAction  string     `json:"next_action"`
	RemindAt    *time.Time `json:"remind_at,omitempty"`

	User User `json:"-"`
}
