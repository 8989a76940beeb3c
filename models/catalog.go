package models

import (
	"gorm.io/gorm"
)

// Category groups products (e.g. "Textil", "Oficina", "Tecnología")
type Category struct {
	gorm.Model
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex" json:"slug"`
	Description string `json:"description"`
	Position    int    `gorm:"default:0" json:"position"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Brand represents a product manufacturer or label
type Brand struct {
	gorm.Model
	Name     string `gorm:"not null;uniqueIndex" json:"name"`
	Slug     string `gorm:"not null;uniqueIndex" json:"slug"`
	LogoURL  string `json:"logo_url"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}

// Product is a promotional product offered in the catalog
type Product struct {
	gorm.Model
	Name        string  `gorm:"not null;index" json:"name"`
	Slug        string  `gorm:"not null;uniqueIndex" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	MainImage   string  `json:"main_image"`

	CategoryID *uint `gorm:"index" json:"category_id,omitempty"`
	BrandID    *uint `gorm:"index" json:"brand_id,omitempty"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	// Relations
	Category *Category      `json:"category,omitempty"`
	Brand    *Brand         `json:"brand,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// ProductImage is an extra gallery image for a product
type ProductImage struct {
	gorm.Model
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
	Position  int    `gorm:"default:0" json:"position"`
}

// Slide is a homepage carousel entry managed from the admin dashboard
type Slide struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `gorm:"not null" json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `gorm:"default:0" json:"position"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
