package models

import (
	"gorm.io/gorm"
	"golang.org/x/crypto/bcrypt"
)

// CreateDefaultAdmin seeds the initial admin account when no users exist yet
func CreateDefaultAdmin(db *gorm.DB, email, password string) error {
	if password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := "Administrator"
	admin := User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         &name,
		Role:         "admin",
		IsActive:     true,
	}
	return db.Create(&admin).Error
}

// CreateDefaultCategories seeds the catalog categories used by the storefront
func CreateDefaultCategories(db *gorm.DB) error {
	defaults := []Category{
		{Name: "Textil", Slug: "textil", Description: "Prendas y textiles personalizables", Position: 0},
		{Name: "Oficina", Slug: "oficina", Description: "Artículos de oficina y papelería", Position: 1},
		{Name: "Tecnología", Slug: "tecnologia", Description: "Gadgets y accesorios tecnológicos", Position: 2},
		{Name: "Drinkware", Slug: "drinkware", Description: "Termos, tazas y botellas", Position: 3},
	}
	for _, category := range defaults {
		if err := db.FirstOrCreate(&category, "slug = ?", category.Slug).Error; err != nil {
			return err
		}
	}
	return nil
}
