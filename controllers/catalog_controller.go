package controller

import (
	"log"
	"strings"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController manages categories and brands
type CatalogController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Cache  *utils.Cache
}

func NewCatalogController(db *gorm.DB, logger *log.Logger, cache *utils.Cache) *CatalogController {
	return &CatalogController{
		DB:     db,
		Logger: logger,
		Cache:  cache,
	}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Position    int    `json:"position" validate:"gte=0"`
	IsActive    *bool  `json:"is_active"`
}

func (cc *CatalogController) CreateCategory(c *fiber.Ctx) error {
	var input CategoryRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        strings.ToLower(input.Slug),
		Description: input.Description,
		Position:    input.Position,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Failed to create category", err)
	}

	cc.Cache.DeletePrefix("categories:")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(category))
}

func (cc *CatalogController) GetCategories(c *fiber.Ctx) error {
	cacheKey := "categories:list"
	if cached, ok := cc.Cache.Get(cacheKey); ok {
		return c.JSON(cached)
	}

	var categories []models.Category
	if err := cc.DB.Order("position asc, name asc").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch categories", err)
	}

	response := utils.SuccessResponse(categories)
	cc.Cache.Set(cacheKey, response, 0)

	return c.JSON(response)
}

func (cc *CatalogController) UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")

	var input CategoryRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var category models.Category
	if err := cc.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch category", err)
	}

	category.Name = input.Name
	category.Slug = strings.ToLower(input.Slug)
	category.Description = input.Description
	category.Position = input.Position
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update category", err)
	}

	cc.Cache.DeletePrefix("categories:")

	return c.JSON(utils.SuccessResponse(category))
}

func (cc *CatalogController) DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")

	result := cc.DB.Where("id = ?", categoryID).Delete(&models.Category{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Category not found", nil)
	}

	cc.Cache.DeletePrefix("categories:")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Category deleted successfully",
	}))
}

type BrandRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Slug     string `json:"slug" validate:"required,max=100"`
	LogoURL  string `json:"logo_url" validate:"omitempty,max=500"`
	IsActive *bool  `json:"is_active"`
}

func (cc *CatalogController) CreateBrand(c *fiber.Ctx) error {
	var input BrandRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	brand := models.Brand{
		Name:     input.Name,
		Slug:     strings.ToLower(input.Slug),
		LogoURL:  input.LogoURL,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if err := cc.DB.Create(&brand).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Failed to create brand", err)
	}

	cc.Cache.DeletePrefix("brands:")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(brand))
}

func (cc *CatalogController) GetBrands(c *fiber.Ctx) error {
	cacheKey := "brands:list"
	if cached, ok := cc.Cache.Get(cacheKey); ok {
		return c.JSON(cached)
	}

	var brands []models.Brand
	if err := cc.DB.Order("name asc").Find(&brands).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch brands", err)
	}

	response := utils.SuccessResponse(brands)
	cc.Cache.Set(cacheKey, response, 0)

	return c.JSON(response)
}

func (cc *CatalogController) UpdateBrand(c *fiber.Ctx) error {
	brandID := c.Params("id")

	var input BrandRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var brand models.Brand
	if err := cc.DB.First(&brand, "id = ?", brandID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Brand not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch brand", err)
	}

	brand.Name = input.Name
	brand.Slug = strings.ToLower(input.Slug)
	brand.LogoURL = input.LogoURL
	if input.IsActive != nil {
		brand.IsActive = *input.IsActive
	}

	if err := cc.DB.Save(&brand).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update brand", err)
	}

	cc.Cache.DeletePrefix("brands:")

	return c.JSON(utils.SuccessResponse(brand))
}

func (cc *CatalogController) DeleteBrand(c *fiber.Ctx) error {
	brandID := c.Params("id")

	result := cc.DB.Where("id = ?", brandID).Delete(&models.Brand{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete brand", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Brand not found", nil)
	}

	cc.Cache.DeletePrefix("brands:")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Brand deleted successfully",
	}))
}
