package controller

import (
	"log"
	"strconv"
	"strings"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Cache  *utils.Cache
}

func NewProductController(db *gorm.DB, logger *log.Logger, cache *utils.Cache) *ProductController {
	return &ProductController{
		DB:     db,
		Logger: logger,
		Cache:  cache,
	}
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=10000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	MainImage   string   `json:"main_image" validate:"omitempty,max=500"`
	CategoryID  *uint    `json:"category_id"`
	BrandID     *uint    `json:"brand_id"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
	Images      []string `json:"images"`
}

// CreateProduct adds a catalog product
func (pc *ProductController) CreateProduct(c *fiber.Ctx) error {
	var input CreateProductRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var existing models.Product
	if err := pc.DB.Where("slug = ?", input.Slug).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Product with this slug already exists", nil)
	}

	product := models.Product{
		Name:        input.Name,
		Slug:        strings.ToLower(input.Slug),
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		MainImage:   input.MainImage,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		IsActive:    input.IsActive == nil || *input.IsActive,
		IsFeatured:  input.IsFeatured != nil && *input.IsFeatured,
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for i, url := range input.Images {
			image := models.ProductImage{ProductID: product.ID, URL: url, Position: i}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create product", err)
	}

	pc.Cache.DeletePrefix("products:")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(product))
}

// GetProducts returns a paginated product list, read through the cache
func (pc *ProductController) GetProducts(c *fiber.Ctx) error {
	cacheKey := "products:list:" + c.OriginalURL()
	if cached, ok := pc.Cache.Get(cacheKey); ok {
		return c.JSON(cached)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	query := pc.DB.Model(&models.Product{})

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", utils.ParseUint(categoryID))
	}
	if brandID := c.Query("brand_id"); brandID != "" {
		query = query.Where("brand_id = ?", utils.ParseUint(brandID))
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if c.Query("active") != "" {
		query = query.Where("is_active = ?", c.Query("active") == "true")
	}

	// Count before pagination is applied so totals hold past page 1
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count products", err)
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Brand").Preload("Images").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch products", err)
	}

	response := utils.PaginatedResponse{
		Data:  products,
		Total: total,
		Page:  page,
		Limit: limit,
	}
	pc.Cache.Set(cacheKey, response, 0)

	return c.JSON(response)
}

// GetProduct returns a single product by ID
func (pc *ProductController) GetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var product models.Product
	if err := pc.DB.Preload("Category").Preload("Brand").Preload("Images").
		First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch product", err)
	}

	return c.JSON(utils.SuccessResponse(product))
}

type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=10000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	MainImage   *string  `json:"main_image" validate:"omitempty,max=500"`
	CategoryID  *uint    `json:"category_id"`
	BrandID     *uint    `json:"brand_id"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
}

// UpdateProduct updates product fields
func (pc *ProductController) UpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	var input UpdateProductRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch product", err)
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.MainImage != nil {
		product.MainImage = *input.MainImage
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update product", err)
	}

	pc.Cache.DeletePrefix("products:")

	return c.JSON(utils.SuccessResponse(product))
}

// DeleteProduct removes a product and its gallery images
func (pc *ProductController) DeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	tx := pc.DB.Begin()

	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete product images", err)
	}

	result := tx.Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete product", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
	}

	tx.Commit()

	pc.Cache.DeletePrefix("products:")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Product deleted successfully",
	}))
}
