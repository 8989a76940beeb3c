package controller

import (
	"log"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SlideController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Cache  *utils.Cache
}

func NewSlideController(db *gorm.DB, logger *log.Logger, cache *utils.Cache) *SlideController {
	return &SlideController{
		DB:     db,
		Logger: logger,
		Cache:  cache,
	}
}

type SlideRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Subtitle string `json:"subtitle" validate:"omitempty,max=500"`
	ImageURL string `json:"image_url" validate:"required,max=500"`
	LinkURL  string `json:"link_url" validate:"omitempty,max=500"`
	Position int    `json:"position" validate:"gte=0"`
	IsActive *bool  `json:"is_active"`
}

func (sc *SlideController) CreateSlide(c *fiber.Ctx) error {
	var input SlideRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	slide := models.Slide{
		Title:    input.Title,
		Subtitle: input.Subtitle,
		ImageURL: input.ImageURL,
		LinkURL:  input.LinkURL,
		Position: input.Position,
		IsActive: input.IsActive == nil || *input.IsActive,
	}
	if err := sc.DB.Create(&slide).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create slide", err)
	}

	sc.Cache.DeletePrefix("slides:")

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(slide))
}

func (sc *SlideController) GetSlides(c *fiber.Ctx) error {
	cacheKey := "slides:list"
	if cached, ok := sc.Cache.Get(cacheKey); ok {
		return c.JSON(cached)
	}

	var slides []models.Slide
	if err := sc.DB.Order("position asc").Find(&slides).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch slides", err)
	}

	response := utils.SuccessResponse(slides)
	sc.Cache.Set(cacheKey, response, 0)

	return c.JSON(response)
}

func (sc *SlideController) UpdateSlide(c *fiber.Ctx) error {
	slideID := c.Params("id")

	var input SlideRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var slide models.Slide
	if err := sc.DB.First(&slide, "id = ?", slideID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Slide not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch slide", err)
	}

	slide.Title = input.Title
	slide.Subtitle = input.Subtitle
	slide.ImageURL = input.ImageURL
	slide.LinkURL = input.LinkURL
	slide.Position = input.Position
	if input.IsActive != nil {
		slide.IsActive = *input.IsActive
	}

	if err := sc.DB.Save(&slide).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update slide", err)
	}

	sc.Cache.DeletePrefix("slides:")

	return c.JSON(utils.SuccessResponse(slide))
}

func (sc *SlideController) DeleteSlide(c *fiber.Ctx) error {
	slideID := c.Params("id")

	result := sc.DB.Where("id = ?", slideID).Delete(&models.Slide{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete slide", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Slide not found", nil)
	}

	sc.Cache.DeletePrefix("slides:")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Slide deleted successfully",
	}))
}
