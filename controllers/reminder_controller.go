package controller

import (
	"log"
	"time"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReminderController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewReminderController(db *gorm.DB, logger *log.Logger) *ReminderController {
	return &ReminderController{
		DB:     db,
		Logger: logger,
	}
}

type ReminderRequest struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Message   string    `json:"message" validate:"omitempty,max=5000"`
	RemindAt  time.Time `json:"remind_at" validate:"required"`
	InquiryID *uint     `json:"inquiry_id"`
}

func (rc *ReminderController) CreateReminder(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input ReminderRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	reminder := models.Reminder{
		UserID:    user.ID,
		InquiryID: input.InquiryID,
		Title:     input.Title,
		Message:   input.Message,
		RemindAt:  input.RemindAt,
	}
	if err := rc.DB.Create(&reminder).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create reminder", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(reminder))
}

// GetReminders lists the current admin's reminders, pending first
func (rc *ReminderController) GetReminders(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := rc.DB.Where("user_id = ?", user.ID)
	if c.Query("pending") == "true" {
		query = query.Where("is_sent = ?", false)
	}

	var reminders []models.Reminder
	if err := query.Order("is_sent asc, remind_at asc").Find(&reminders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch reminders", err)
	}

	return c.JSON(utils.SuccessResponse(reminders))
}

func (rc *ReminderController) DeleteReminder(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	reminderID := c.Params("id")

	result := rc.DB.Where("id = ? AND user_id = ?", reminderID, user.ID).Delete(&models.Reminder{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete reminder", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Reminder not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Reminder deleted successfully",
	}))
}
