package controller

import (
	"time"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddFollowUpRequest struct {
	Type        string     `json:"type" validate:"required,oneof=call email whatsapp meeting"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Outcome     string     `json:"outcome" validate:"omitempty,max=500"`
	NextAction  string     `json:"next_action" validate:"omitempty,max=500"`
	RemindAt    *time.Time `json:"remind_at"`
}

// AddFollowUp appends an outreach record to a lead. The lead's
// LastContactDate is stamped; when a reminder time is supplied the lead's
// NextFollowUpDate is set and a Reminder row is created for the acting admin.
func (ic *InquiryController) AddFollowUp(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	inquiryID := c.Params("id")

	var input AddFollowUpRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var inquiry models.Inquiry
	if err := ic.DB.First(&inquiry, "id = ?", inquiryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inquiry not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch inquiry", err)
	}

	followUp := models.FollowUp{
		InquiryID:   inquiry.ID,
		UserID:      user.ID,
		Type:        input.Type,
		Description: input.Description,
		Outcome:     input.Outcome,
		NextAction:  input.NextAction,
		RemindAt:    input.RemindAt,
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&followUp).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := touchLastContact(tx, &inquiry, now); err != nil {
			return err
		}

		// A lead contacted for the first time leaves "new"
		if inquiry.Status == models.InquiryStatusNew {
			if err := tx.Model(&inquiry).Update("status", models.InquiryStatusContacted).Error; err != nil {
				return err
			}
		}

		if input.RemindAt != nil {
			if err := tx.Model(&inquiry).Update("next_follow_up_date", *input.RemindAt).Error; err != nil {
				return err
			}
			reminder := models.Reminder{
				UserID:    user.ID,
				InquiryID: &inquiry.ID,
				Title:     "Seguimiento: " + inquiry.Name,
				Message:   input.NextAction,
				RemindAt:  *input.RemindAt,
			}
			if err := tx.Create(&reminder).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add follow-up", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(followUp))
}

// GetFollowUps lists a lead's outreach history oldest first
func (ic *InquiryController) GetFollowUps(c *fiber.Ctx) error {
	inquiryID := c.Params("id")

	var inquiry models.Inquiry
	if err := ic.DB.First(&inquiry, "id = ?", inquiryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inquiry not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch inquiry", err)
	}

	var followUps []models.FollowUp
	if err := ic.DB.Where("inquiry_id = ?", inquiry.ID).
		Order("created_at asc").Find(&followUps).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch follow-ups", err)
	}

	return c.JSON(utils.SuccessResponse(followUps))
}
