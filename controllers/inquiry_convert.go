package controller

import (
	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ConvertInquiryRequest struct {
	Company string `json:"company" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Notes   string `json:"notes" validate:"omitempty,max=5000"`
}

// ConvertInquiry turns a lead into a Client record. Conversion is one-way: a
// lead already flagged as converted is rejected with 409 rather than creating
// a duplicate client.
func (ic *InquiryController) ConvertInquiry(c *fiber.Ctx) error {
	inquiryID := c.Params("id")

	var input ConvertInquiryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
		if err := utils.ValidateStruct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
		}
	}

	var client models.Client

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		var inquiry models.Inquiry
		if err := tx.First(&inquiry, "id = ?", inquiryID).Error; err != nil {
			return err
		}

		if inquiry.IsConvertedToClient {
			return gorm.ErrDuplicatedKey
		}

		client = models.Client{
			Name:            inquiry.Name,
			Email:           inquiry.Email,
			Phone:           inquiry.Phone,
			Company:         input.Company,
			Address:         input.Address,
			Notes:           input.Notes,
			ConvertedFromID: &inquiry.ID,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		return tx.Model(&inquiry).Updates(map[string]interface{}{
			"is_converted_to_client": true,
			"client_id":              client.ID,
			"status":                 models.InquiryStatusClosed,
		}).Error
	})
	if err != nil {
		switch err {
		case gorm.ErrRecordNotFound:
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inquiry not found", nil)
		case gorm.ErrDuplicatedKey:
			return utils.ErrorResponse(c, fiber.StatusConflict, "Inquiry already converted to a client", nil)
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to convert inquiry", err)
		}
	}

	utils.LogEvent("inquiry_converted", map[string]interface{}{
		"inquiry_id": inquiryID,
		"client_id":  client.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(client))
}
