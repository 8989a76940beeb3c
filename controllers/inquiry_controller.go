package controller

import (
	"log"
	"strconv"
	"strings"
	"time"

	"promocrm/models"
	"promocrm/utils"

	"github.com/badoux/checkmail"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InquiryController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewInquiryController(db *gorm.DB, logger *log.Logger) *InquiryController {
	return &InquiryController{
		DB:     db,
		Logger: logger,
	}
}

type InquiryProductInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type CreateInquiryRequest struct {
	Name     string                `json:"name" validate:"required,max=200"`
	Email    string                `json:"email" validate:"required,email"`
	Phone    string                `json:"phone" validate:"omitempty,max=30"`
	Message  string                `json:"message" validate:"omitempty,max=10000"`
	Products []InquiryProductInput `json:"products" validate:"omitempty,dive"`
}

// CreateInquiry handles the public contact form. Tags are computed once here
// and never recomputed, even if the message is edited later. Product names
// are linked to catalog products by case-insensitive substring match; a name
// that resolves nothing is kept unlinked and logged, never an error.
func (ic *InquiryController) CreateInquiry(c *fiber.Ctx) error {
	var input CreateInquiryRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	if err := checkmail.ValidateFormat(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid email address", err)
	}

	tagInput := utils.TagInput{
		Phone:   input.Phone,
		Message: input.Message,
	}
	for _, p := range input.Products {
		tagInput.Products = append(tagInput.Products, utils.TagProduct{
			Name:     p.Name,
			Quantity: p.Quantity,
		})
	}
	tags := utils.ComputeTags(tagInput, nil)

	inquiry := models.Inquiry{
		Name:     input.Name,
		Email:    strings.ToLower(input.Email),
		Phone:    input.Phone,
		Message:  input.Message,
		Status:   models.InquiryStatusNew,
		Priority: models.PriorityMedium,
		Source:   "web",
	}

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&inquiry).Error; err != nil {
			return err
		}

		for _, tag := range tags {
			if err := tx.Create(&models.InquiryTag{InquiryID: inquiry.ID, Tag: tag}).Error; err != nil {
				return err
			}
		}

		for _, p := range input.Products {
			line := models.InquiryProduct{
				InquiryID:     inquiry.ID,
				RequestedName: p.Name,
				Quantity:      p.Quantity,
			}

			var product models.Product
			err := tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(p.Name)+"%").
				First(&product).Error
			if err == nil {
				line.ProductID = &product.ID
			} else if err == gorm.ErrRecordNotFound {
				// Best effort: a typo'd name just stays unlinked
				ic.Logger.Printf("No product match for %q on inquiry %d", p.Name, inquiry.ID)
			} else {
				return err
			}

			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create inquiry", err)
	}

	ic.DB.Preload("Tags").Preload("Products").First(&inquiry, inquiry.ID)

	utils.LogEvent("inquiry_created", map[string]interface{}{
		"inquiry_id": inquiry.ID,
		"tags":       tags,
	})

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(inquiry))
}

// GetInquiries returns paginated leads with filters
func (ic *InquiryController) GetInquiries(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	status := c.Query("status")
	priority := c.Query("priority")
	tag := c.Query("tag")
	search := c.Query("search")

	query := ic.DB.Model(&models.Inquiry{})

	if status != "" {
		if !models.ValidInquiryStatus(status) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid inquiry status", nil)
		}
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if tag != "" {
		query = query.Joins("JOIN inquiry_tags ON inquiry_tags.inquiry_id = inquiries.id").
			Where("inquiry_tags.tag = ?", tag)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	// Count before pagination is applied so totals hold past page 1
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count inquiries", err)
	}

	var inquiries []models.Inquiry
	if err := query.Preload("Tags").Preload("Products").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&inquiries).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch inquiries", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  inquiries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetInquiry returns a single lead with its full history
func (ic *InquiryController) GetInquiry(c *fiber.Ctx) error {
	inquiryID := c.Params("id")

	var inquiry models.Inquiry
	if err := ic.DB.Preload("Tags").Preload("Products.Product").
		Preload("FollowUps", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&inquiry, "id = ?", inquiryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Inquiry not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch inquiry", err)
	}

	return c.JSON(utils.SuccessResponse(inquiry))
}

type UpdateInquiryRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	Message  *string `json:"message" validate:"omitempty,max=10000"`
	Status   *string `json:"status" validate:"omitempty,oneof=new hot warm cold contacted closed lost"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

// UpdateInquiry mutates lead fields and status. Tags are a creation-time
// snapshot and are left untouched even when the message changes.
func (ic *InquiryController) UpdateInquiry(c *fiber.Ctx) error {
	inquiryID := c.Params("id")

	var input UpdateInquiryRequest
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

	if input.Name != nil {
		inquiry.Name = *input.Name
	}
	if input.Phone != nil {
		inquiry.Phone = *input.Phone
	}
	if input.Message != nil {
		inquiry.Message = *input.Message
	}
	if input.Status != nil {
		inquiry.Status = *input.Status
	}
	if input.Priority != nil {
		inquiry.Priority = *input.Priority
	}

	if err := ic.DB.Save(&inquiry).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update inquiry", err)
	}

	return c.JSON(utils.SuccessResponse(inquiry))
}

// DeleteInquiry removes a lead and its dependent rows
func (ic *InquiryController) DeleteInquiry(c *fiber.Ctx) error {
	inquiryID := c.Params("id")

	tx := ic.DB.Begin()

	for _, dependent := range []interface{}{&models.InquiryTag{}, &models.InquiryProduct{}, &models.FollowUp{}} {
		if err := tx.Where("inquiry_id = ?", inquiryID).Delete(dependent).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete inquiry records", err)
		}
	}

	result := tx.Where("id = ?", inquiryID).Delete(&models.Inquiry{})
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete inquiry", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Inquiry not found", nil)
	}

	tx.Commit()

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Inquiry deleted successfully",
	}))
}

// touchLastContact stamps the lead's last outreach time
func touchLastContact(tx *gorm.DB, inquiry *models.Inquiry, at time.Time) error {
	inquiry.LastContactDate = &at
	return tx.Model(inquiry).Update("last_contact_date", at).Error
}
