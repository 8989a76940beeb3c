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

type ClientController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewClientController(db *gorm.DB, logger *log.Logger) *ClientController {
	return &ClientController{
		DB:     db,
		Logger: logger,
	}
}

type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Notes   string `json:"notes" validate:"omitempty,max=5000"`
}

func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	var input ClientRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	client := models.Client{
		Name:    input.Name,
		Email:   strings.ToLower(input.Email),
		Phone:   input.Phone,
		Company: input.Company,
		Address: input.Address,
		Notes:   input.Notes,
	}
	if err := cc.DB.Create(&client).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create client", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(client))
}

func (cc *ClientController) GetClients(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	query := cc.DB.Model(&models.Client{})

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}

	// Count before pagination is applied so totals hold past page 1
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count clients", err)
	}

	var clients []models.Client
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch clients", err)
	}

	return c.JSON(utils.PaginatedResponse{
		Data:  clients,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (cc *ClientController) GetClient(c *fiber.Ctx) error {
	clientID := c.Params("id")

	var client models.Client
	if err := cc.DB.Preload("Tasks").First(&client, "id = ?", clientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch client", err)
	}

	return c.JSON(utils.SuccessResponse(client))
}

func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	clientID := c.Params("id")

	var input ClientRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var client models.Client
	if err := cc.DB.First(&client, "id = ?", clientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch client", err)
	}

	client.Name = input.Name
	client.Email = strings.ToLower(input.Email)
	client.Phone = input.Phone
	client.Company = input.Company
	client.Address = input.Address
	client.Notes = input.Notes

	if err := cc.DB.Save(&client).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update client", err)
	}

	return c.JSON(utils.SuccessResponse(client))
}

func (cc *ClientController) DeleteClient(c *fiber.Ctx) error {
	clientID := c.Params("id")

	result := cc.DB.Where("id = ?", clientID).Delete(&models.Client{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete client", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Client not found", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Client deleted successfully",
	}))
}
