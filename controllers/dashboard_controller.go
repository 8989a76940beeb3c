package controller

import (
	"log"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GetStats aggregates the numbers the admin landing page shows
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var inquiriesByStatus []statusCount
	if err := dc.DB.Model(&models.Inquiry{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&inquiriesByStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to aggregate inquiries", err)
	}

	var tasksByStatus []statusCount
	if err := dc.DB.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&tasksByStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to aggregate tasks", err)
	}

	var totalClients, totalProducts, pendingReminders, unconverted int64
	dc.DB.Model(&models.Client{}).Count(&totalClients)
	dc.DB.Model(&models.Product{}).Where("is_active = ?", true).Count(&totalProducts)
	dc.DB.Model(&models.Reminder{}).Where("is_sent = ?", false).Count(&pendingReminders)
	dc.DB.Model(&models.Inquiry{}).Where("is_converted_to_client = ? AND status != ?", false, models.InquiryStatusClosed).Count(&unconverted)

	var recentInquiries []models.Inquiry
	if err := dc.DB.Preload("Tags").
		Order("created_at desc").
		Limit(5).
		Find(&recentInquiries).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch recent inquiries", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"inquiries_by_status": inquiriesByStatus,
		"tasks_by_status":     tasksByStatus,
		"total_clients":       totalClients,
		"active_products":     totalProducts,
		"pending_reminders":   pendingReminders,
		"open_inquiries":      unconverted,
		"recent_inquiries":    recentInquiries,
	}))
}
