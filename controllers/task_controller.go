package controller

import (
	"log"
	"time"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	return &TaskController{
		DB:     db,
		Logger: logger,
	}
}

type CreateTaskRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Status       string   `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority     string   `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate      *time.Time `json:"due_date"`
	AssignedToID *uint    `json:"assigned_to_id"`
	ClientID     *uint    `json:"client_id"`
	InquiryID    *uint    `json:"inquiry_id"`
	Tags         []string `json:"tags"`
}

// CreateTask appends a new task to the end of its status column
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	var input CreateTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		DueDate:      input.DueDate,
		AssignedToID: input.AssignedToID,
		ClientID:     input.ClientID,
		InquiryID:    input.InquiryID,
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		// New tasks go to the end of the column, past any gaps left by
		// deletes, so a fresh task never collides with a surviving position
		var maxPosition int
		if err := tx.Model(&models.Task{}).Where("status = ?", status).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPosition).Error; err != nil {
			return err
		}
		task.Order = maxPosition + 1

		if err := tx.Create(&task).Error; err != nil {
			return err
		}

		for _, tag := range input.Tags {
			if err := tx.Create(&models.TaskTag{TaskID: task.ID, Tag: tag}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}

	tc.DB.Preload("Tags").First(&task, task.ID)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(task))
}

// GetTasks returns all tasks sorted by (status, order), optionally filtered
// to a single column
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.ValidTaskStatus(status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid task status", nil)
	}

	tasks, err := tc.fetchBoard(status)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	return c.JSON(utils.SuccessResponse(tasks))
}

// GetTask returns a single task by ID
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	taskID := c.Params("id")

	var task models.Task
	if err := tc.DB.Preload("Tags").Preload("AssignedTo").Preload("Client").Preload("Inquiry").
		First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch task", err)
	}

	return c.JSON(utils.SuccessResponse(task))
}

type UpdateTaskRequest struct {
	Title        *string    `json:"title" validate:"omitempty,max=200"`
	Description  *string    `json:"description" validate:"omitempty,max=5000"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate      *time.Time `json:"due_date"`
	AssignedToID *uint      `json:"assigned_to_id"`
	ClientID     *uint      `json:"client_id"`
	InquiryID    *uint      `json:"inquiry_id"`
	Tags         []string   `json:"tags"`
}

// UpdateTask updates direct fields. Column and position changes go through
// ReorderTask instead.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	taskID := c.Params("id")

	var input UpdateTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var task models.Task
	if err := tc.DB.First(&task, "id = ?", taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch task", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.AssignedToID != nil {
		task.AssignedToID = input.AssignedToID
	}
	if input.ClientID != nil {
		task.ClientID = input.ClientID
	}
	if input.InquiryID != nil {
		task.InquiryID = input.InquiryID
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		if input.Tags != nil {
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskTag{}).Error; err != nil {
				return err
			}
			for _, tag := range input.Tags {
				if err := tx.Create(&models.TaskTag{TaskID: task.ID, Tag: tag}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", err)
	}

	tc.DB.Preload("Tags").First(&task, task.ID)

	return c.JSON(utils.SuccessResponse(task))
}

// DeleteTask removes a task. Siblings are not renumbered; the gap is healed
// by the next reorder in that column.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	taskID := c.Params("id")

	tx := tc.DB.Begin()

	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task tags", err)
	}

	result := tx.Where("id = ?", taskID).Delete(&models.Task{})
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	tx.Commit()

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Task deleted successfully",
	}))
}

// fetchBoard loads tasks sorted by (status, position)
func (tc *TaskController) fetchBoard(status string) ([]models.Task, error) {
	query := tc.DB.Preload("Tags").Order("status asc, position asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
