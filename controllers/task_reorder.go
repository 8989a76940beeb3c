package controller

import (
	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReorderTaskRequest struct {
	TaskID    uint   `json:"task_id" validate:"required"`
	NewStatus string `json:"new_status" validate:"required,oneof=todo in_progress done"`
	NewOrder  int    `json:"new_order" validate:"gte=0"`
}

// ReorderTask moves a task to (new_status, new_order) and renumbers the
// destination column so positions stay contiguous from 0. The whole
// read-modify-write runs in one transaction: either every affected row
// updates or none do, so two racing moves serialize instead of corrupting
// the column. Returns the full board so the client can re-render without a
// second round trip.
func (tc *TaskController) ReorderTask(c *fiber.Ctx) error {
	var input ReorderTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&task, input.TaskID).Error; err != nil {
			return err
		}

		// Destination column without the moved task, in current display
		// order. The rows are locked: a racing move into the same column
		// blocks here until this transaction commits, so renumber plans are
		// never computed from a stale snapshot.
		var siblings []models.Task
		if err := columnForUpdate(tx, input.NewStatus, task.ID).
			Find(&siblings).Error; err != nil {
			return err
		}

		insertAt := clampOrder(input.NewOrder, len(siblings))
		plan := buildColumnPlan(siblings, insertAt)

		// A cross-column move also compacts the column left behind
		if task.Status != input.NewStatus {
			var source []models.Task
			if err := columnForUpdate(tx, task.Status, task.ID).
				Find(&source).Error; err != nil {
				return err
			}
			for id, position := range buildColumnPlan(source, len(source)) {
				plan[id] = position
			}
		}

		for id, position := range plan {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Task{}).Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"status":   input.NewStatus,
				"position": insertAt,
			}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reorder task", err)
	}

	tasks, err := tc.fetchBoard("")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	BroadcastBoardUpdate(tasks)

	return c.JSON(utils.SuccessResponse(tasks))
}

// columnForUpdate selects a column's tasks minus the moved one, in display
// order, with SELECT ... FOR UPDATE row locks. Concurrent moves touching the
// same column serialize on these locks instead of both renumbering from the
// same pre-commit snapshot. The sqlite driver drops the locking clause, which
// is fine there: its writes serialize on the database lock anyway.
func columnForUpdate(tx *gorm.DB, status string, excludeID uint) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? AND id <> ?", status, excludeID).
		Order("position asc")
}

// clampOrder bounds a requested position to [0, max]
func clampOrder(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// buildColumnPlan assigns contiguous positions to the destination column's
// existing tasks, leaving the slot insertAt free for the moved task. Tasks
// keep their relative order; any gaps left behind by deletes are compacted.
// Only tasks whose position actually changes appear in the result.
func buildColumnPlan(siblings []models.Task, insertAt int) map[uint]int {
	plan := make(map[uint]int)
	for i, sibling := range siblings {
		position := i
		if i >= insertAt {
			position = i + 1
		}
		if sibling.Order != position {
			plan[sibling.ID] = position
		}
	}
	return plan
}
