package worker

import (
	"context"
	"log"
	"time"

	"promocrm/models"
	"promocrm/utils"

	"gorm.io/gorm"
)

type ReminderWorker struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
	Logger *log.Logger
}

func NewReminderWorker(db *gorm.DB, mailer *utils.Mailer, logger *log.Logger) *ReminderWorker {
	return &ReminderWorker{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

func (rw *ReminderWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	rw.Logger.Println("Reminder worker started")

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rw.Logger.Println("Reminder worker shutting down...")
			return
		case <-ticker.C:
			rw.processDueReminders()
			rw.processOverdueFollowUps()
		}
	}
}

func (rw *ReminderWorker) processDueReminders() {
	var due []models.Reminder
	if err := rw.DB.Where("is_sent = ? AND remind_at <= ?", false, time.Now()).Find(&due).Error; err != nil {
		rw.Logger.Printf("Error fetching due reminders: %v", err)
		return
	}

	for _, reminder := range due {
		var user models.User
		if err := rw.DB.First(&user, reminder.UserID).Error; err != nil {
			rw.Logger.Printf("Error loading user %d for reminder %d: %v", reminder.UserID, reminder.ID, err)
			continue
		}

		if err := rw.Mailer.SendReminderEmail(user.Email, reminder.Title, reminder.Message); err != nil {
			utils.LogError("reminder_email_failed", err, map[string]interface{}{
				"reminder_id": reminder.ID,
				"user_id":     user.ID,
			})
			continue
		}

		now := time.Now()
		if err := rw.DB.Model(&reminder).Updates(map[string]interface{}{
			"is_sent": true,
			"sent_at": now,
		}).Error; err != nil {
			rw.Logger.Printf("Error marking reminder %d as sent: %v", reminder.ID, err)
		}
	}
}

// processOverdueFollowUps nags admins about leads whose scheduled follow-up
// date has passed without a new contact being recorded.
func (rw *ReminderWorker) processOverdueFollowUps() {
	var overdue []models.Inquiry
	err := rw.DB.
		Where("next_follow_up_date IS NOT NULL AND next_follow_up_date <= ?", time.Now()).
		Where("is_converted_to_client = ? AND status NOT IN ?", false, []string{models.InquiryStatusClosed, models.InquiryStatusLost}).
		Find(&overdue).Error
	if err != nil {
		rw.Logger.Printf("Error fetching overdue follow-ups: %v", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	var admins []models.User
	if err := rw.DB.Where("is_active = ?", true).Find(&admins).Error; err != nil {
		rw.Logger.Printf("Error loading admins: %v", err)
		return
	}

	for _, inquiry := range overdue {
		for _, admin := range admins {
			if err := rw.Mailer.SendFollowUpDueEmail(admin.Email, inquiry.Name, inquiry.Email); err != nil {
				utils.LogError("followup_email_failed", err, map[string]interface{}{
					"inquiry_id": inquiry.ID,
					"user_id":    admin.ID,
				})
			}
		}

		// Clear the date so the same lead is not flagged on every tick;
		// the next follow-up append sets a fresh one.
		if err := rw.DB.Model(&inquiry).Update("next_follow_up_date", nil).Error; err != nil {
			rw.Logger.Printf("Error clearing follow-up date for inquiry %d: %v", inquiry.ID, err)
		}
	}
}
