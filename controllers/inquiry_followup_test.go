package controller

import (
	"testing"
	"time"

	"promocrm/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newFollowUpApp(t *testing.T) (*fiber.App, *gorm.DB, models.User) {
	t.Helper()
	db := newTestDB(t)

	admin := models.User{Email: "admin@test.local", PasswordHash: "x", IsActive: true, Role: "admin"}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	ic := NewInquiryController(db, testLogger())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &admin)
		return c.Next()
	})
	app.Post("/inquiries", ic.CreateInquiry)
	app.Post("/inquiries/:id/followups", ic.AddFollowUp)
	app.Get("/inquiries/:id/followups", ic.GetFollowUps)
	return app, db, admin
}

func TestAddFollowUpMarksContacted(t *testing.T) {
	app, db, admin := newFollowUpApp(t)

	var created struct {
		Data models.Inquiry `json:"data"`
	}
	doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":  "Cliente",
		"email": "cliente@example.com",
	}, &created)

	remindAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	resp := doJSON(t, app, "POST", "/inquiries/"+itoa(created.Data.ID)+"/followups", fiber.Map{
		"type":        "call",
		"description": "Primera llamada",
		"next_action": "Enviar cotización",
		"remind_at":   remindAt,
	}, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("followup status = %d, want 201", resp.StatusCode)
	}

	var inquiry models.Inquiry
	db.First(&inquiry, created.Data.ID)
	if inquiry.Status != models.InquiryStatusContacted {
		t.Fatalf("status = %q, want contacted", inquiry.Status)
	}
	if inquiry.LastContactDate == nil {
		t.Fatal("LastContactDate not stamped")
	}
	if inquiry.NextFollowUpDate == nil {
		t.Fatal("NextFollowUpDate not set from remind_at")
	}

	// The reminder row is created for the acting admin
	var reminder models.Reminder
	if err := db.Where("user_id = ? AND inquiry_id = ?", admin.ID, inquiry.ID).First(&reminder).Error; err != nil {
		t.Fatalf("reminder not created: %v", err)
	}
	if reminder.IsSent {
		t.Fatal("new reminder must not be marked sent")
	}
}

func TestAddFollowUpKeepsLaterStatus(t *testing.T) {
	app, db, _ := newFollowUpApp(t)

	inquiry := models.Inquiry{Name: "Caliente", Email: "hot@example.com", Status: models.InquiryStatusHot, Priority: models.PriorityHigh}
	if err := db.Create(&inquiry).Error; err != nil {
		t.Fatalf("failed to seed inquiry: %v", err)
	}

	doJSON(t, app, "POST", "/inquiries/"+itoa(inquiry.ID)+"/followups", fiber.Map{
		"type": "email",
	}, nil)

	db.First(&inquiry, inquiry.ID)
	// Only "new" is auto-promoted; a hand-set status stays
	if inquiry.Status != models.InquiryStatusHot {
		t.Fatalf("status = %q, want hot", inquiry.Status)
	}
}

func TestGetFollowUpsOldestFirst(t *testing.T) {
	app, db, _ := newFollowUpApp(t)

	inquiry := models.Inquiry{Name: "Cliente", Email: "c@example.com", Status: models.InquiryStatusNew, Priority: models.PriorityMedium}
	if err := db.Create(&inquiry).Error; err != nil {
		t.Fatalf("failed to seed inquiry: %v", err)
	}

	for _, kind := range []string{"call", "email", "meeting"} {
		doJSON(t, app, "POST", "/inquiries/"+itoa(inquiry.ID)+"/followups", fiber.Map{"type": kind}, nil)
	}

	var listed struct {
		Data []models.FollowUp `json:"data"`
	}
	resp := doJSON(t, app, "GET", "/inquiries/"+itoa(inquiry.ID)+"/followups", nil, &listed)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if len(listed.Data) != 3 {
		t.Fatalf("got %d follow-ups, want 3", len(listed.Data))
	}
	want := []string{"call", "email", "meeting"}
	for i, fu := range listed.Data {
		if fu.Type != want[i] {
			t.Fatalf("follow-up %d type = %q, want %q", i, fu.Type, want[i])
		}
	}
}
