package controller

import (
	"testing"

	"promocrm/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newInquiryApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	ic := NewInquiryController(db, testLogger())

	app := fiber.New()
	app.Post("/inquiries", ic.CreateInquiry)
	app.Get("/inquiries", ic.GetInquiries)
	app.Put("/inquiries/:id", ic.UpdateInquiry)
	app.Post("/inquiries/:id/convert", ic.ConvertInquiry)
	return app, db
}

func TestGetInquiriesTotalPastFirstPage(t *testing.T) {
	app, _ := newInquiryApp(t)

	for _, name := range []string{"Uno", "Dos", "Tres"} {
		doJSON(t, app, "POST", "/inquiries", fiber.Map{
			"name":  name,
			"email": name + "@example.com",
		}, nil)
	}

	var listed struct {
		Data  []models.Inquiry `json:"data"`
		Total int64            `json:"total"`
	}
	doJSON(t, app, "GET", "/inquiries?page=2&limit=2", nil, &listed)

	if len(listed.Data) != 1 {
		t.Fatalf("page 2 has %d inquiries, want 1", len(listed.Data))
	}
	// Total reflects the whole result set, not the requested page
	if listed.Total != 3 {
		t.Fatalf("total = %d, want 3", listed.Total)
	}
}

func TestCreateInquiryComputesTags(t *testing.T) {
	app, db := newInquiryApp(t)

	var created struct {
		Data models.Inquiry `json:"data"`
	}
	resp := doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":    "María López",
		"email":   "maria@example.com",
		"phone":   "+52 55 1234 5678",
		"message": "Busco un vestido talla M para un evento",
		"products": []fiber.Map{
			{"name": "vestido", "quantity": 10},
		},
	}, &created)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	var tags []models.InquiryTag
	if err := db.Where("inquiry_id = ?", created.Data.ID).Find(&tags).Error; err != nil {
		t.Fatalf("failed to load tags: %v", err)
	}

	want := map[string]bool{
		"con-productos":  true,
		"cantidad-alta":  true,
		"vestido":        true,
		"consulta-talla": true,
		"con-telefono":   true,
	}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags %v, want %d", len(tags), tags, len(want))
	}
	for _, tag := range tags {
		if !want[tag.Tag] {
			t.Fatalf("unexpected tag %q", tag.Tag)
		}
	}

	if created.Data.Status != models.InquiryStatusNew {
		t.Fatalf("status = %q, want new", created.Data.Status)
	}
}

func TestCreateInquiryLinksProducts(t *testing.T) {
	app, db := newInquiryApp(t)

	catalog := models.Product{Name: "Vestido Primavera", Slug: "vestido-primavera", Price: 499, IsActive: true}
	if err := db.Create(&catalog).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	var created struct {
		Data models.Inquiry `json:"data"`
	}
	doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":  "Cliente",
		"email": "cliente@example.com",
		"products": []fiber.Map{
			{"name": "primavera", "quantity": 2},
			{"name": "no-such-product", "quantity": 1},
		},
	}, &created)

	var lines []models.InquiryProduct
	if err := db.Where("inquiry_id = ?", created.Data.ID).Order("id asc").Find(&lines).Error; err != nil {
		t.Fatalf("failed to load product lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d product lines, want 2", len(lines))
	}

	// Substring match resolves against the catalog
	if lines[0].ProductID == nil || *lines[0].ProductID != catalog.ID {
		t.Fatalf("first line ProductID = %v, want %d", lines[0].ProductID, catalog.ID)
	}
	// Unresolved names stay unlinked, the request still succeeds
	if lines[1].ProductID != nil {
		t.Fatalf("second line ProductID = %v, want nil", lines[1].ProductID)
	}
	if lines[1].RequestedName != "no-such-product" {
		t.Fatalf("second line RequestedName = %q", lines[1].RequestedName)
	}
}

func TestCreateInquiryRejectsBadEmail(t *testing.T) {
	app, _ := newInquiryApp(t)

	resp := doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":  "Cliente",
		"email": "not-an-email",
	}, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateInquiryKeepsTagSnapshot(t *testing.T) {
	app, db := newInquiryApp(t)

	var created struct {
		Data models.Inquiry `json:"data"`
	}
	doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":    "Cliente",
		"email":   "cliente@example.com",
		"message": "precio del blazer",
	}, &created)

	// Editing the message must not recompute tags
	resp := doJSON(t, app, "PUT", "/inquiries/"+itoa(created.Data.ID), fiber.Map{
		"message": "ya no me interesa",
	}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}

	var tags []models.InquiryTag
	db.Where("inquiry_id = ?", created.Data.ID).Find(&tags)
	if len(tags) != 2 {
		t.Fatalf("got %d tags after edit, want the original 2 (blazer, consulta-precio)", len(tags))
	}
}

func TestConvertInquiryIsOneWay(t *testing.T) {
	app, db := newInquiryApp(t)

	var created struct {
		Data models.Inquiry `json:"data"`
	}
	doJSON(t, app, "POST", "/inquiries", fiber.Map{
		"name":  "Empresa SA",
		"email": "compras@empresa.com",
		"phone": "555-0101",
	}, &created)

	var converted struct {
		Data models.Client `json:"data"`
	}
	resp := doJSON(t, app, "POST", "/inquiries/"+itoa(created.Data.ID)+"/convert", fiber.Map{
		"company": "Empresa SA de CV",
	}, &converted)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("convert status = %d, want 201", resp.StatusCode)
	}

	if converted.Data.Email != "compras@empresa.com" || converted.Data.Company != "Empresa SA de CV" {
		t.Fatalf("client = %+v, fields not carried over", converted.Data)
	}
	if converted.Data.ConvertedFromID == nil || *converted.Data.ConvertedFromID != created.Data.ID {
		t.Fatalf("ConvertedFromID = %v, want %d", converted.Data.ConvertedFromID, created.Data.ID)
	}

	var inquiry models.Inquiry
	db.First(&inquiry, created.Data.ID)
	if !inquiry.IsConvertedToClient || inquiry.Status != models.InquiryStatusClosed {
		t.Fatalf("inquiry after convert = %+v, want converted and closed", inquiry)
	}
	if inquiry.ClientID == nil || *inquiry.ClientID != converted.Data.ID {
		t.Fatalf("inquiry ClientID = %v, want %d", inquiry.ClientID, converted.Data.ID)
	}

	// Second conversion is rejected, no duplicate client
	resp = doJSON(t, app, "POST", "/inquiries/"+itoa(created.Data.ID)+"/convert", nil, nil)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("second convert status = %d, want 409", resp.StatusCode)
	}

	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 1 {
		t.Fatalf("client count = %d, want 1", count)
	}
}

func TestConvertInquiryNotFound(t *testing.T) {
	app, _ := newInquiryApp(t)

	resp := doJSON(t, app, "POST", "/inquiries/9999/convert", nil, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
