package controller

import (
	"testing"

	"promocrm/models"

	"github.com/gofiber/fiber/v2"
)

func newClientApp(t *testing.T) *fiber.App {
	t.Helper()
	db := newTestDB(t)
	cc := NewClientController(db, testLogger())

	app := fiber.New()
	app.Post("/clients", cc.CreateClient)
	app.Get("/clients", cc.GetClients)
	return app
}

func TestGetClientsTotalPastFirstPage(t *testing.T) {
	app := newClientApp(t)

	for _, name := range []string{"Empresa A", "Empresa B", "Empresa C"} {
		resp := doJSON(t, app, "POST", "/clients", fiber.Map{
			"name":  name,
			"email": name + "@example.com",
		}, nil)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("create %s status = %d, want 201", name, resp.StatusCode)
		}
	}

	var listed struct {
		Data  []models.Client `json:"data"`
		Total int64           `json:"total"`
	}
	doJSON(t, app, "GET", "/clients?page=2&limit=2", nil, &listed)

	if len(listed.Data) != 1 {
		t.Fatalf("page 2 has %d clients, want 1", len(listed.Data))
	}
	// Total reflects the whole result set, not the requested page
	if listed.Total != 3 {
		t.Fatalf("total = %d, want 3", listed.Total)
	}
}

func TestGetClientsSearch(t *testing.T) {
	app := newClientApp(t)

	doJSON(t, app, "POST", "/clients", fiber.Map{"name": "Acme SA", "email": "ventas@acme.com"}, nil)
	doJSON(t, app, "POST", "/clients", fiber.Map{"name": "Otra", "email": "otra@example.com"}, nil)

	var listed struct {
		Data  []models.Client `json:"data"`
		Total int64           `json:"total"`
	}
	doJSON(t, app, "GET", "/clients?search=acme", nil, &listed)

	if listed.Total != 1 || len(listed.Data) != 1 || listed.Data[0].Name != "Acme SA" {
		t.Fatalf("search returned %v (total %d), want only Acme SA", listed.Data, listed.Total)
	}
}
