package controller

import (
	"testing"
	"time"

	"promocrm/models"
	"promocrm/utils"

	"github.com/gofiber/fiber/v2"
)

func newProductApp(t *testing.T) (*fiber.App, *utils.Cache) {
	t.Helper()
	db := newTestDB(t)
	cache := utils.NewCache(32, time.Minute)
	pc := NewProductController(db, testLogger(), cache)

	app := fiber.New()
	app.Post("/products", pc.CreateProduct)
	app.Get("/products", pc.GetProducts)
	app.Put("/products/:id", pc.UpdateProduct)
	app.Delete("/products/:id", pc.DeleteProduct)
	return app, cache
}

func TestCreateProductRejectsDuplicateSlug(t *testing.T) {
	app, _ := newProductApp(t)

	body := fiber.Map{"name": "Taza promocional", "slug": "taza-promo", "price": 89.0}
	if resp := doJSON(t, app, "POST", "/products", body, nil); resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("first create status = %d, want 201", resp.StatusCode)
	}
	if resp := doJSON(t, app, "POST", "/products", body, nil); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("duplicate slug status = %d, want 409", resp.StatusCode)
	}
}

func TestGetProductsCachesAndInvalidates(t *testing.T) {
	app, cache := newProductApp(t)

	doJSON(t, app, "POST", "/products", fiber.Map{"name": "Gorra", "slug": "gorra", "price": 120.0}, nil)

	var listed struct {
		Data  []models.Product `json:"data"`
		Total int64            `json:"total"`
	}
	doJSON(t, app, "GET", "/products", nil, &listed)
	if listed.Total != 1 {
		t.Fatalf("total = %d, want 1", listed.Total)
	}

	// The list response is now cached
	if _, ok := cache.Get("products:list:/products"); !ok {
		t.Fatal("list response not cached")
	}

	// A mutation drops every products:* entry
	doJSON(t, app, "POST", "/products", fiber.Map{"name": "Llavero", "slug": "llavero", "price": 35.0}, nil)
	if _, ok := cache.Get("products:list:/products"); ok {
		t.Fatal("cache not invalidated after create")
	}

	doJSON(t, app, "GET", "/products", nil, &listed)
	if listed.Total != 2 {
		t.Fatalf("total after invalidation = %d, want 2", listed.Total)
	}
}

func TestGetProductsTotalPastFirstPage(t *testing.T) {
	app, _ := newProductApp(t)

	for _, slug := range []string{"taza", "gorra", "termo"} {
		doJSON(t, app, "POST", "/products", fiber.Map{"name": slug, "slug": slug, "price": 10.0}, nil)
	}

	var listed struct {
		Data  []models.Product `json:"data"`
		Total int64            `json:"total"`
	}
	doJSON(t, app, "GET", "/products?page=2&limit=2", nil, &listed)

	if len(listed.Data) != 1 {
		t.Fatalf("page 2 has %d products, want 1", len(listed.Data))
	}
	// Total reflects the whole result set, not the requested page
	if listed.Total != 3 {
		t.Fatalf("total = %d, want 3", listed.Total)
	}
}

func TestGetProductsFilters(t *testing.T) {
	app, _ := newProductApp(t)

	doJSON(t, app, "POST", "/products", fiber.Map{"name": "Playera estampada", "slug": "playera", "price": 150.0, "is_featured": true}, nil)
	doJSON(t, app, "POST", "/products", fiber.Map{"name": "Termo", "slug": "termo", "price": 220.0}, nil)

	var listed struct {
		Data  []models.Product `json:"data"`
		Total int64            `json:"total"`
	}
	doJSON(t, app, "GET", "/products?search=playera", nil, &listed)
	if listed.Total != 1 || listed.Data[0].Slug != "playera" {
		t.Fatalf("search filter returned %v", listed.Data)
	}

	doJSON(t, app, "GET", "/products?featured=true", nil, &listed)
	if listed.Total != 1 || !listed.Data[0].IsFeatured {
		t.Fatalf("featured filter returned %v", listed.Data)
	}
}
