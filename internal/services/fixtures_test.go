package services

import (
	"time"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// testListing builds a listing with sensible defaults; tests override what
// they care about through mutators.
func testListing(title string, mutators ...func(*models.Property)) models.Property {
	p := models.Property{
		ID:          utils.NewSixID(),
		Title:       title,
		Description: "A lovely place",
		Price:       250000,
		Currency:    "USD",
		Type:        models.PropertyTypeHouse,
		Operation:   models.OperationSale,
		Bedrooms:    3,
		Bathrooms:   2,
		Area:        120,
		Address:     "1 Main St",
		City:        "New York",
		Zone:        "Brooklyn",
		Features:    []string{"garage", "garden"},
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusAvailable,
	}
	for _, m := range mutators {
		m(&p)
	}
	return p
}

func withPrice(v float64) func(*models.Property) {
	return func(p *models.Property) { p.Price = v }
}

func withType(t models.PropertyType) func(*models.Property) {
	return func(p *models.Property) { p.Type = t }
}

func withOperation(op models.OperationType) func(*models.Property) {
	return func(p *models.Property) { p.Operation = op }
}

func withCity(city string) func(*models.Property) {
	return func(p *models.Property) { p.City = city }
}

func withZone(zone string) func(*models.Property) {
	return func(p *models.Property) { p.Zone = zone }
}

func withBedrooms(n int) func(*models.Property) {
	return func(p *models.Property) { p.Bedrooms = n }
}

func withBathrooms(n int) func(*models.Property) {
	return func(p *models.Property) { p.Bathrooms = n }
}

func withArea(v float64) func(*models.Property) {
	return func(p *models.Property) { p.Area = v }
}

func withFeatures(features ...string) func(*models.Property) {
	return func(p *models.Property) { p.Features = features }
}

func withViews(n int64) func(*models.Property) {
	return func(p *models.Property) { p.Views = n }
}

func withCreatedAt(t time.Time) func(*models.Property) {
	return func(p *models.Property) { p.CreatedAt = t }
}

func withFeatured() func(*models.Property) {
	return func(p *models.Property) { p.Featured = true }
}

func titles(listings []models.Property) []string {
	out := make([]string, len(listings))
	for i, p := range listings {
		out[i] = p.Title
	}
	return out
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func opPtr(op models.OperationType) *models.OperationType { return &op }

func typePtr(t models.PropertyType) *models.PropertyType { return &t }

func sortKeyPtr(k models.SortKey) *models.SortKey { return &k }

func sortOrderPtr(o models.SortOrder) *models.SortOrder { return &o }
