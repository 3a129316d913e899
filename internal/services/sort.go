package services

import (
	"sort"

	"github.com/jhosasa/Real-State/internal/models"
)

// SortProperties orders a listing slice by the given key and direction and
// returns a new slice; the input is left untouched. Equal keys keep their
// relative input order in both directions (stable sort). A nil sortBy
// returns the input order unchanged.
func SortProperties(listings []models.Property, sortBy *models.SortKey, sortOrder *models.SortOrder) []models.Property {
	out := append([]models.Property(nil), listings...)
	if sortBy == nil {
		return out
	}

	key := sortKeyFunc(*sortBy)
	desc := sortOrder != nil && *sortOrder == models.SortDesc

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

// sortKeyFunc maps a sort key to its numeric extractor. Relevance (and any
// unknown key) falls back to the view count.
func sortKeyFunc(by models.SortKey) func(models.Property) float64 {
	switch by {
	case models.SortByPrice:
		return func(p models.Property) float64 { return p.Price }
	case models.SortByDate:
		return func(p models.Property) float64 { return float64(p.CreatedAt.UnixMilli()) }
	case models.SortByArea:
		return func(p models.Property) float64 { return p.Area }
	default:
		return func(p models.Property) float64 { return float64(p.Views) }
	}
}
