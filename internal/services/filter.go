package services

import (
	"strings"

	"github.com/jhosasa/Real-State/internal/models"
)

// ApplyFilters narrows a listing slice by every populated field of the
// filter set (logical AND across fields). It preserves input order, never
// mutates its input, and treats nil fields as "no constraint". An empty
// result is valid.
//
// Note: a max bound below its min bound is not validated; it simply yields
// an empty set. Callers are responsible for supplying well-typed values.
func ApplyFilters(listings []models.Property, f models.SearchFilters) []models.Property {
	out := make([]models.Property, 0, len(listings))
	for _, p := range listings {
		if matchesFilters(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilters(p models.Property, f models.SearchFilters) bool {
	if f.Operation != nil && p.Operation != *f.Operation {
		return false
	}
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.City != nil && !containsFold(p.City, *f.City) {
		return false
	}
	if f.Zone != nil && !containsFold(p.Zone, *f.Zone) {
		return false
	}
	if f.Query != nil && !matchesQuery(p, *f.Query, false) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && p.Bedrooms > *f.MaxBedrooms {
		return false
	}
	if f.MinBathrooms != nil && p.Bathrooms < *f.MinBathrooms {
		return false
	}
	if f.MaxBathrooms != nil && p.Bathrooms > *f.MaxBathrooms {
		return false
	}
	if f.MinArea != nil && p.Area < *f.MinArea {
		return false
	}
	if f.MaxArea != nil && p.Area > *f.MaxArea {
		return false
	}
	if len(f.Features) > 0 && !hasAnyFeature(p, f.Features) {
		return false
	}
	return true
}

// matchesQuery implements the case-insensitive substring-OR policy over
// title, description, address, city and zone. The full-text variant
// (includeFeatures) additionally matches feature tags.
func matchesQuery(p models.Property, query string, includeFeatures bool) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Address), q) ||
		strings.Contains(strings.ToLower(p.City), q) ||
		strings.Contains(strings.ToLower(p.Zone), q) {
		return true
	}
	if includeFeatures {
		for _, feature := range p.Features {
			if strings.Contains(strings.ToLower(feature), q) {
				return true
			}
		}
	}
	return false
}

// hasAnyFeature implements match-any semantics: the listing passes if its
// feature set intersects the requested set at all. Feature tags are exact
// strings, unlike the folded text fields.
func hasAnyFeature(p models.Property, wanted []string) bool {
	for _, w := range wanted {
		for _, have := range p.Features {
			if have == w {
				return true
			}
		}
	}
	return false
}

// containsFold reports whether needle occurs in haystack ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
