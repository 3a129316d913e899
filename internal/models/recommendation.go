package models

import "github.com/jhosasa/Real-State/internal/utils"

// RecommendationType tags which strategy produced a recommendation.
type RecommendationType string

const (
	RecommendationContent       RecommendationType = "content"
	RecommendationCollaborative RecommendationType = "collaborative"
	RecommendationTrending      RecommendationType = "trending"
)

// Recommendation is a scored, reasoned suggestion linking to a property.
// It is derived per request and never persisted.
type Recommendation struct {
	PropertyID utils.SixID        `json:"property_id"`
	Score      float64            `json:"score"`
	Reason     string             `json:"reason"`
	Type       RecommendationType `json:"type"`
}

// UserContext carries the per-user signals the recommendation engine blends:
// the favorites set (excluded from collaborative picks) and the preferred
// price band. Nil bounds mean unbounded on that side.
type UserContext struct {
	Favorites map[utils.SixID]struct{}
	MinPrice  *float64
	MaxPrice  *float64
}

// HasFavorite reports whether the given property is in the user's favorites.
func (uc UserContext) HasFavorite(id utils.SixID) bool {
	_, ok := uc.Favorites[id]
	return ok
}
