package services

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

const (
	// MaxRecommendations caps the blended output length.
	MaxRecommendations = 6

	// similarPriceBand is the relative price window for content-based
	// candidates: |price - subject.Price| < subject.Price * 0.3.
	similarPriceBand = 0.3

	// collaborativeSlice is how many store-order candidates the
	// collaborative strategy emits.
	collaborativeSlice = 3

	// trendingSlice is how many top-viewed listings the trending strategy
	// emits.
	trendingSlice = 2
)

// IRecommendationService blends the three recommendation strategies over a
// listing snapshot.
type IRecommendationService interface {
	Recommend(listings []models.Property, subjectID *utils.SixID, userCtx models.UserContext) []models.Recommendation
}

// recommendationService implements IRecommendationService. The random
// source is injected so scores are reproducible under a seeded generator.
type recommendationService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendationService creates a recommendation service around the given
// random source. Pass a seeded rand.New(rand.NewSource(...)) for
// deterministic output.
func NewRecommendationService(rng *rand.Rand) IRecommendationService {
	return &recommendationService{rng: rng}
}

// jitter returns a uniform random value in [0, span). rand.Rand is not safe
// for concurrent use, hence the mutex.
func (s *recommendationService) jitter(span float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() * span
}

// Recommend runs the content-based, collaborative and trending strategies in
// that order, de-duplicates by property ID (first occurrence wins), sorts by
// score descending and truncates to MaxRecommendations. A nil or unresolvable
// subject degrades gracefully to collaborative + trending only.
func (s *recommendationService) Recommend(listings []models.Property, subjectID *utils.SixID, userCtx models.UserContext) []models.Recommendation {
	recs := make([]models.Recommendation, 0, MaxRecommendations)
	seen := make(map[utils.SixID]struct{})

	add := func(r models.Recommendation) bool {
		if _, dup := seen[r.PropertyID]; dup {
			return false
		}
		seen[r.PropertyID] = struct{}{}
		recs = append(recs, r)
		return true
	}

	// Content-based: attribute similarity to the subject listing.
	if subjectID != nil {
		if subject, ok := findByID(listings, *subjectID); ok {
			for _, p := range listings {
				if p.ID == subject.ID {
					continue
				}
				if p.Type != subject.Type || p.City != subject.City {
					continue
				}
				if math.Abs(p.Price-subject.Price) >= subject.Price*similarPriceBand {
					continue
				}
				add(models.Recommendation{
					PropertyID: p.ID,
					Score:      0.8 + s.jitter(0.2),
					Reason:     "Similar to " + subject.Title,
					Type:       models.RecommendationContent,
				})
			}
		}
	}

	// Collaborative-ish: price-preference overlap, excluding favorites.
	// First collaborativeSlice store-order candidates not already produced.
	emitted := 0
	for _, p := range listings {
		if emitted >= collaborativeSlice {
			break
		}
		if userCtx.HasFavorite(p.ID) {
			continue
		}
		if userCtx.MinPrice != nil && p.Price < *userCtx.MinPrice {
			continue
		}
		if userCtx.MaxPrice != nil && p.Price > *userCtx.MaxPrice {
			continue
		}
		if add(models.Recommendation{
			PropertyID: p.ID,
			Score:      0.7 + s.jitter(0.3),
			Reason:     "Based on users with similar preferences",
			Type:       models.RecommendationCollaborative,
		}) {
			emitted++
		}
	}

	// Trending: top trendingSlice by views, ties broken by store order.
	trending := append([]models.Property(nil), listings...)
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].Views > trending[j].Views
	})
	if len(trending) > trendingSlice {
		trending = trending[:trendingSlice]
	}
	for _, p := range trending {
		add(models.Recommendation{
			PropertyID: p.ID,
			Score:      0.6 + s.jitter(0.2),
			Reason:     "Trending property",
			Type:       models.RecommendationTrending,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func findByID(listings []models.Property, id utils.SixID) (models.Property, bool) {
	for _, p := range listings {
		if p.ID == id {
			return p, true
		}
	}
	return models.Property{}, false
}
