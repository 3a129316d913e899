package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhosasa/Real-State/internal/config"
	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/store"
	"github.com/jhosasa/Real-State/internal/utils"
)

// ErrPropertyNotFound is returned when a lookup by ID has no match. It is a
// result, not a fault: handlers map it to 404.
var ErrPropertyNotFound = errors.New("property not found")

// IPropertyService is the query facade over the listing store: it wires the
// filter and sort engines together, owns the simulated upstream latency and
// the view-count side effect, and exposes the recommendation entry point.
type IPropertyService interface {
	GetAllProperties(ctx context.Context) ([]models.Property, error)
	GetProperties(ctx context.Context, filters models.SearchFilters) ([]models.Property, error)
	GetPropertyByID(ctx context.Context, id utils.SixID) (*models.Property, error)
	GetFeaturedProperties(ctx context.Context) ([]models.Property, error)
	SearchProperties(ctx context.Context, query string) ([]models.Property, error)
	GetRecommendations(ctx context.Context, userCtx models.UserContext, subjectID *utils.SixID) ([]models.Recommendation, error)
	SetPropertyStatus(ctx context.Context, id utils.SixID, status models.PropertyStatus) (*models.Property, error)
}

// propertyService implements IPropertyService.
type propertyService struct {
	store       *store.PropertyStore
	cfg         *config.Config
	recommender IRecommendationService
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(st *store.PropertyStore, cfg *config.Config, recommender IRecommendationService) IPropertyService {
	return &propertyService{store: st, cfg: cfg, recommender: recommender}
}

// simulateLatency suspends the caller for the configured duration, standing
// in for network I/O. Context cancellation is the caller's failure signal;
// there is exactly one attempt and no partial results.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("upstream request aborted: %w", err)
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("upstream request aborted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// GetAllProperties returns the full store snapshot in store order.
func (s *propertyService) GetAllProperties(ctx context.Context) ([]models.Property, error) {
	if err := simulateLatency(ctx, s.cfg.GetAllDelay); err != nil {
		return nil, err
	}
	return s.store.Snapshot(), nil
}

// GetProperties runs the filter engine and then the sort engine over the
// current store snapshot.
func (s *propertyService) GetProperties(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	if err := simulateLatency(ctx, s.cfg.SearchDelay); err != nil {
		return nil, err
	}
	filtered := ApplyFilters(s.store.Snapshot(), filters)
	return SortProperties(filtered, filters.SortBy, filters.SortOrder), nil
}

// GetPropertyByID fetches one listing and increments its view counter by
// exactly 1 before returning; this feeds the trending strategy on later
// calls. An unknown ID yields ErrPropertyNotFound.
func (s *propertyService) GetPropertyByID(ctx context.Context, id utils.SixID) (*models.Property, error) {
	if err := simulateLatency(ctx, s.cfg.GetByIDDelay); err != nil {
		return nil, err
	}
	p, ok := s.store.IncrementViews(id)
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return &p, nil
}

// GetFeaturedProperties returns featured listings in store order, unranked.
func (s *propertyService) GetFeaturedProperties(ctx context.Context) ([]models.Property, error) {
	if err := simulateLatency(ctx, s.cfg.FeaturedDelay); err != nil {
		return nil, err
	}
	snapshot := s.store.Snapshot()
	featured := make([]models.Property, 0, len(snapshot))
	for _, p := range snapshot {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// SearchProperties is the free-text search: the same substring-OR policy as
// the query filter field, extended to feature tags.
func (s *propertyService) SearchProperties(ctx context.Context, query string) ([]models.Property, error) {
	if err := simulateLatency(ctx, s.cfg.TextSearchDelay); err != nil {
		return nil, err
	}
	snapshot := s.store.Snapshot()
	matched := make([]models.Property, 0, len(snapshot))
	for _, p := range snapshot {
		if matchesQuery(p, query, true) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetRecommendations runs the recommendation engine over the current store
// snapshot with the caller-supplied user context.
func (s *propertyService) GetRecommendations(ctx context.Context, userCtx models.UserContext, subjectID *utils.SixID) ([]models.Recommendation, error) {
	if err := simulateLatency(ctx, s.cfg.RecommendDelay); err != nil {
		return nil, err
	}
	return s.recommender.Recommend(s.store.Snapshot(), subjectID, userCtx), nil
}

// SetPropertyStatus applies an external market event (sold, rented, back to
// available) to a listing. This is the admin write path; it does not go
// through the simulated upstream.
func (s *propertyService) SetPropertyStatus(ctx context.Context, id utils.SixID, status models.PropertyStatus) (*models.Property, error) {
	p, ok := s.store.SetStatus(id, status)
	if !ok {
		return nil, ErrPropertyNotFound
	}
	return &p, nil
}
