package store

import (
	"fmt"
	"sync"

	"github.com/jhosasa/Real-State/internal/models"
	"github.com/jhosasa/Real-State/internal/utils"
)

// PropertyStore is the in-memory listing collection. It is constructed once
// at process start from seed data and shared by reference with the services;
// there is no ambient global.
//
// The only mutation paths after seeding are the view-count increment and
// external status changes. Both run under the write lock so the "+1 per
// read, no lost updates" invariant holds under real parallelism.
type PropertyStore struct {
	mu    sync.RWMutex
	order []utils.SixID
	byID  map[utils.SixID]*models.Property
}

// NewPropertyStore builds a store from seed listings, enforcing ID
// uniqueness and the non-negative price/views invariants.
func NewPropertyStore(seed []models.Property) (*PropertyStore, error) {
	s := &PropertyStore{
		order: make([]utils.SixID, 0, len(seed)),
		byID:  make(map[utils.SixID]*models.Property, len(seed)),
	}
	for i := range seed {
		p := seed[i]
		if p.ID.IsZero() {
			return nil, fmt.Errorf("seed listing %d (%q) has no ID", i, p.Title)
		}
		if _, exists := s.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate listing ID %s in seed data", p.ID.String())
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("listing %s has negative price %.2f", p.ID.String(), p.Price)
		}
		if p.Views < 0 {
			return nil, fmt.Errorf("listing %s has negative view count %d", p.ID.String(), p.Views)
		}
		cp := cloneProperty(p)
		s.order = append(s.order, p.ID)
		s.byID[p.ID] = &cp
	}
	return s, nil
}

// Len returns the number of listings in the store.
func (s *PropertyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns value copies of all listings in stable store order.
// Callers can filter, sort and mutate the result freely.
func (s *PropertyStore) Snapshot() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneProperty(*s.byID[id]))
	}
	return out
}

// Get returns a copy of the listing with the given ID. The second return
// value reports whether it exists; an unknown ID is not an error.
func (s *PropertyStore) Get(id utils.SixID) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return models.Property{}, false
	}
	return cloneProperty(*p), true
}

// IncrementViews adds exactly 1 to the listing's view counter and returns
// the updated copy. Returns false if the ID is unknown.
func (s *PropertyStore) IncrementViews(id utils.SixID) (models.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return models.Property{}, false
	}
	p.Views++
	return cloneProperty(*p), true
}

// SetStatus applies an external status change (sold, rented, pending) and
// returns the updated copy. Returns false if the ID is unknown.
func (s *PropertyStore) SetStatus(id utils.SixID, status models.PropertyStatus) (models.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return models.Property{}, false
	}
	p.Status = status
	return cloneProperty(*p), true
}

// ViewCounts returns the current view counter of every listing, keyed by
// the listing's string ID. Used by the periodic views snapshot task.
func (s *PropertyStore) ViewCounts() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.order))
	for id, p := range s.byID {
		out[id.String()] = p.Views
	}
	return out
}

// cloneProperty copies a listing including its slice fields so no caller
// ever holds a reference into the store's own data.
func cloneProperty(p models.Property) models.Property {
	cp := p
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}
	if p.Features != nil {
		cp.Features = append([]string(nil), p.Features...)
	}
	return cp
}
