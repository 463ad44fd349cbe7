package repository

import (
	"context"

	"github.com/helixflow/helixflow-api/internal/models"
)

// VenueRepository serves the static venue reference set. Venues are created
// at startup and never mutated, so no locking is required.
type VenueRepository struct {
	venues []models.Venue
	byID   map[string]int
}

// NewVenueRepository builds a repository over the provided reference set.
func NewVenueRepository(venues []models.Venue) *VenueRepository {
	byID := make(map[string]int, len(venues))
	for i, v := range venues {
		byID[v.ID] = i
	}
	return &VenueRepository{venues: venues, byID: byID}
}

// List returns the venue reference set.
func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	out := make([]models.Venue, len(r.venues))
	copy(out, r.venues)
	return out, nil
}

// GetByID returns a single venue.
func (r *VenueRepository) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	v := r.venues[i]
	return &v, nil
}

// Exists reports whether the id refers to a known venue.
func (r *VenueRepository) Exists(ctx context.Context, id string) bool {
	_, ok := r.byID[id]
	return ok
}
