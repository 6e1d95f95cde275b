package serviceRepo

import (
	"context"

	"servicefinder/models"
)

// ServiceRepository is the store contract for service listings. Absent
// documents come back as (nil, nil); the service layer decides whether that
// is a NotFound.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id string) error

	// Scan runs the filtered full-collection scan behind the public search
	// path. Either filter may be empty.
	Scan(ctx context.Context, nameContains, categoryContains string) ([]models.Service, error)
	GetByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	// GetByIDs resolves a batch of ids; missing ids are silently dropped.
	GetByIDs(ctx context.Context, ids []string) ([]models.Service, error)

	SetStatus(ctx context.Context, id, status string) error
	// UpdateRatingGuarded writes a new aggregate only if the stored count
	// still equals expectedCount; returns ErrPreconditionFailed otherwise.
	UpdateRatingGuarded(ctx context.Context, id string, expectedCount int, newRating float64, newCount int) error
	// SetRatingExact overwrites the aggregate unconditionally (full-recompute
	// paths). A nil rating clears it back to the never-rated sentinel.
	SetRatingExact(ctx context.Context, id string, rating *float64, count int) error
}
