package reviewRepo

import (
	"context"

	"servicefinder/models"
)

// ReviewRepository is the store contract for the review ledger. The ledger
// is append-mostly: edits overwrite stars/message in place, deletes return
// the removed record so callers can rebalance aggregates.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	// UpdateContent overwrites stars and message, preserving identity fields.
	UpdateContent(ctx context.Context, reviewID string, stars int, message string) error
	SetResponse(ctx context.Context, reviewID, responseText string) error
	Delete(ctx context.Context, reviewID string) error
	// GetByService returns a service's reviews, newest first.
	GetByService(ctx context.Context, serviceID string) ([]models.Review, error)
	GetByUser(ctx context.Context, userID string) ([]models.Review, error)
}
