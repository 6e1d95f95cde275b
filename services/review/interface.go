package review

import (
	"context"

	"servicefinder/models"
)

// SubmitReviewInput carries a new review submission.
type SubmitReviewInput struct {
	ServiceID string
	UserID    string
	Username  string
	Stars     int
	Message   string
}

// ReviewService is the review ledger plus the rating aggregate that hangs off
// it. Side effects (aggregate update, provider notification) are sequenced
// here so their ordering stays explicit and testable.
type ReviewService interface {
	Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error)
	// Edit overwrites stars/message and returns the prior snapshot.
	Edit(ctx context.Context, reviewID, callerID string, stars int, message string) (*models.Review, error)
	// Delete removes the caller's review and returns the deleted record.
	Delete(ctx context.Context, reviewID, callerID string) (*models.Review, error)
	// Takedown is the moderation path: no ownership check, same rebalancing.
	Takedown(ctx context.Context, reviewID string) (*models.Review, error)
	// Respond records the owning provider's one-time response.
	Respond(ctx context.Context, reviewID, providerID, text string) error

	Get(ctx context.Context, reviewID string) (*models.Review, error)
	ListByService(ctx context.Context, serviceID string, page int) (*models.ReviewPage, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
}
