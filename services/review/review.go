package review

import (
	"context"
	"fmt"

	"servicefinder/database/repository/review"
	"servicefinder/database/repository/service"
	"servicefinder/models"
	"servicefinder/services/notification"
	"servicefinder/utils"

	"go.uber.org/zap"
)

// reviewPageSize is the fixed number of reviews per listing page.
const reviewPageSize = 10

// DefaultReviewService is the production implementation of ReviewService.
type DefaultReviewService struct {
	Repo        reviewRepo.ReviewRepository
	ServiceRepo serviceRepo.ServiceRepository
	Notifier    notification.NotificationService
}

// Submit persists a new review, folds it into the service's rating aggregate
// and notifies the owning provider. The review write must succeed; the
// notification is best effort.
func (s *DefaultReviewService) Submit(ctx context.Context, in SubmitReviewInput) (*models.Review, error) {
	if in.Stars < 1 || in.Stars > 5 {
		return nil, fmt.Errorf("rating stars must be between 1 and 5: %w", utils.ErrInvalidInput)
	}
	svc, err := s.ServiceRepo.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", in.ServiceID, utils.ErrNotFound)
	}

	review := &models.Review{
		ServiceID:     in.ServiceID,
		UserID:        in.UserID,
		Username:      in.Username,
		RatingStars:   in.Stars,
		RatingMessage: utils.CensorProfanity(in.Message),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.applyReview(ctx, in.ServiceID, in.Stars); err != nil {
		return nil, err
	}

	if svc.ProviderID != "" {
		n := &models.Notification{
			Recipient: svc.ProviderID,
			Sender:    in.UserID,
			Message:   fmt.Sprintf("%s left a review on %s", in.Username, svc.Name),
			Type:      models.NotificationReview,
		}
		if err := s.Notifier.Notify(ctx, n); err != nil {
			utils.GetLogger().Warn("Submit: provider notification failed",
				zap.String("serviceID", in.ServiceID), zap.Error(err))
		}
	}
	return review, nil
}

// Edit overwrites stars/message of the caller's review and rebalances the
// aggregate from the ledger. Returns the prior snapshot so the caller can
// tell "found and updated" apart from "not found" without exceptions.
func (s *DefaultReviewService) Edit(ctx context.Context, reviewID, callerID string, stars int, message string) (*models.Review, error) {
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("rating stars must be between 1 and 5: %w", utils.ErrInvalidInput)
	}
	prev, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, utils.ErrNotFound)
	}
	if prev.UserID != callerID {
		return nil, fmt.Errorf("review %s is not owned by caller: %w", reviewID, utils.ErrForbidden)
	}

	if err := s.Repo.UpdateContent(ctx, reviewID, stars, utils.CensorProfanity(message)); err != nil {
		return nil, err
	}
	if err := s.recomputeAggregate(ctx, prev.ServiceID); err != nil {
		return nil, err
	}
	return prev, nil
}

// Delete removes the caller's review and rebalances the aggregate; returns
// the deleted record.
func (s *DefaultReviewService) Delete(ctx context.Context, reviewID, callerID string) (*models.Review, error) {
	prev, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, utils.ErrNotFound)
	}
	if prev.UserID != callerID {
		return nil, fmt.Errorf("review %s is not owned by caller: %w", reviewID, utils.ErrForbidden)
	}
	return s.remove(ctx, prev)
}

// Takedown is the moderation removal path; same rebalancing, no ownership
// check.
func (s *DefaultReviewService) Takedown(ctx context.Context, reviewID string) (*models.Review, error) {
	prev, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, utils.ErrNotFound)
	}
	return s.remove(ctx, prev)
}

func (s *DefaultReviewService) remove(ctx context.Context, prev *models.Review) (*models.Review, error) {
	if err := s.Repo.Delete(ctx, prev.ReviewID); err != nil {
		return nil, err
	}
	if err := s.recomputeAggregate(ctx, prev.ServiceID); err != nil {
		return nil, err
	}
	return prev, nil
}

// Respond records the owning provider's one-time response to a review.
func (s *DefaultReviewService) Respond(ctx context.Context, reviewID, providerID, text string) error {
	if text == "" {
		return fmt.Errorf("response text is required: %w", utils.ErrInvalidInput)
	}
	rv, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv == nil {
		return fmt.Errorf("review %s: %w", reviewID, utils.ErrNotFound)
	}
	svc, err := s.ServiceRepo.GetByID(ctx, rv.ServiceID)
	if err != nil {
		return err
	}
	if svc == nil || svc.ProviderID != providerID {
		return fmt.Errorf("review %s does not belong to caller's service: %w", reviewID, utils.ErrForbidden)
	}
	if rv.ResponseText != "" {
		return fmt.Errorf("review %s already has a response: %w", reviewID, utils.ErrConflict)
	}
	return s.Repo.SetResponse(ctx, reviewID, utils.CensorProfanity(text))
}

// Get returns one review.
func (s *DefaultReviewService) Get(ctx context.Context, reviewID string) (*models.Review, error) {
	rv, err := s.Repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, utils.ErrNotFound)
	}
	return rv, nil
}

// ListByService pages through a service's reviews, newest first. A store
// failure degrades to an empty page; listing reviews never hard-fails.
func (s *DefaultReviewService) ListByService(ctx context.Context, serviceID string, page int) (*models.ReviewPage, error) {
	reviews, err := s.Repo.GetByService(ctx, serviceID)
	if err != nil {
		utils.GetLogger().Error("ListByService: store read failed, degrading to empty page",
			zap.String("serviceID", serviceID), zap.Error(err))
		return &models.ReviewPage{Reviews: []models.Review{}, Page: 1, TotalPages: 1}, nil
	}

	totalPages := (len(reviews) + reviewPageSize - 1) / reviewPageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}
	start := (page - 1) * reviewPageSize
	end := start + reviewPageSize
	if end > len(reviews) {
		end = len(reviews)
	}
	items := reviews[start:end]
	if items == nil {
		items = []models.Review{}
	}
	return &models.ReviewPage{
		Reviews:    items,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}, nil
}

// ListByUser returns every review the user has written.
func (s *DefaultReviewService) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	reviews, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
