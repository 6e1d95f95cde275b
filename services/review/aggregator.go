package review

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/database/repository/service"
	"servicefinder/utils"
)

// aggregateRetries bounds how often a guarded aggregate update is retried
// when concurrent submissions race on the same service.
const aggregateRetries = 5

// applyReview folds one new review into the service's running aggregate with
// the incremental formula, avoiding a ledger rescan per submission. The write
// is guarded on the count that was read; a mismatch means another submission
// got in between, so re-read and retry.
func (s *DefaultReviewService) applyReview(ctx context.Context, serviceID string, stars int) error {
	for attempt := 0; attempt < aggregateRetries; attempt++ {
		svc, err := s.ServiceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return fmt.Errorf("service %s: %w", serviceID, utils.ErrNotFound)
		}

		oldCount := svc.RatingCount
		oldAvg := 0.0
		// A first-ever review transitions the never-rated sentinel to a
		// numeric aggregate with count 1.
		if svc.Rating != nil && oldCount > 0 {
			oldAvg = *svc.Rating
		}
		newCount := oldCount + 1
		newAvg := (oldAvg*float64(oldCount) + float64(stars)) / float64(newCount)

		err = s.ServiceRepo.UpdateRatingGuarded(ctx, serviceID, oldCount, newAvg, newCount)
		if err == nil {
			return nil
		}
		if !errors.Is(err, serviceRepo.ErrPreconditionFailed) {
			return err
		}
	}
	return fmt.Errorf("rating aggregate for service %s kept changing underneath us", serviceID)
}

// recomputeAggregate rebuilds the aggregate exactly from the ledger. Used on
// edit and delete, where reversing the prior contribution incrementally would
// need history; these paths are rare enough to afford the rescan.
func (s *DefaultReviewService) recomputeAggregate(ctx context.Context, serviceID string) error {
	reviews, err := s.Repo.GetByService(ctx, serviceID)
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		return s.ServiceRepo.SetRatingExact(ctx, serviceID, nil, 0)
	}
	sum := 0
	for _, r := range reviews {
		sum += r.RatingStars
	}
	avg := float64(sum) / float64(len(reviews))
	return s.ServiceRepo.SetRatingExact(ctx, serviceID, &avg, len(reviews))
}
