package moderation

import (
	"context"
	"errors"

	"servicefinder/database/repository/service"
	"servicefinder/models"
)

// modReviewRepo is the minimal review ledger the takedown path needs.
type modReviewRepo struct {
	byID  map[string]*models.Review
	order []string
}

func (r *modReviewRepo) Create(_ context.Context, rv *models.Review) error {
	cp := *rv
	r.byID[rv.ReviewID] = &cp
	r.order = append(r.order, rv.ReviewID)
	return nil
}

func (r *modReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rv
	return &cp, nil
}

func (r *modReviewRepo) UpdateContent(_ context.Context, id string, stars int, msg string) error {
	rv, ok := r.byID[id]
	if !ok {
		return errors.New("review not found")
	}
	rv.RatingStars = stars
	rv.RatingMessage = msg
	return nil
}

func (r *modReviewRepo) SetResponse(_ context.Context, id, text string) error {
	rv, ok := r.byID[id]
	if !ok {
		return errors.New("review not found")
	}
	rv.ResponseText = text
	return nil
}

func (r *modReviewRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *modReviewRepo) GetByService(_ context.Context, serviceID string) ([]models.Review, error) {
	var out []models.Review
	for i := len(r.order) - 1; i >= 0; i-- {
		if rv, ok := r.byID[r.order[i]]; ok && rv.ServiceID == serviceID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *modReviewRepo) GetByUser(_ context.Context, userID string) ([]models.Review, error) {
	var out []models.Review
	for _, id := range r.order {
		if rv, ok := r.byID[id]; ok && rv.UserID == userID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

// modServiceRepo carries just enough listing state for aggregate rebalancing.
type modServiceRepo struct {
	byID map[string]*models.Service
}

func (r *modServiceRepo) Create(_ context.Context, svc *models.Service) error {
	cp := *svc
	r.byID[svc.ID] = &cp
	return nil
}

func (r *modServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

func (r *modServiceRepo) Update(_ context.Context, svc *models.Service) error {
	cp := *svc
	r.byID[svc.ID] = &cp
	return nil
}

func (r *modServiceRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *modServiceRepo) Scan(_ context.Context, _, _ string) ([]models.Service, error) {
	return nil, nil
}

func (r *modServiceRepo) GetByProvider(_ context.Context, _ string) ([]models.Service, error) {
	return nil, nil
}

func (r *modServiceRepo) GetByIDs(_ context.Context, _ []string) ([]models.Service, error) {
	return nil, nil
}

func (r *modServiceRepo) SetStatus(_ context.Context, id, status string) error {
	if svc, ok := r.byID[id]; ok {
		svc.Status = status
	}
	return nil
}

func (r *modServiceRepo) UpdateRatingGuarded(_ context.Context, id string, expectedCount int, newRating float64, newCount int) error {
	svc, ok := r.byID[id]
	if !ok {
		return errors.New("service not found")
	}
	if svc.RatingCount != expectedCount {
		return serviceRepo.ErrPreconditionFailed
	}
	svc.Rating = &newRating
	svc.RatingCount = newCount
	return nil
}

func (r *modServiceRepo) SetRatingExact(_ context.Context, id string, rating *float64, count int) error {
	svc, ok := r.byID[id]
	if !ok {
		return errors.New("service not found")
	}
	svc.Rating = rating
	svc.RatingCount = count
	return nil
}
