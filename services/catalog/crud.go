package catalog

import (
	"context"
	"fmt"

	"servicefinder/models"
	"servicefinder/utils"
)

// Details returns a single listing joined with its reviews. A review fetch
// failure degrades to an empty list; the listing itself must resolve.
func (s *DefaultCatalogService) Details(ctx context.Context, serviceID string) (*ServiceDetails, error) {
	svc, err := s.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, utils.ErrNotFound)
	}

	reviews, err := s.ReviewRepo.GetByService(ctx, serviceID)
	if err != nil {
		reviews = nil
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return &ServiceDetails{Service: *svc, Reviews: reviews}, nil
}

// ListByProvider returns a provider's own listings regardless of status.
func (s *DefaultCatalogService) ListByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	services, err := s.Repo.GetByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	// Records that somehow lost their id are unusable downstream; drop them.
	valid := services[:0]
	for _, svc := range services {
		if svc.ID != "" {
			valid = append(valid, svc)
		}
	}
	return valid, nil
}

// Create registers a provider-owned listing, pending admin approval.
func (s *DefaultCatalogService) Create(ctx context.Context, providerID string, svc *models.Service) (*models.Service, error) {
	if err := validateListing(svc); err != nil {
		return nil, err
	}
	svc.ProviderID = providerID
	svc.Status = models.StatusPendingApproval
	svc.Rating = nil
	svc.RatingCount = 0
	sanitizeCoords(svc)

	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Update edits an owned listing. The aggregate rating is preserved and the
// edit drops the listing back to pending approval.
func (s *DefaultCatalogService) Update(ctx context.Context, providerID string, svc *models.Service) (*models.Service, error) {
	if err := validateListing(svc); err != nil {
		return nil, err
	}
	current, err := s.Repo.GetByID(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("service %s: %w", svc.ID, utils.ErrNotFound)
	}
	if current.ProviderID == "" || current.ProviderID != providerID {
		return nil, fmt.Errorf("service %s is not owned by caller: %w", svc.ID, utils.ErrForbidden)
	}

	svc.ProviderID = current.ProviderID
	svc.Rating = current.Rating
	svc.RatingCount = current.RatingCount
	svc.CreatedAt = current.CreatedAt
	svc.Status = models.StatusPendingApproval
	sanitizeCoords(svc)

	if err := s.Repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a listing; only the owning provider may do so.
func (s *DefaultCatalogService) Delete(ctx context.Context, providerID, serviceID string) error {
	current, err := s.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("service %s: %w", serviceID, utils.ErrNotFound)
	}
	if current.ProviderID == "" || current.ProviderID != providerID {
		return fmt.Errorf("service %s is not owned by caller: %w", serviceID, utils.ErrForbidden)
	}
	return s.Repo.Delete(ctx, serviceID)
}

// SetStatus applies an admin lifecycle transition.
func (s *DefaultCatalogService) SetStatus(ctx context.Context, serviceID, status string) error {
	if !models.ValidServiceStatus(status) {
		return fmt.Errorf("unknown service status %q: %w", status, utils.ErrInvalidInput)
	}
	current, err := s.Repo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("service %s: %w", serviceID, utils.ErrNotFound)
	}
	return s.Repo.SetStatus(ctx, serviceID, status)
}

func validateListing(svc *models.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("service name is required: %w", utils.ErrInvalidInput)
	}
	if svc.Address == "" {
		return fmt.Errorf("service address is required: %w", utils.ErrInvalidInput)
	}
	if !models.ValidCategory(svc.Category) {
		return fmt.Errorf("unknown category %q: %w", svc.Category, utils.ErrInvalidInput)
	}
	return nil
}

func sanitizeCoords(svc *models.Service) {
	if svc.Lat != nil {
		svc.Lat = utils.SanitizeFloat(*svc.Lat)
	}
	if svc.Lon != nil {
		svc.Lon = utils.SanitizeFloat(*svc.Lon)
	}
	// A half-set coordinate pair is as useless as none.
	if svc.Lat == nil || svc.Lon == nil {
		svc.Lat, svc.Lon = nil, nil
	}
}
