package catalog

import (
	"context"

	"servicefinder/models"
)

// CatalogService defines discovery and listing management for services.
type CatalogService interface {
	// Search filters, ranks and paginates the public directory.
	Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error)
	// Details returns a single listing joined with its reviews.
	Details(ctx context.Context, serviceID string) (*ServiceDetails, error)

	// Provider self-service management.
	ListByProvider(ctx context.Context, providerID string) ([]models.Service, error)
	Create(ctx context.Context, providerID string, svc *models.Service) (*models.Service, error)
	Update(ctx context.Context, providerID string, svc *models.Service) (*models.Service, error)
	Delete(ctx context.Context, providerID, serviceID string) error

	// Admin lifecycle transition.
	SetStatus(ctx context.Context, serviceID, status string) error
}

// ServiceDetails is a listing joined with its review history.
type ServiceDetails struct {
	Service models.Service  `json:"service"`
	Reviews []models.Review `json:"reviews"`
}
