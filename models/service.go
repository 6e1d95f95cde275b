package models

import "time"

// Service categories as stored in the services collection.
const (
	CategoryFood     = "FOOD"
	CategoryShelter  = "SHELTER"
	CategoryMental   = "MENTAL"
	CategoryRestroom = "RESTROOM"
)

// Service status lifecycle. Bulk-ingested legacy listings carry no status at
// all and are treated as approved.
const (
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
	StatusEditRequested   = "EDIT_REQUESTED"
)

// Service is a public service listing (food pantry, shelter, mental health
// center, restroom). Coordinates and the aggregate rating are pointers: nil
// means "not set" for coordinates and "no ratings yet" for Rating.
type Service struct {
	ID          string         `bson:"id" json:"id"`
	Name        string         `bson:"name" json:"name"`
	Address     string         `bson:"address" json:"address"`
	Lat         *float64       `bson:"lat,omitempty" json:"lat,omitempty"`
	Lon         *float64       `bson:"lon,omitempty" json:"lon,omitempty"`
	Category    string         `bson:"category" json:"category"`
	Rating      *float64       `bson:"rating,omitempty" json:"rating,omitempty"`
	RatingCount int            `bson:"rating_count" json:"ratingCount"`
	Description map[string]any `bson:"description,omitempty" json:"description,omitempty"`
	ProviderID  string         `bson:"provider_id,omitempty" json:"providerId,omitempty"`
	Status      string         `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt   time.Time      `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time      `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// HasLocation reports whether the listing carries usable coordinates.
func (s *Service) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// ValidCategory reports whether c is one of the known service categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFood, CategoryShelter, CategoryMental, CategoryRestroom:
		return true
	}
	return false
}

// ValidServiceStatus reports whether s is a known lifecycle status.
func ValidServiceStatus(s string) bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected, StatusEditRequested:
		return true
	}
	return false
}
