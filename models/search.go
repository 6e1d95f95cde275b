package models

// Sort orders supported by the public search endpoint.
const (
	SortByDistance = "distance"
	SortByRating   = "rating"
)

// SearchQuery captures the filters of a catalog search request. Radius, Lat
// and Lon must all be present for the geo filter to apply.
type SearchQuery struct {
	Query    string
	Category string
	RadiusKm *float64
	Lat      *float64
	Lon      *float64
	SortBy   string
	Page     int
}

// SearchResult is a service listing decorated for display: Distance is set
// only when the search carried a geo filter, MapLink is derived from the
// address.
type SearchResult struct {
	Service  `bson:",inline"`
	Distance *float64 `json:"distance,omitempty"`
	MapLink  string   `json:"mapLink"`
}

// SearchPage is one page of ranked search results.
type SearchPage struct {
	Items      []SearchResult `json:"items"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	HasNext    bool           `json:"hasNext"`
	HasPrev    bool           `json:"hasPrev"`
}
