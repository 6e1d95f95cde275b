package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"

	"servicefinder/database/repository/review"
	"servicefinder/database/repository/service"
	"servicefinder/models"
	"servicefinder/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PageSize is the fixed number of results per search page.
const PageSize = 10

// DefaultCatalogService is the production implementation of CatalogService.
// CacheClient may be nil, which disables search caching.
type DefaultCatalogService struct {
	Repo        serviceRepo.ServiceRepository
	ReviewRepo  reviewRepo.ReviewRepository
	CacheClient *redis.Client
}

// Search runs the public discovery path: store scan with optional name and
// category filters, optional radius cutoff, ranking and fixed-size
// pagination. Store failures degrade to an empty page; discovery never hard
// fails the caller.
func (s *DefaultCatalogService) Search(ctx context.Context, q models.SearchQuery) (*models.SearchPage, error) {
	logger := utils.GetLogger()

	if cached := s.cachedPage(ctx, q); cached != nil {
		return cached, nil
	}

	items, err := s.Repo.Scan(ctx, q.Query, q.Category)
	if err != nil {
		logger.Error("Search: store scan failed, degrading to empty page", zap.Error(err))
		return emptyPage(), nil
	}

	results := decorate(items)
	if geoActive(q) {
		results = applyRadius(results, *q.Lat, *q.Lon, *q.RadiusKm)
	}
	rank(results, q.SortBy)

	page := paginate(results, q.Page)
	s.storePage(ctx, q, page)
	return page, nil
}

// geoActive reports whether the query carries a complete geo filter.
func geoActive(q models.SearchQuery) bool {
	return q.RadiusKm != nil && q.Lat != nil && q.Lon != nil
}

// decorate converts raw listings into display results, sanitizing numerics
// and deriving the map link from the address.
func decorate(items []models.Service) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		if item.Lat != nil {
			item.Lat = utils.SanitizeFloat(*item.Lat)
		}
		if item.Lon != nil {
			item.Lon = utils.SanitizeFloat(*item.Lon)
		}
		if item.Rating != nil {
			item.Rating = utils.SanitizeFloat(*item.Rating)
		}
		results = append(results, models.SearchResult{
			Service: item,
			MapLink: "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(item.Address),
		})
	}
	return results
}

// applyRadius keeps only results within radiusKm of the origin and attaches
// their distance. Listings without coordinates are excluded whenever a radius
// filter is active.
func applyRadius(results []models.SearchResult, lat, lon, radiusKm float64) []models.SearchResult {
	filtered := results[:0]
	for _, res := range results {
		if !res.HasLocation() {
			continue
		}
		d := Haversine(lat, lon, *res.Lat, *res.Lon)
		if d <= radiusKm {
			res.Distance = &d
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// rank orders results by the requested sort: distance ascending (missing
// distances last) or rating descending (never-rated last). Any other value
// leaves the store ordering untouched.
func rank(results []models.SearchResult, sortBy string) {
	switch sortBy {
	case models.SortByDistance:
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := results[i].Distance, results[j].Distance
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	case models.SortByRating:
		sort.SliceStable(results, func(i, j int) bool {
			ri, rj := results[i].Rating, results[j].Rating
			if ri == nil {
				return false
			}
			if rj == nil {
				return true
			}
			return *ri > *rj
		})
	}
}

// paginate slices a fixed-size page out of the ranked results. Out-of-range
// page numbers clamp to page 1 rather than erroring.
func paginate(results []models.SearchResult, page int) *models.SearchPage {
	totalPages := (len(results) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(results) {
		start = len(results)
	}
	if end > len(results) {
		end = len(results)
	}

	items := results[start:end]
	if items == nil {
		items = []models.SearchResult{}
	}
	return &models.SearchPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func emptyPage() *models.SearchPage {
	return &models.SearchPage{
		Items:      []models.SearchResult{},
		Page:       1,
		TotalPages: 1,
	}
}

// cacheKey derives a stable key from the full query shape.
func cacheKey(q models.SearchQuery) string {
	raw, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("search:%x", raw)
}

func (s *DefaultCatalogService) cachedPage(ctx context.Context, q models.SearchQuery) *models.SearchPage {
	if s.CacheClient == nil {
		return nil
	}
	key := cacheKey(q)
	if key == "" {
		return nil
	}
	cached, err := s.CacheClient.Get(ctx, key).Result()
	if err != nil || cached == "" {
		return nil
	}
	var page models.SearchPage
	if err := json.Unmarshal([]byte(cached), &page); err != nil {
		return nil
	}
	return &page
}

func (s *DefaultCatalogService) storePage(ctx context.Context, q models.SearchQuery, page *models.SearchPage) {
	if s.CacheClient == nil {
		return
	}
	key := cacheKey(q)
	if key == "" {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	// Cache failures are invisible to the caller; the next search recomputes.
	if err := s.CacheClient.Set(ctx, key, raw, utils.SearchCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("Search: cache write failed", zap.Error(err))
	}
}
