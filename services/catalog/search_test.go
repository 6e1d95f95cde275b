package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"servicefinder/database/repository/service"
	"servicefinder/models"
	"servicefinder/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServiceRepo is an in-memory ServiceRepository for service-level tests.
type fakeServiceRepo struct {
	services map[string]*models.Service
	order    []string
	scanErr  error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[string]*models.Service{}}
}

func (f *fakeServiceRepo) put(svc models.Service) {
	if _, ok := f.services[svc.ID]; !ok {
		f.order = append(f.order, svc.ID)
	}
	cp := svc
	f.services[svc.ID] = &cp
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = fmt.Sprintf("svc-%d", len(f.services)+1)
	}
	f.put(*svc)
	return nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	cp := *svc
	return &cp, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *models.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return errors.New("service not found")
	}
	f.put(*svc)
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, id string) error {
	delete(f.services, id)
	return nil
}

func (f *fakeServiceRepo) Scan(_ context.Context, nameContains, categoryContains string) ([]models.Service, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	var out []models.Service
	for _, id := range f.order {
		svc, ok := f.services[id]
		if !ok {
			continue
		}
		if nameContains != "" && !strings.Contains(strings.ToLower(svc.Name), strings.ToLower(nameContains)) {
			continue
		}
		if categoryContains != "" && !strings.Contains(strings.ToLower(svc.Category), strings.ToLower(categoryContains)) {
			continue
		}
		out = append(out, *svc)
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByProvider(_ context.Context, providerID string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range f.order {
		if svc, ok := f.services[id]; ok && svc.ProviderID == providerID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) SetStatus(_ context.Context, id, status string) error {
	svc, ok := f.services[id]
	if !ok {
		return errors.New("service not found")
	}
	svc.Status = status
	return nil
}

func (f *fakeServiceRepo) UpdateRatingGuarded(_ context.Context, id string, expectedCount int, newRating float64, newCount int) error {
	svc, ok := f.services[id]
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

func (f *fakeServiceRepo) SetRatingExact(_ context.Context, id string, rating *float64, count int) error {
	svc, ok := f.services[id]
	if !ok {
		return errors.New("service not found")
	}
	svc.Rating = rating
	svc.RatingCount = count
	return nil
}

// fakeReviewRepo serves only the Details join in this package.
type fakeReviewRepo struct {
	byService map[string][]models.Review
	err       error
}

func (f *fakeReviewRepo) Create(_ context.Context, r *models.Review) error { return nil }
func (f *fakeReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	return nil, nil
}
func (f *fakeReviewRepo) UpdateContent(_ context.Context, id string, stars int, msg string) error {
	return nil
}
func (f *fakeReviewRepo) SetResponse(_ context.Context, id, text string) error { return nil }
func (f *fakeReviewRepo) Delete(_ context.Context, id string) error            { return nil }
func (f *fakeReviewRepo) GetByService(_ context.Context, serviceID string) ([]models.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byService[serviceID], nil
}
func (f *fakeReviewRepo) GetByUser(_ context.Context, userID string) ([]models.Review, error) {
	return nil, nil
}

func ptr(v float64) *float64 { return &v }

func newTestCatalog(repo *fakeServiceRepo) *DefaultCatalogService {
	return &DefaultCatalogService{
		Repo:       repo,
		ReviewRepo: &fakeReviewRepo{byService: map[string][]models.Review{}},
	}
}

func TestSearchFiltersByNameAndCategory(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "a", Name: "Harlem Food Pantry", Category: models.CategoryFood})
	repo.put(models.Service{ID: "b", Name: "Midtown Shelter", Category: models.CategoryShelter})
	repo.put(models.Service{ID: "c", Name: "Brooklyn Food Bank", Category: models.CategoryFood})
	svc := newTestCatalog(repo)

	page, err := svc.Search(context.Background(), models.SearchQuery{Query: "food", Category: models.CategoryFood, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "a", page.Items[0].ID)
	assert.Equal(t, "c", page.Items[1].ID)
}

func TestSearchRadiusExcludesFarAndUnlocated(t *testing.T) {
	repo := newFakeServiceRepo()
	// Near Union Square, about 1 km from the origin below.
	repo.put(models.Service{ID: "near", Name: "Near", Category: models.CategoryFood, Lat: ptr(40.7359), Lon: ptr(-73.9911)})
	// Philadelphia, far outside a 5 km radius.
	repo.put(models.Service{ID: "far", Name: "Far", Category: models.CategoryFood, Lat: ptr(39.9526), Lon: ptr(-75.1652)})
	// No coordinates at all.
	repo.put(models.Service{ID: "nowhere", Name: "Nowhere", Category: models.CategoryFood})
	svc := newTestCatalog(repo)

	q := models.SearchQuery{
		Lat: ptr(40.7410), Lon: ptr(-73.9897), RadiusKm: ptr(5.0),
		Page: 1,
	}
	page, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "near", page.Items[0].ID)
	require.NotNil(t, page.Items[0].Distance)
	assert.Less(t, *page.Items[0].Distance, 5.0)
}

func TestSearchSortByDistance(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "far", Name: "Far", Category: models.CategoryFood, Lat: ptr(40.78), Lon: ptr(-73.97)})
	repo.put(models.Service{ID: "near", Name: "Near", Category: models.CategoryFood, Lat: ptr(40.742), Lon: ptr(-73.99)})
	svc := newTestCatalog(repo)

	q := models.SearchQuery{
		Lat: ptr(40.7410), Lon: ptr(-73.9897), RadiusKm: ptr(50.0),
		SortBy: models.SortByDistance, Page: 1,
	}
	page, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "near", page.Items[0].ID)
	assert.Equal(t, "far", page.Items[1].ID)
}

func TestSearchSortByRatingPutsUnratedLast(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "mid", Name: "Mid", Category: models.CategoryFood, Rating: ptr(3.2), RatingCount: 4})
	repo.put(models.Service{ID: "unrated", Name: "Unrated", Category: models.CategoryFood})
	repo.put(models.Service{ID: "top", Name: "Top", Category: models.CategoryFood, Rating: ptr(4.9), RatingCount: 12})
	svc := newTestCatalog(repo)

	page, err := svc.Search(context.Background(), models.SearchQuery{SortBy: models.SortByRating, Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "top", page.Items[0].ID)
	assert.Equal(t, "mid", page.Items[1].ID)
	assert.Equal(t, "unrated", page.Items[2].ID)
}

func TestSearchPagination(t *testing.T) {
	repo := newFakeServiceRepo()
	for i := 0; i < 25; i++ {
		repo.put(models.Service{ID: fmt.Sprintf("svc-%02d", i), Name: "Pantry", Category: models.CategoryFood})
	}
	svc := newTestCatalog(repo)

	page, err := svc.Search(context.Background(), models.SearchQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, PageSize)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)

	last, err := svc.Search(context.Background(), models.SearchQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, last.Items, 5)
	assert.False(t, last.HasNext)
}

func TestSearchOutOfRangePageClampsToFirst(t *testing.T) {
	repo := newFakeServiceRepo()
	for i := 0; i < 12; i++ {
		repo.put(models.Service{ID: fmt.Sprintf("svc-%02d", i), Name: "Pantry", Category: models.CategoryFood})
	}
	svc := newTestCatalog(repo)

	for _, page := range []int{0, -3, 99999} {
		got, err := svc.Search(context.Background(), models.SearchQuery{Page: page})
		require.NoError(t, err)
		assert.Equal(t, 1, got.Page)
		assert.Len(t, got.Items, PageSize)
	}
}

func TestSearchStoreFailureDegradesToEmptyPage(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.scanErr = errors.New("connection reset")
	svc := newTestCatalog(repo)

	page, err := svc.Search(context.Background(), models.SearchQuery{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
}

func TestSearchMapLinkEscapesAddress(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "a", Name: "Pantry", Category: models.CategoryFood, Address: "123 Main St & 5th Ave"})
	svc := newTestCatalog(repo)

	page, err := svc.Search(context.Background(), models.SearchQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t,
		"https://www.google.com/maps/dir/?api=1&destination=123+Main+St+%26+5th+Ave",
		page.Items[0].MapLink)
}

func TestDetailsNotFound(t *testing.T) {
	svc := newTestCatalog(newFakeServiceRepo())

	_, err := svc.Details(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestDetailsReviewFailureDegradesToEmptyList(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "a", Name: "Pantry", Category: models.CategoryFood})
	svc := &DefaultCatalogService{
		Repo:       repo,
		ReviewRepo: &fakeReviewRepo{err: errors.New("timeout")},
	}

	details, err := svc.Details(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", details.Service.ID)
	assert.Empty(t, details.Reviews)
}

func TestCreateResetsAggregateAndStatus(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestCatalog(repo)

	created, err := svc.Create(context.Background(), "prov-1", &models.Service{
		Name: "New Pantry", Address: "1 Main St", Category: models.CategoryFood,
		Rating: ptr(5.0), RatingCount: 99, Status: models.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingApproval, created.Status)
	assert.Nil(t, created.Rating)
	assert.Zero(t, created.RatingCount)
	assert.Equal(t, "prov-1", created.ProviderID)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := newTestCatalog(newFakeServiceRepo())

	_, err := svc.Create(context.Background(), "prov-1", &models.Service{
		Name: "X", Address: "1 Main St", Category: "LAUNDRY",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdatePreservesAggregateAndChecksOwnership(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{
		ID: "a", Name: "Pantry", Address: "1 Main St", Category: models.CategoryFood,
		ProviderID: "prov-1", Rating: ptr(4.2), RatingCount: 7, Status: models.StatusApproved,
	})
	svc := newTestCatalog(repo)

	_, err := svc.Update(context.Background(), "prov-2", &models.Service{
		ID: "a", Name: "Renamed", Address: "1 Main St", Category: models.CategoryFood,
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	updated, err := svc.Update(context.Background(), "prov-1", &models.Service{
		ID: "a", Name: "Renamed", Address: "1 Main St", Category: models.CategoryFood,
	})
	require.NoError(t, err)
	assert.Equal(t, ptr(4.2), updated.Rating)
	assert.Equal(t, 7, updated.RatingCount)
	assert.Equal(t, models.StatusPendingApproval, updated.Status)
}

func TestDeleteChecksOwnership(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "a", Name: "Pantry", Category: models.CategoryFood, ProviderID: "prov-1"})
	svc := newTestCatalog(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), "prov-2", "a"), utils.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), "prov-1", "missing"), utils.ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), "prov-1", "a"))
}

func TestSetStatusValidatesTransitionTarget(t *testing.T) {
	repo := newFakeServiceRepo()
	repo.put(models.Service{ID: "a", Name: "Pantry", Category: models.CategoryFood, Status: models.StatusPendingApproval})
	svc := newTestCatalog(repo)

	assert.ErrorIs(t, svc.SetStatus(context.Background(), "a", "LIVE"), utils.ErrInvalidInput)
	require.NoError(t, svc.SetStatus(context.Background(), "a", models.StatusApproved))
	got, _ := repo.GetByID(context.Background(), "a")
	assert.Equal(t, models.StatusApproved, got.Status)
}
