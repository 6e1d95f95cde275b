package bookmark

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"servicefinder/database/repository/bookmark"
	"servicefinder/models"
	"servicefinder/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookmarkRepo struct {
	bookmarks map[string]*models.Bookmark
	order     []string
	readErr   error
	createErr error
	seq       int
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: map[string]*models.Bookmark{}}
}

func (f *fakeBookmarkRepo) Create(_ context.Context, bm *models.Bookmark) error {
	if f.createErr != nil {
		return f.createErr
	}
	if bm.BookmarkID == "" {
		f.seq++
		bm.BookmarkID = fmt.Sprintf("bm-%d", f.seq)
	}
	if bm.CreatedAt.IsZero() {
		bm.CreatedAt = time.Now().UTC()
	}
	cp := *bm
	f.bookmarks[bm.BookmarkID] = &cp
	f.order = append(f.order, bm.BookmarkID)
	return nil
}

func (f *fakeBookmarkRepo) FindByUserAndService(_ context.Context, userID, serviceID string) ([]models.Bookmark, error) {
	var out []models.Bookmark
	for _, id := range f.order {
		if bm, ok := f.bookmarks[id]; ok && bm.UserID == userID && bm.ServiceID == serviceID {
			out = append(out, *bm)
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) DeleteByID(_ context.Context, bookmarkID string) error {
	delete(f.bookmarks, bookmarkID)
	return nil
}

func (f *fakeBookmarkRepo) GetByUser(_ context.Context, userID string) ([]models.Bookmark, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []models.Bookmark
	for i := len(f.order) - 1; i >= 0; i-- {
		if bm, ok := f.bookmarks[f.order[i]]; ok && bm.UserID == userID {
			out = append(out, *bm)
		}
	}
	return out, nil
}

// fakeServiceLookup serves only the existence check and batch resolve.
type fakeServiceLookup struct {
	services map[string]models.Service
}

func (f *fakeServiceLookup) Create(_ context.Context, _ *models.Service) error { return nil }
func (f *fakeServiceLookup) GetByID(_ context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}
func (f *fakeServiceLookup) Update(_ context.Context, _ *models.Service) error { return nil }
func (f *fakeServiceLookup) Delete(_ context.Context, _ string) error          { return nil }
func (f *fakeServiceLookup) Scan(_ context.Context, _, _ string) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeServiceLookup) GetByProvider(_ context.Context, _ string) ([]models.Service, error) {
	return nil, nil
}
func (f *fakeServiceLookup) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}
func (f *fakeServiceLookup) SetStatus(_ context.Context, _, _ string) error { return nil }
func (f *fakeServiceLookup) UpdateRatingGuarded(_ context.Context, _ string, _ int, _ float64, _ int) error {
	return nil
}
func (f *fakeServiceLookup) SetRatingExact(_ context.Context, _ string, _ *float64, _ int) error {
	return nil
}

func newTestBookmarkService(serviceIDs ...string) (*DefaultBookmarkService, *fakeBookmarkRepo) {
	repo := newFakeBookmarkRepo()
	lookup := &fakeServiceLookup{services: map[string]models.Service{}}
	for _, id := range serviceIDs {
		lookup.services[id] = models.Service{ID: id, Name: "Service " + id}
	}
	return &DefaultBookmarkService{Repo: repo, ServiceRepo: lookup}, repo
}

func TestToggleAddThenDuplicate(t *testing.T) {
	svc, _ := newTestBookmarkService("a")

	outcome, err := svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkAdded, outcome)

	outcome, err = svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkAlreadyExists, outcome)
}

func TestToggleAddRacingDuplicateIsAlreadyBookmarked(t *testing.T) {
	svc, repo := newTestBookmarkService("a")

	// A concurrent add commits between the pre-check and the insert, so the
	// unique index rejects ours.
	repo.createErr = bookmarkRepo.ErrDuplicateBookmark

	outcome, err := svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkAlreadyExists, outcome)
}

func TestToggleAddPropagatesOtherCreateErrors(t *testing.T) {
	svc, repo := newTestBookmarkService("a")
	repo.createErr = errors.New("timeout")

	_, err := svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	assert.Error(t, err)
}

func TestToggleRemove(t *testing.T) {
	svc, _ := newTestBookmarkService("a")

	_, err := svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)

	outcome, err := svc.Toggle(context.Background(), "u1", "a", ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkRemoved, outcome)

	outcome, err = svc.Toggle(context.Background(), "u1", "a", ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkNotFound, outcome)
}

func TestToggleRemoveCleansUpDuplicates(t *testing.T) {
	svc, repo := newTestBookmarkService("a")

	// Two records for the same pair, as a past race could have produced.
	require.NoError(t, repo.Create(context.Background(), &models.Bookmark{UserID: "u1", ServiceID: "a"}))
	require.NoError(t, repo.Create(context.Background(), &models.Bookmark{UserID: "u1", ServiceID: "a"}))

	outcome, err := svc.Toggle(context.Background(), "u1", "a", ActionRemove)
	require.NoError(t, err)
	assert.Equal(t, models.BookmarkRemoved, outcome)

	left, _ := repo.FindByUserAndService(context.Background(), "u1", "a")
	assert.Empty(t, left)
}

func TestToggleRejectsUnknownActionAndMissingService(t *testing.T) {
	svc, _ := newTestBookmarkService("a")

	_, err := svc.Toggle(context.Background(), "u1", "a", "star")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.Toggle(context.Background(), "u1", "missing", ActionAdd)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestIsBookmarked(t *testing.T) {
	svc, _ := newTestBookmarkService("a")

	got, err := svc.IsBookmarked(context.Background(), "u1", "a")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)

	got, err = svc.IsBookmarked(context.Background(), "u1", "a")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestListForUserResolvesNewestFirstAndDropsDeleted(t *testing.T) {
	svc, repo := newTestBookmarkService("a", "b")

	_, err := svc.Toggle(context.Background(), "u1", "a", ActionAdd)
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), "u1", "b", ActionAdd)
	require.NoError(t, err)
	// A bookmark whose service has since been deleted.
	require.NoError(t, repo.Create(context.Background(), &models.Bookmark{UserID: "u1", ServiceID: "gone"}))

	services, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "b", services[0].ID)
	assert.Equal(t, "a", services[1].ID)
}

func TestListForUserDegradesOnStoreFailure(t *testing.T) {
	svc, repo := newTestBookmarkService("a")
	repo.readErr = errors.New("timeout")

	services, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, services)
}
