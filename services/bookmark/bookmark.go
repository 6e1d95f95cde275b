package bookmark

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/database/repository/bookmark"
	"servicefinder/database/repository/service"
	"servicefinder/models"
	"servicefinder/utils"

	"go.uber.org/zap"
)

// BookmarkService manages the user↔service bookmark relation.
type BookmarkService interface {
	// Toggle applies an add or remove action and reports what happened;
	// repeating an action is answered, not errored.
	Toggle(ctx context.Context, userID, serviceID, action string) (string, error)
	IsBookmarked(ctx context.Context, userID, serviceID string) (bool, error)
	// ListForUser resolves the user's bookmarks to current service records;
	// services deleted since bookmarking are silently dropped.
	ListForUser(ctx context.Context, userID string) ([]models.Service, error)
}

// Toggle actions accepted from the caller.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

// DefaultBookmarkService is the production implementation.
type DefaultBookmarkService struct {
	Repo        bookmarkRepo.BookmarkRepository
	ServiceRepo serviceRepo.ServiceRepository
}

// Toggle adds or removes a bookmark. The duplicate pre-check makes "add"
// effectively idempotent from the caller's perspective; the unique index on
// (user, service) backstops the check under races.
func (s *DefaultBookmarkService) Toggle(ctx context.Context, userID, serviceID, action string) (string, error) {
	switch action {
	case ActionAdd:
		return s.add(ctx, userID, serviceID)
	case ActionRemove:
		return s.remove(ctx, userID, serviceID)
	default:
		return "", fmt.Errorf("unknown bookmark action %q: %w", action, utils.ErrInvalidInput)
	}
}

func (s *DefaultBookmarkService) add(ctx context.Context, userID, serviceID string) (string, error) {
	svc, err := s.ServiceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return "", err
	}
	if svc == nil {
		return "", fmt.Errorf("service %s: %w", serviceID, utils.ErrNotFound)
	}

	existing, err := s.Repo.FindByUserAndService(ctx, userID, serviceID)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return models.BookmarkAlreadyExists, nil
	}

	bm := &models.Bookmark{UserID: userID, ServiceID: serviceID}
	if err := s.Repo.Create(ctx, bm); err != nil {
		// A concurrent add that beat us past the pre-check is still an
		// "already bookmarked", not a failure.
		if errors.Is(err, bookmarkRepo.ErrDuplicateBookmark) {
			return models.BookmarkAlreadyExists, nil
		}
		return "", err
	}
	return models.BookmarkAdded, nil
}

// remove is query-then-delete: the primary key is the bookmark's own id, not
// the (user, service) pair, so matches are found first and deleted by id.
// Multiple matches from a past race are all cleaned up.
func (s *DefaultBookmarkService) remove(ctx context.Context, userID, serviceID string) (string, error) {
	existing, err := s.Repo.FindByUserAndService(ctx, userID, serviceID)
	if err != nil {
		return "", err
	}
	if len(existing) == 0 {
		return models.BookmarkNotFound, nil
	}
	for _, bm := range existing {
		if err := s.Repo.DeleteByID(ctx, bm.BookmarkID); err != nil {
			return "", err
		}
	}
	return models.BookmarkRemoved, nil
}

// IsBookmarked reports whether the user has bookmarked the service.
func (s *DefaultBookmarkService) IsBookmarked(ctx context.Context, userID, serviceID string) (bool, error) {
	existing, err := s.Repo.FindByUserAndService(ctx, userID, serviceID)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

// ListForUser denormalizes the user's bookmarks into current service records.
func (s *DefaultBookmarkService) ListForUser(ctx context.Context, userID string) ([]models.Service, error) {
	bookmarks, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("ListForUser: store read failed, degrading to empty list",
			zap.String("userID", userID), zap.Error(err))
		return []models.Service{}, nil
	}
	if len(bookmarks) == 0 {
		return []models.Service{}, nil
	}

	ids := make([]string, 0, len(bookmarks))
	for _, bm := range bookmarks {
		ids = append(ids, bm.ServiceID)
	}
	services, err := s.ServiceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve the bookmark ordering; the batch lookup is unordered.
	byID := make(map[string]models.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}
	resolved := make([]models.Service, 0, len(bookmarks))
	for _, bm := range bookmarks {
		if svc, ok := byID[bm.ServiceID]; ok {
			resolved = append(resolved, svc)
		}
	}
	return resolved, nil
}
