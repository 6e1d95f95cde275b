package flagRepo

import (
	"context"
	"errors"
	"time"

	"servicefinder/models"
)

// ErrDuplicateFlag is returned when (content_type, object_id, flagger)
// already has a flag. The unique index makes this authoritative even when two
// submissions race past the pre-check.
var ErrDuplicateFlag = errors.New("content already flagged by this user")

// ErrNotPending is returned when an adjudication targets a flag that has
// already reached a terminal status.
var ErrNotPending = errors.New("flag is not pending")

// FlagRepository is the store contract for moderation flags. Flags are never
// physically deleted in normal operation.
type FlagRepository interface {
	Create(ctx context.Context, flag *models.Flag) error
	GetByID(ctx context.Context, flagID int64) (*models.Flag, error)
	ExistsByTargetAndFlagger(ctx context.Context, contentType, objectID, flagger string) (bool, error)
	CountPendingByTarget(ctx context.Context, contentType, objectID string) (int, error)
	HasPendingByTargetAndFlagger(ctx context.Context, contentType, objectID, flagger string) (bool, error)
	ListByStatus(ctx context.Context, status string) ([]models.Flag, error)
	// Adjudicate transitions a PENDING flag to a terminal status in one
	// guarded update; ErrNotPending if the flag was already adjudicated.
	Adjudicate(ctx context.Context, flagID int64, status, reviewedBy string, reviewedAt time.Time) (*models.Flag, error)
}
