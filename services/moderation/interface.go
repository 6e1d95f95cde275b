package moderation

import (
	"context"

	"servicefinder/models"
)

// CreateFlagInput carries a user's flag submission.
type CreateFlagInput struct {
	ContentType string
	ObjectID    string
	Reason      string
	Explanation string
	FlaggerID   string
}

// ModerationService runs the flag lifecycle: submission with duplicate
// prevention, admin adjudication and the notification fan-out around both.
type ModerationService interface {
	CreateFlag(ctx context.Context, in CreateFlagInput) (*models.Flag, error)
	// Adjudicate moves a PENDING flag to DISMISSED or REVOKED. Terminal
	// flags reject re-adjudication with a conflict.
	Adjudicate(ctx context.Context, flagID int64, adminID, action string) (*models.Flag, error)
	// CheckStatus is the read-only aggregate behind UI badges; an unknown
	// content type degrades to "no flags" rather than erroring.
	CheckStatus(ctx context.Context, contentType, objectID, requester string) (*models.FlagStatusSummary, error)
	ListPending(ctx context.Context) ([]models.Flag, error)
}
