package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicefinder/database/repository/flag"
	"servicefinder/database/repository/forum"
	"servicefinder/database/repository/user"
	"servicefinder/models"
	"servicefinder/services/notification"
	"servicefinder/services/review"
	"servicefinder/utils"

	"go.uber.org/zap"
)

// DefaultModerationService is the production implementation of
// ModerationService.
type DefaultModerationService struct {
	FlagRepo  flagRepo.FlagRepository
	ForumRepo forumRepo.ForumRepository
	UserRepo  userRepo.UserRepository
	Reviews   review.ReviewService
	Notifier  notification.NotificationService
}

// CreateFlag validates and persists a user's flag, snapshotting the target
// content, then fans out notifications to the content author and the admin
// roster. Once the flag is persisted it is never rolled back: notification
// failures are logged, not propagated.
func (s *DefaultModerationService) CreateFlag(ctx context.Context, in CreateFlagInput) (*models.Flag, error) {
	if !models.ValidContentType(in.ContentType) {
		return nil, fmt.Errorf("invalid content type %q: %w", in.ContentType, utils.ErrInvalidInput)
	}
	if !models.ValidFlagReason(in.Reason) {
		return nil, fmt.Errorf("invalid flag reason %q: %w", in.Reason, utils.ErrInvalidInput)
	}

	snapshot, err := s.resolveContent(ctx, in.ContentType, in.ObjectID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%s %s: %w", strings.ToLower(in.ContentType), in.ObjectID, utils.ErrNotFound)
	}

	exists, err := s.FlagRepo.ExistsByTargetAndFlagger(ctx, in.ContentType, in.ObjectID, in.FlaggerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("content already flagged by this user: %w", utils.ErrConflict)
	}

	flag := &models.Flag{
		ContentType:    in.ContentType,
		ObjectID:       in.ObjectID,
		Flagger:        in.FlaggerID,
		Reason:         in.Reason,
		Explanation:    in.Explanation,
		Status:         models.FlagPending,
		ContentTitle:   snapshot.Title,
		ContentPreview: snapshot.Preview,
		ContentAuthor:  snapshot.Author,
		ContentRating:  snapshot.Rating,
	}
	if err := s.FlagRepo.Create(ctx, flag); err != nil {
		// The unique index is authoritative for duplicates that raced past
		// the pre-check.
		if errors.Is(err, flagRepo.ErrDuplicateFlag) {
			return nil, fmt.Errorf("content already flagged by this user: %w", utils.ErrConflict)
		}
		return nil, err
	}

	s.notifyAuthorFlagged(ctx, flag, snapshot)
	s.notifyAdmins(ctx, in.FlaggerID)
	return flag, nil
}

// Adjudicate applies an admin decision to a pending flag. Re-adjudicating a
// terminal flag is a conflict, never a second transition.
func (s *DefaultModerationService) Adjudicate(ctx context.Context, flagID int64, adminID, action string) (*models.Flag, error) {
	var status string
	switch action {
	case models.FlagActionDismiss:
		status = models.FlagDismissed
	case models.FlagActionRevoke:
		status = models.FlagRevoked
	default:
		return nil, fmt.Errorf("invalid adjudication action %q: %w", action, utils.ErrInvalidInput)
	}

	current, err := s.FlagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("flag %d: %w", flagID, utils.ErrNotFound)
	}
	if current.Terminal() {
		return nil, fmt.Errorf("flag %d already adjudicated as %s: %w", flagID, current.Status, utils.ErrConflict)
	}

	flag, err := s.FlagRepo.Adjudicate(ctx, flagID, status, adminID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, flagRepo.ErrNotPending) {
			return nil, fmt.Errorf("flag %d already adjudicated: %w", flagID, utils.ErrConflict)
		}
		return nil, err
	}

	if status == models.FlagRevoked {
		s.takeDownContent(ctx, flag)
	}

	s.notifyFlaggerReviewed(ctx, flag, adminID)
	s.notifyAuthorReviewed(ctx, flag, adminID)
	return flag, nil
}

// takeDownContent removes revoked content. Posts and comments are
// tombstoned in place so thread structure survives; a revoked review is
// deleted through the ledger so the service's aggregate is rebalanced.
func (s *DefaultModerationService) takeDownContent(ctx context.Context, flag *models.Flag) {
	logger := utils.GetLogger()
	var err error
	switch flag.ContentType {
	case models.ContentForumPost:
		err = s.ForumRepo.TombstonePost(ctx, flag.ObjectID)
	case models.ContentForumComment:
		err = s.ForumRepo.TombstoneComment(ctx, flag.ObjectID)
	case models.ContentReview:
		_, err = s.Reviews.Takedown(ctx, flag.ObjectID)
	}
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		logger.Error("Adjudicate: content takedown failed",
			zap.Int64("flagID", flag.FlagID),
			zap.String("contentType", flag.ContentType),
			zap.Error(err))
	}
}

// CheckStatus reports the pending-flag state of a content item for UI
// badges. Unknown content types and store failures both degrade to zeroes;
// this endpoint must never break a page.
func (s *DefaultModerationService) CheckStatus(ctx context.Context, contentType, objectID, requester string) (*models.FlagStatusSummary, error) {
	summary := &models.FlagStatusSummary{}
	if !models.ValidContentType(contentType) {
		return summary, nil
	}

	count, err := s.FlagRepo.CountPendingByTarget(ctx, contentType, objectID)
	if err != nil {
		utils.GetLogger().Error("CheckStatus: pending count failed", zap.Error(err))
		return summary, nil
	}
	flagged, err := s.FlagRepo.HasPendingByTargetAndFlagger(ctx, contentType, objectID, requester)
	if err != nil {
		utils.GetLogger().Error("CheckStatus: requester check failed", zap.Error(err))
		return summary, nil
	}

	summary.PendingFlagsCount = count
	summary.HasPendingFlags = count > 0
	summary.RequesterHasFlagged = flagged
	return summary, nil
}

// ListPending returns the admin moderation queue, newest first.
func (s *DefaultModerationService) ListPending(ctx context.Context) ([]models.Flag, error) {
	flags, err := s.FlagRepo.ListByStatus(ctx, models.FlagPending)
	if err != nil {
		return nil, err
	}
	if flags == nil {
		flags = []models.Flag{}
	}
	return flags, nil
}

func (s *DefaultModerationService) notifyAuthorFlagged(ctx context.Context, flag *models.Flag, snapshot *contentSnapshot) {
	if snapshot.AuthorID == "" {
		return
	}
	n := &models.Notification{
		Recipient: snapshot.AuthorID,
		Sender:    flag.Flagger,
		Message:   fmt.Sprintf("Your content has been flagged as %s", strings.ToLower(flag.Reason)),
		Type:      models.NotificationFlag,
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		utils.GetLogger().Warn("CreateFlag: author notification failed",
			zap.Int64("flagID", flag.FlagID), zap.Error(err))
	}
}

func (s *DefaultModerationService) notifyAdmins(ctx context.Context, sender string) {
	admins, err := s.UserRepo.GetAdmins(ctx)
	if err != nil {
		utils.GetLogger().Warn("CreateFlag: admin roster lookup failed", zap.Error(err))
		return
	}
	for _, admin := range admins {
		if err := s.Notifier.NotifyAdminDigest(ctx, admin.ID, sender); err != nil {
			utils.GetLogger().Warn("CreateFlag: admin digest failed",
				zap.String("adminID", admin.ID), zap.Error(err))
		}
	}
}

func (s *DefaultModerationService) notifyFlaggerReviewed(ctx context.Context, flag *models.Flag, adminID string) {
	n := &models.Notification{
		Recipient: flag.Flagger,
		Sender:    adminID,
		Message:   fmt.Sprintf("Your flag has been reviewed and %s", strings.ToLower(flag.Status)),
		Type:      models.NotificationFlagReviewed,
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		utils.GetLogger().Warn("Adjudicate: flagger notification failed",
			zap.Int64("flagID", flag.FlagID), zap.Error(err))
	}
}

func (s *DefaultModerationService) notifyAuthorReviewed(ctx context.Context, flag *models.Flag, adminID string) {
	// Resolution can fail after a revoke removed the content; the snapshot
	// does not carry the author id, so a vanished author just means no
	// notice.
	snapshot, err := s.resolveContent(ctx, flag.ContentType, flag.ObjectID)
	if err != nil || snapshot == nil || snapshot.AuthorID == "" {
		return
	}
	n := &models.Notification{
		Recipient: snapshot.AuthorID,
		Sender:    adminID,
		Message:   fmt.Sprintf("Your flagged content has been %s", strings.ToLower(flag.Status)),
		Type:      models.NotificationFlagReviewed,
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		utils.GetLogger().Warn("Adjudicate: author notification failed",
			zap.Int64("flagID", flag.FlagID), zap.Error(err))
	}
}
