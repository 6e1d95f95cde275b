package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"servicefinder/database/repository/notification"
	"servicefinder/models"
	"servicefinder/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminDigestMessage is the body of the admin flag digest notice.
const AdminDigestMessage = "New flagged content requires review"

// DefaultNotificationService is the production implementation. Queue may be
// nil, in which case notifications are persisted without a delivery task.
type DefaultNotificationService struct {
	Repo  notificationRepo.NotificationRepository
	Queue *asynq.Client
}

// Notify persists the notification and enqueues a delivery task. The insert
// is the durability point; a queue failure is logged and swallowed.
func (s *DefaultNotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.Recipient == "" {
		return fmt.Errorf("notification recipient is required: %w", utils.ErrInvalidInput)
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	s.enqueueDelivery(n.ID)
	return nil
}

// NotifyAdminDigest caps admin notification volume to one outstanding unread
// digest per admin: while the previous digest is unread, new flags do not
// produce another one.
func (s *DefaultNotificationService) NotifyAdminDigest(ctx context.Context, adminID, sender string) error {
	hasUnread, err := s.Repo.HasUnreadByType(ctx, adminID, models.NotificationFlagAdmin)
	if err != nil {
		return err
	}
	if hasUnread {
		return nil
	}
	return s.Notify(ctx, &models.Notification{
		Recipient: adminID,
		Sender:    sender,
		Message:   AdminDigestMessage,
		Type:      models.NotificationFlagAdmin,
	})
}

// ListForUser returns a user's notifications, newest first.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.Repo.GetByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.Repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("notification %s: %w", id, utils.ErrNotFound)
		}
		return err
	}
	return nil
}

// Delete removes one of the user's notifications.
func (s *DefaultNotificationService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("notification %s: %w", id, utils.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *DefaultNotificationService) enqueueDelivery(notificationID string) {
	if s.Queue == nil {
		return
	}
	payload, err := json.Marshal(DeliverPayload{NotificationID: notificationID})
	if err != nil {
		return
	}
	task := asynq.NewTask(TypeNotificationDeliver, payload)
	if _, err := s.Queue.Enqueue(task); err != nil {
		utils.GetLogger().Warn("Notify: failed to enqueue delivery task",
			zap.String("notificationID", notificationID), zap.Error(err))
	}
}
