package notification

import (
	"context"

	"servicefinder/models"
)

// TypeNotificationDeliver is the asynq task type for pushing a persisted
// notification out to its recipient.
const TypeNotificationDeliver = "notification:deliver"

// DeliverPayload is the task payload for TypeNotificationDeliver.
type DeliverPayload struct {
	NotificationID string `json:"notificationId"`
}

// NotificationService manages in-app notifications. Creation is durable
// first: the document is persisted before any delivery is attempted, and
// delivery failures never fail the triggering operation.
type NotificationService interface {
	Notify(ctx context.Context, n *models.Notification) error
	// NotifyAdminDigest creates a "flags need review" notice for one admin,
	// unless that admin already has an unread one outstanding.
	NotifyAdminDigest(ctx context.Context, adminID, sender string) error
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}
