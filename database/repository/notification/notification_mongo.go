package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"servicefinder/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository is the store contract for in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByRecipient(ctx context.Context, recipient string) ([]models.Notification, error)
	// HasUnreadByType backs the admin digest rule: at most one outstanding
	// unread notice of a type per recipient.
	HasUnreadByType(ctx context.Context, recipient, notificationType string) (bool, error)
	CountUnread(ctx context.Context, recipient string) (int, error)
	MarkRead(ctx context.Context, id, recipient string) error
	MarkSent(ctx context.Context, id string) error
	Delete(ctx context.Context, id, recipient string) error
}

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo creates a NotificationRepository over the given database.
func NewMongoNotificationRepo(db *mongo.Database) *MongoNotificationRepo {
	repo := &MongoNotificationRepo{coll: db.Collection("notifications")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create notification indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "type", Value: 1}, {Key: "read", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a notification.
func (r *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// GetByRecipient returns a user's notifications, newest first.
func (r *MongoNotificationRepo) GetByRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications for %s: %w", recipient, err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// HasUnreadByType reports whether the recipient has an unread notification of
// the given type.
func (r *MongoNotificationRepo) HasUnreadByType(ctx context.Context, recipient, notificationType string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"recipient": recipient,
		"type":      notificationType,
		"read":      false,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check unread notifications: %w", err)
	}
	return count > 0, nil
}

// CountUnread counts a recipient's unread notifications.
func (r *MongoNotificationRepo) CountUnread(ctx context.Context, recipient string) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"recipient": recipient, "read": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return int(count), nil
}

// MarkRead flips the read flag; scoped to the recipient so users cannot mark
// someone else's notices.
func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id, recipient string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkSent records that the delivery worker pushed the notification.
func (r *MongoNotificationRepo) MarkSent(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"sent": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification %s sent: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a notification; scoped to the recipient.
func (r *MongoNotificationRepo) Delete(ctx context.Context, id, recipient string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "recipient": recipient})
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
