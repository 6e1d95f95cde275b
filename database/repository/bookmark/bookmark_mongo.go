package bookmarkRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicefinder/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateBookmark is returned when (user_id, service_id) already has a
// bookmark. The unique index raises it when a concurrent add slips past the
// application-level pre-check.
var ErrDuplicateBookmark = errors.New("service already bookmarked by this user")

// BookmarkRepository is the store contract for user bookmarks.
type BookmarkRepository interface {
	Create(ctx context.Context, bm *models.Bookmark) error
	// FindByUserAndService may return more than one record if a past race
	// produced duplicates; callers clean those up rather than erroring.
	FindByUserAndService(ctx context.Context, userID, serviceID string) ([]models.Bookmark, error)
	DeleteByID(ctx context.Context, bookmarkID string) error
	GetByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
}

// MongoBookmarkRepo implements BookmarkRepository using MongoDB.
type MongoBookmarkRepo struct {
	coll *mongo.Collection
}

// NewMongoBookmarkRepo creates a BookmarkRepository over the given database.
func NewMongoBookmarkRepo(db *mongo.Database) *MongoBookmarkRepo {
	repo := &MongoBookmarkRepo{coll: db.Collection("bookmarks")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create bookmark indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoBookmarkRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "bookmark_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Store-level backstop for the app-layer duplicate pre-check.
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "service_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a bookmark. A race on the (user_id, service_id) unique
// index surfaces as ErrDuplicateBookmark.
func (r *MongoBookmarkRepo) Create(ctx context.Context, bm *models.Bookmark) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if bm.BookmarkID == "" {
		bm.BookmarkID = uuid.New().String()
	}
	if bm.CreatedAt.IsZero() {
		bm.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, bm); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBookmark
		}
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// FindByUserAndService returns all bookmark records for (user, service).
func (r *MongoBookmarkRepo) FindByUserAndService(ctx context.Context, userID, serviceID string) ([]models.Bookmark, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID, "service_id": serviceID})
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}
	defer cursor.Close(ctx)

	var bookmarks []models.Bookmark
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	return bookmarks, nil
}

// DeleteByID removes a bookmark by its own identity key.
func (r *MongoBookmarkRepo) DeleteByID(ctx context.Context, bookmarkID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"bookmark_id": bookmarkID}); err != nil {
		return fmt.Errorf("failed to delete bookmark %s: %w", bookmarkID, err)
	}
	return nil
}

// GetByUser returns a user's bookmarks, newest first.
func (r *MongoBookmarkRepo) GetByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookmarks for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookmarks []models.Bookmark
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	return bookmarks, nil
}
