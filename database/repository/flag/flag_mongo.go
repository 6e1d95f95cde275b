package flagRepo

import (
	"context"
	"fmt"
	"time"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlagRepo implements FlagRepository using MongoDB.
type MongoFlagRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoFlagRepo creates a FlagRepository over the given database.
func NewMongoFlagRepo(db *mongo.Database) *MongoFlagRepo {
	repo := &MongoFlagRepo{
		coll:     db.Collection("flags"),
		counters: db.Collection("counters"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create flag indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoFlagRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "flag_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One flag per user per content item; the correctness backstop for
		// the check-then-create in the moderation service.
		{
			Keys: bson.D{
				{Key: "content_type", Value: 1},
				{Key: "object_id", Value: 1},
				{Key: "flagger", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// nextFlagID increments the flag sequence counter and returns the new value.
func (r *MongoFlagRepo) nextFlagID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"id": "flags"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate flag id: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts a new flag, allocating a sequential id. A duplicate
// (content_type, object_id, flagger) surfaces as ErrDuplicateFlag.
func (r *MongoFlagRepo) Create(ctx context.Context, flag *models.Flag) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if flag.FlagID == 0 {
		id, err := r.nextFlagID(ctx)
		if err != nil {
			return err
		}
		flag.FlagID = id
	}
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = time.Now().UTC()
	}
	if flag.Status == "" {
		flag.Status = models.FlagPending
	}

	if _, err := r.coll.InsertOne(ctx, flag); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateFlag
		}
		return fmt.Errorf("failed to insert flag: %w", err)
	}
	return nil
}

// GetByID returns a flag, or (nil, nil) when absent.
func (r *MongoFlagRepo) GetByID(ctx context.Context, flagID int64) (*models.Flag, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var flag models.Flag
	if err := r.coll.FindOne(ctx, bson.M{"flag_id": flagID}).Decode(&flag); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flag %d: %w", flagID, err)
	}
	return &flag, nil
}

// ExistsByTargetAndFlagger reports whether the user already flagged the item.
func (r *MongoFlagRepo) ExistsByTargetAndFlagger(ctx context.Context, contentType, objectID, flagger string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"content_type": contentType,
		"object_id":    objectID,
		"flagger":      flagger,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check existing flag: %w", err)
	}
	return count > 0, nil
}

// CountPendingByTarget counts pending flags on a content item.
func (r *MongoFlagRepo) CountPendingByTarget(ctx context.Context, contentType, objectID string) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"content_type": contentType,
		"object_id":    objectID,
		"status":       models.FlagPending,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending flags: %w", err)
	}
	return int(count), nil
}

// HasPendingByTargetAndFlagger reports whether the user has a pending flag on
// the content item.
func (r *MongoFlagRepo) HasPendingByTargetAndFlagger(ctx context.Context, contentType, objectID, flagger string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"content_type": contentType,
		"object_id":    objectID,
		"flagger":      flagger,
		"status":       models.FlagPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check pending flag: %w", err)
	}
	return count > 0, nil
}

// ListByStatus returns flags in a given status, newest first.
func (r *MongoFlagRepo) ListByStatus(ctx context.Context, status string) ([]models.Flag, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	defer cursor.Close(ctx)

	var flags []models.Flag
	if err := cursor.All(ctx, &flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags: %w", err)
	}
	return flags, nil
}

// Adjudicate transitions a PENDING flag to a terminal status. The status
// guard in the filter makes re-adjudication of a terminal flag miss, which
// surfaces as ErrNotPending.
func (r *MongoFlagRepo) Adjudicate(ctx context.Context, flagID int64, status, reviewedBy string, reviewedAt time.Time) (*models.Flag, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"flag_id": flagID, "status": models.FlagPending}
	update := bson.M{"$set": bson.M{
		"status":      status,
		"reviewed_by": reviewedBy,
		"reviewed_at": reviewedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var flag models.Flag
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&flag); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("failed to adjudicate flag %d: %w", flagID, err)
	}
	return &flag, nil
}
