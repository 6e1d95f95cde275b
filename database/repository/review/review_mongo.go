package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository over the given database.
func NewMongoReviewRepo(db *mongo.Database) *MongoReviewRepo {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create review indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "review_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a review record.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if review.ReviewID == "" {
		review.ReviewID = uuid.New().String()
	}
	if review.Timestamp.IsZero() {
		review.Timestamp = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert review %s: %w", review.ReviewID, err)
	}
	return nil
}

// GetByID returns a review, or (nil, nil) when absent.
func (r *MongoReviewRepo) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"review_id": reviewID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review %s: %w", reviewID, err)
	}
	return &review, nil
}

// UpdateContent overwrites stars and message, preserving identity fields.
func (r *MongoReviewRepo) UpdateContent(ctx context.Context, reviewID string, stars int, message string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"review_id": reviewID}, bson.M{"$set": bson.M{
		"rating_stars":   stars,
		"rating_message": message,
	}})
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", reviewID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetResponse records the provider's one-time response.
func (r *MongoReviewRepo) SetResponse(ctx context.Context, reviewID, responseText string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"review_id": reviewID}, bson.M{"$set": bson.M{
		"response_text": responseText,
		"responded_at":  time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to set response on review %s: %w", reviewID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a review by ID.
func (r *MongoReviewRepo) Delete(ctx context.Context, reviewID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", reviewID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetByService returns a service's reviews, newest first.
func (r *MongoReviewRepo) GetByService(ctx context.Context, serviceID string) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"service_id": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// GetByUser returns every review written by a user.
func (r *MongoReviewRepo) GetByUser(ctx context.Context, userID string) ([]models.Review, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
