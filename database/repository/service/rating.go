package serviceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateRatingGuarded applies a new rating aggregate only while the stored
// count still equals expectedCount. A concurrent submission that got there
// first makes the filter miss and the caller re-reads and retries, so no
// review's contribution is lost.
func (r *MongoServiceRepo) UpdateRatingGuarded(ctx context.Context, id string, expectedCount int, newRating float64, newCount int) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "rating_count": expectedCount}
	update := bson.M{"$set": bson.M{
		"rating":       newRating,
		"rating_count": newCount,
		"updated_at":   time.Now().UTC(),
	}}

	res := r.coll.FindOneAndUpdate(ctx, filter, update)
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrPreconditionFailed
		}
		return fmt.Errorf("failed to update rating for service %s: %w", id, err)
	}
	return nil
}

// SetRatingExact overwrites the aggregate unconditionally. Used by the
// edit/delete recompute paths, which derive the exact value from the ledger.
func (r *MongoServiceRepo) SetRatingExact(ctx context.Context, id string, rating *float64, count int) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"rating_count": count, "updated_at": time.Now().UTC()},
	}
	if rating != nil {
		update["$set"].(bson.M)["rating"] = *rating
	} else {
		update["$unset"] = bson.M{"rating": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating for service %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
