package serviceRepo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
)

// maxBatchKeys is the largest id batch resolved in a single query; larger
// requests are chunked and merged.
const maxBatchKeys = 100

// Scan runs the filtered collection scan behind the public search path.
// Filters are case-insensitive substring matches on name and category; with
// neither filter every listing passes.
func (r *MongoServiceRepo) Scan(ctx context.Context, nameContains, categoryContains string) ([]models.Service, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if nameContains != "" {
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(nameContains), "$options": "i"}
	}
	if categoryContains != "" {
		filter["category"] = bson.M{"$regex": regexp.QuoteMeta(categoryContains), "$options": "i"}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to scan services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetByProvider returns every listing owned by a provider, all statuses.
func (r *MongoServiceRepo) GetByProvider(ctx context.Context, providerID string) ([]models.Service, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetByIDs resolves a batch of service ids, chunking to the store's batch
// limit. Ids that no longer resolve are dropped, not errors: they denote
// listings deleted since the reference was created.
func (r *MongoServiceRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	var services []models.Service
	for start := 0; start < len(ids); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(ids) {
			end = len(ids)
		}
		chunk, err := r.getBatch(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		services = append(services, chunk...)
	}
	return services, nil
}

func (r *MongoServiceRepo) getBatch(ctx context.Context, ids []string) ([]models.Service, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to batch-fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
