package forumRepo

import (
	"context"
	"fmt"
	"time"

	"servicefinder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ForumRepository is the narrow contract the moderation engine needs from the
// forum: resolve flaggable content and tombstone it in place on revocation.
// Full post/comment CRUD lives with the forum surface, not here.
type ForumRepository interface {
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)
	// TombstonePost replaces the post body with the tombstone marker,
	// preserving thread structure.
	TombstonePost(ctx context.Context, postID string) error
	TombstoneComment(ctx context.Context, commentID string) error
}

// MongoForumRepo implements ForumRepository using MongoDB.
type MongoForumRepo struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

// NewMongoForumRepo creates a ForumRepository over the given database.
func NewMongoForumRepo(db *mongo.Database) *MongoForumRepo {
	return &MongoForumRepo{
		posts:    db.Collection("posts"),
		comments: db.Collection("comments"),
	}
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// GetPost returns a post, or (nil, nil) when absent.
func (r *MongoForumRepo) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var post models.Post
	if err := r.posts.FindOne(ctx, bson.M{"id": postID}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch post %s: %w", postID, err)
	}
	return &post, nil
}

// GetComment returns a comment, or (nil, nil) when absent.
func (r *MongoForumRepo) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var comment models.Comment
	if err := r.comments.FindOne(ctx, bson.M{"id": commentID}).Decode(&comment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch comment %s: %w", commentID, err)
	}
	return &comment, nil
}

// TombstonePost blanks a revoked post in place.
func (r *MongoForumRepo) TombstonePost(ctx context.Context, postID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.posts.UpdateOne(ctx, bson.M{"id": postID}, bson.M{"$set": bson.M{
		"title":      models.TombstoneMarker,
		"content":    models.TombstoneMarker,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to tombstone post %s: %w", postID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TombstoneComment blanks a revoked comment in place.
func (r *MongoForumRepo) TombstoneComment(ctx context.Context, commentID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.comments.UpdateOne(ctx, bson.M{"id": commentID}, bson.M{"$set": bson.M{
		"content": models.TombstoneMarker,
	}})
	if err != nil {
		return fmt.Errorf("failed to tombstone comment %s: %w", commentID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
