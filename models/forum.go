package models

import "time"

// TombstoneMarker replaces the body of revoked forum content so thread
// structure survives moderation takedowns.
const TombstoneMarker = "[removed by moderators]"

// Post is a forum post. Author fields are denormalized for display.
type Post struct {
	ID         string    `bson:"id" json:"id"`
	CategoryID string    `bson:"category_id" json:"categoryId"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   string    `bson:"author_id" json:"authorId"`
	AuthorName string    `bson:"author_name" json:"authorName"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Comment is a reply on a forum post.
type Comment struct {
	ID         string    `bson:"id" json:"id"`
	PostID     string    `bson:"post_id" json:"postId"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   string    `bson:"author_id" json:"authorId"`
	AuthorName string    `bson:"author_name" json:"authorName"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
