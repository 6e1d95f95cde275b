package models

import "time"

// Bookmark links a user to a saved service. The primary key is BookmarkId;
// uniqueness of (user, service) is backed by a compound index.
type Bookmark struct {
	BookmarkID string    `bson:"bookmark_id" json:"bookmarkId"`
	UserID     string    `bson:"user_id" json:"userId"`
	ServiceID  string    `bson:"service_id" json:"serviceId"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Bookmark toggle outcomes reported back to the caller.
const (
	BookmarkAdded         = "bookmarked"
	BookmarkAlreadyExists = "already_bookmarked"
	BookmarkRemoved       = "removed"
	BookmarkNotFound      = "not_bookmarked"
)
