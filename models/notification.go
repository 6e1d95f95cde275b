package models

import "time"

// Notification types.
const (
	NotificationComment      = "comment"
	NotificationReview       = "review"
	NotificationFlag         = "flag"
	NotificationFlagAdmin    = "flag_admin"
	NotificationFlagReviewed = "flag_reviewed"
)

// Notification is an in-app notice for a user. It is written durably when the
// triggering event happens; Sent flips once the delivery worker has pushed it.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Recipient string    `bson:"recipient" json:"recipient"`
	Sender    string    `bson:"sender,omitempty" json:"sender,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Type      string    `bson:"type" json:"type"`
	PostID    string    `bson:"post_id,omitempty" json:"postId,omitempty"`
	CommentID string    `bson:"comment_id,omitempty" json:"commentId,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	Sent      bool      `bson:"sent" json:"sent"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
