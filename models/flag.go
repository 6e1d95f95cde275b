package models

import "time"

// Flaggable content kinds.
const (
	ContentForumPost    = "FORUM_POST"
	ContentForumComment = "FORUM_COMMENT"
	ContentReview       = "REVIEW"
)

// Flag reasons.
const (
	ReasonSpam           = "SPAM"
	ReasonOffensive      = "OFFENSIVE"
	ReasonHarassment     = "HARASSMENT"
	ReasonMisinformation = "MISINFORMATION"
	ReasonOther          = "OTHER"
)

// Flag statuses. PENDING is the only non-terminal state.
const (
	FlagPending   = "PENDING"
	FlagDismissed = "DISMISSED"
	FlagRevoked   = "REVOKED"
)

// Adjudication actions accepted from admins.
const (
	FlagActionDismiss = "dismiss"
	FlagActionRevoke  = "revoke"
)

// Flag is a user report against a piece of content. The Content* fields are a
// snapshot captured at creation time so the flag stays interpretable after
// the underlying content is edited or removed.
type Flag struct {
	FlagID      int64  `bson:"flag_id" json:"flagId"`
	ContentType string `bson:"content_type" json:"contentType"`
	ObjectID    string `bson:"object_id" json:"objectId"`
	Flagger     string `bson:"flagger" json:"flagger"`
	Reason      string `bson:"reason" json:"reason"`
	Explanation string `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Status      string `bson:"status" json:"status"`

	ContentTitle   string   `bson:"content_title,omitempty" json:"contentTitle,omitempty"`
	ContentPreview string   `bson:"content_preview" json:"contentPreview"`
	ContentAuthor  string   `bson:"content_author" json:"contentAuthor"`
	ContentRating  *float64 `bson:"content_rating,omitempty" json:"contentRating,omitempty"`

	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	ReviewedBy string     `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
}

// Terminal reports whether the flag has been adjudicated.
func (f *Flag) Terminal() bool {
	return f.Status == FlagDismissed || f.Status == FlagRevoked
}

// FlagStatusSummary is the read-only aggregate returned by the flag status
// check endpoint, consumed by UI badges.
type FlagStatusSummary struct {
	HasPendingFlags     bool `json:"hasPendingFlags"`
	PendingFlagsCount   int  `json:"pendingFlagsCount"`
	RequesterHasFlagged bool `json:"userHasFlagged"`
}

// ValidContentType reports whether t names a flaggable content kind.
func ValidContentType(t string) bool {
	switch t {
	case ContentForumPost, ContentForumComment, ContentReview:
		return true
	}
	return false
}

// ValidFlagReason reports whether r is a known flag reason.
func ValidFlagReason(r string) bool {
	switch r {
	case ReasonSpam, ReasonOffensive, ReasonHarassment, ReasonMisinformation, ReasonOther:
		return true
	}
	return false
}
