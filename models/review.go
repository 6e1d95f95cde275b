package models

import "time"

// Review is a user review of a service. Exactly one review per
// (user, service) is the intended usage, but the store does not enforce it,
// so aggregation code must tolerate duplicates.
type Review struct {
	ReviewID      string     `bson:"review_id" json:"reviewId"`
	ServiceID     string     `bson:"service_id" json:"serviceId"`
	UserID        string     `bson:"user_id" json:"userId"`
	Username      string     `bson:"username" json:"username"`
	RatingStars   int        `bson:"rating_stars" json:"ratingStars"`
	RatingMessage string     `bson:"rating_message" json:"ratingMessage"`
	Timestamp     time.Time  `bson:"timestamp" json:"timestamp"`
	ResponseText  string     `bson:"response_text,omitempty" json:"responseText,omitempty"`
	RespondedAt   *time.Time `bson:"responded_at,omitempty" json:"respondedAt,omitempty"`
}

// ReviewPage is one page of reviews for a service, newest first.
type ReviewPage struct {
	Reviews    []Review `json:"reviews"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	HasNext    bool     `json:"hasNext"`
	HasPrev    bool     `json:"hasPrev"`
}
