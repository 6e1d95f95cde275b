package models

import "time"

// Account types.
const (
	UserTypeSeeker   = "service_seeker"
	UserTypeProvider = "service_provider"
)

// User is an account record. Authentication lives elsewhere; this layer only
// needs identity, role and the admin bit.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	UserType  string    `bson:"user_type" json:"userType"`
	IsAdmin   bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}
