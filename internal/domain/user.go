package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	PassHash    string    `json:"-"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserSummary is the lightweight shape search results use; no email, no
// timestamps.
type UserSummary struct {
	Id          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
}

// FollowStats describes the follow edges around one user,
// annotated for the viewer that requested them.
type FollowStats struct {
	DisplayName   string `json:"displayName"`
	Followers     int64  `json:"followers"`
	Following     int64  `json:"following"`
	FollowingByMe bool   `json:"followingByMe"`
}
