package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

// Post is immutable after creation except for the derived counts,
// which are computed on read and never stored on the row itself.
type Post struct {
	Id           uuid.UUID `json:"id"`
	AuthorId     uuid.UUID `json:"-"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	ImageUrl     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	LikedByMe    bool      `json:"likedByMe"`
}

// Key returns the chronological sort-key tuple of the post.
func (p Post) Key() pagination.Cursor {
	return pagination.Cursor{CreatedAt: p.CreatedAt, Id: p.Id}
}

// PopularPost is a post annotated with its read-time popularity score.
// The score only drives ordering and cursors, it is not part of the DTO.
type PopularPost struct {
	Post
	Score int64 `json:"-"`
}

// RankedKey returns the ranked sort-key tuple (score, createdAt, id).
func (p PopularPost) RankedKey() pagination.RankedCursor {
	return pagination.RankedCursor{Score: p.Score, CreatedAt: p.CreatedAt, Id: p.Id}
}

type PostsPage struct {
	Items      []Post             `json:"items"`
	NextCursor *pagination.Cursor `json:"nextCursor"`
}

type PopularPostsPage struct {
	Items      []PopularPost            `json:"items"`
	NextCursor *pagination.RankedCursor `json:"nextCursor"`
}
