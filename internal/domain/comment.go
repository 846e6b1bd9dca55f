package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

type Comment struct {
	Id        uuid.UUID `json:"id"`
	PostId    uuid.UUID `json:"postId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comment) Key() pagination.Cursor {
	return pagination.Cursor{CreatedAt: c.CreatedAt, Id: c.Id}
}

type CommentsPage struct {
	Items      []Comment          `json:"items"`
	NextCursor *pagination.Cursor `json:"nextCursor"`
}
