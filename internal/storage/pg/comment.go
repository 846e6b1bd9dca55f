package pg

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

func (s *Storage) CreateComment(postId uuid.UUID, author domain.User, content string) (domain.Comment, error) {
	comment := domain.Comment{
		Id:        uuid.New(),
		PostId:    postId,
		Author:    author.DisplayName,
		Content:   content,
		CreatedAt: nowTs(),
	}
	_, err := s.db.Exec(`
	INSERT INTO comments(id, post_id, author_id, content, created_at)
	VALUES($1, $2, $3, $4, $5)`,
		comment.Id, comment.PostId, author.Id, comment.Content, comment.CreatedAt)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to insert comment: %w", err)
	}
	return comment, nil
}

// ListComments pages a post's comments newest first with the same strict
// keyset contract as the post feeds.
func (s *Storage) ListComments(postId uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Comment, error) {
	query := `
	SELECT c.id, c.post_id, u.display_name, c.content, c.created_at
	FROM comments c
	JOIN users u ON u.id = c.author_id
	WHERE c.post_id = $1`
	args := []interface{}{postId}

	if cursor != nil {
		query += " AND (c.created_at, c.id) < ($2, $3)"
		args = append(args, cursor.CreatedAt, cursor.Id)
	}
	query += fmt.Sprintf("\n\tORDER BY c.created_at DESC, c.id DESC\n\tLIMIT $%d", len(args)+1)
	args = append(args, fetch)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	return scanComments(rows)
}

func scanComments(rows *sql.Rows) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
