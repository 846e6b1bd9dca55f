package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

// postSelect is the shared projection for post queries. Like and comment
// counts are live subselects, there is no denormalized counter to drift.
const postSelect = `
	SELECT
		p.id,
		p.author_id,
		u.display_name,
		p.content,
		COALESCE(p.image_url, ''),
		p.created_at,
		(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (s *Storage) CreatePost(author domain.User, content, imageUrl string) (domain.Post, error) {
	post := domain.Post{
		Id:        uuid.New(),
		AuthorId:  author.Id,
		Author:    author.DisplayName,
		Content:   content,
		ImageUrl:  imageUrl,
		CreatedAt: nowTs(),
	}
	_, err := s.db.Exec(`
	INSERT INTO posts(id, author_id, content, image_url, created_at)
	VALUES($1, $2, $3, NULLIF($4, ''), $5)`,
		post.Id, post.AuthorId, post.Content, post.ImageUrl, post.CreatedAt)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

func (s *Storage) GetPost(id uuid.UUID) (domain.Post, error) {
	var post domain.Post
	err := s.db.QueryRow(postSelect+`
	WHERE p.id = $1`, id).Scan(
		&post.Id, &post.AuthorId, &post.Author, &post.Content, &post.ImageUrl,
		&post.CreatedAt, &post.LikeCount, &post.CommentCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return post, nil
}

// DeletePost removes the post with its likes and comments in one
// transaction.
func (s *Storage) DeletePost(id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM post_likes WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete post likes: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM comments WHERE post_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}
		result, err := tx.Exec("DELETE FROM posts WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if deleted == 0 {
			return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return nil
	})
}

func (s *Storage) ListPosts(fetch int, cursor *pagination.Cursor) ([]domain.Post, error) {
	return s.listPosts("", nil, fetch, cursor)
}

func (s *Storage) ListPostsByAuthor(authorId uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Post, error) {
	return s.listPosts("p.author_id = $1", []interface{}{authorId}, fetch, cursor)
}

func (s *Storage) ListPostsByAuthors(authorIds []uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Post, error) {
	ids := make([]string, len(authorIds))
	for i, id := range authorIds {
		ids[i] = id.String()
	}
	return s.listPosts("p.author_id = ANY($1)", []interface{}{pq.Array(ids)}, fetch, cursor)
}

// listPosts runs the shared keyset query. The cursor turns into a strict
// row comparison, so rows equal to the cursor key are never repeated and
// rows inserted after the cursor never surface on later pages.
func (s *Storage) listPosts(extraWhere string, args []interface{}, fetch int, cursor *pagination.Cursor) ([]domain.Post, error) {
	var where []string
	if extraWhere != "" {
		where = append(where, extraWhere)
	}
	if cursor != nil {
		where = append(where, fmt.Sprintf("(p.created_at, p.id) < ($%d, $%d)", len(args)+1, len(args)+2))
		args = append(args, cursor.CreatedAt, cursor.Id)
	}

	query := postSelect
	if len(where) > 0 {
		query += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf("\n\tORDER BY p.created_at DESC, p.id DESC\n\tLIMIT $%d", len(args)+1)
	args = append(args, fetch)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		var post domain.Post
		err := rows.Scan(&post.Id, &post.AuthorId, &post.Author, &post.Content, &post.ImageUrl,
			&post.CreatedAt, &post.LikeCount, &post.CommentCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// LikedPostIds returns which of the given posts the user liked, one query
// for the whole page.
func (s *Storage) LikedPostIds(userId uuid.UUID, postIds []uuid.UUID) (map[uuid.UUID]bool, error) {
	ids := make([]string, len(postIds))
	for i, id := range postIds {
		ids[i] = id.String()
	}
	rows, err := s.db.Query(`
	SELECT post_id FROM post_likes
	WHERE user_id = $1 AND post_id = ANY($2)`, userId, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query liked posts: %w", err)
	}
	defer rows.Close()

	liked := map[uuid.UUID]bool{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan liked post id: %w", err)
		}
		liked[id] = true
	}
	return liked, rows.Err()
}
