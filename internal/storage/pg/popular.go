package pg

import (
	"fmt"
	"time"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

// PopularPosts returns posts created at or after since, ranked by
// score = likes*2 + comments computed from current counts. The score is
// part of the sort key, so a strict row comparison against the cursor
// continues the scroll without repeats even when counts shift between
// pages.
func (s *Storage) PopularPosts(since time.Time, fetch int, cursor *pagination.RankedCursor) ([]domain.PopularPost, error) {
	query := `
	SELECT id, author_id, display_name, content, image_url, created_at, like_count, comment_count, score
	FROM (
		SELECT
			p.id,
			p.author_id,
			u.display_name,
			p.content,
			COALESCE(p.image_url, '') AS image_url,
			p.created_at,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) * 2
				+ (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS score
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.created_at >= $1
	) ranked`
	args := []interface{}{since}

	if cursor != nil {
		query += "\n\tWHERE (score, created_at, id) < ($2, $3, $4)"
		args = append(args, cursor.Score, cursor.CreatedAt, cursor.Id)
	}
	query += fmt.Sprintf("\n\tORDER BY score DESC, created_at DESC, id DESC\n\tLIMIT $%d", len(args)+1)
	args = append(args, fetch)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.PopularPost{}
	for rows.Next() {
		var p domain.PopularPost
		err := rows.Scan(&p.Id, &p.AuthorId, &p.Author, &p.Content, &p.ImageUrl,
			&p.CreatedAt, &p.LikeCount, &p.CommentCount, &p.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to scan popular post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
