package pg

import (
	"fmt"

	"github.com/google/uuid"
)

// LikePost records a like. Re-liking an already liked post is a no-op,
// the unique (post_id, user_id) pair makes the operation idempotent.
func (s *Storage) LikePost(postId, userId uuid.UUID) error {
	_, err := s.db.Exec(`
	INSERT INTO post_likes(post_id, user_id, created_at)
	VALUES($1, $2, $3)
	ON CONFLICT (post_id, user_id) DO NOTHING`,
		postId, userId, nowTs())
	if err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// UnlikePost removes the like edge if present. Unliking a post the user
// never liked is a no-op.
func (s *Storage) UnlikePost(postId, userId uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postId, userId)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}
