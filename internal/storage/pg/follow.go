package pg

import (
	"fmt"

	"github.com/google/uuid"
)

// CreateFollow records a follow edge. Following an already followed user
// is a no-op.
func (s *Storage) CreateFollow(followerId, followeeId uuid.UUID) error {
	_, err := s.db.Exec(`
	INSERT INTO user_follows(follower_id, followee_id, created_at)
	VALUES($1, $2, $3)
	ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerId, followeeId, nowTs())
	if err != nil {
		return fmt.Errorf("failed to insert follow: %w", err)
	}
	return nil
}

func (s *Storage) DeleteFollow(followerId, followeeId uuid.UUID) error {
	_, err := s.db.Exec("DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2", followerId, followeeId)
	if err != nil {
		return fmt.Errorf("failed to delete follow: %w", err)
	}
	return nil
}

func (s *Storage) IsFollowing(followerId, followeeId uuid.UUID) (bool, error) {
	var following bool
	err := s.db.QueryRow(`
	SELECT EXISTS(SELECT 1 FROM user_follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerId, followeeId).Scan(&following)
	if err != nil {
		return false, fmt.Errorf("failed to query follow edge: %w", err)
	}
	return following, nil
}

func (s *Storage) CountFollowers(userId uuid.UUID) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM user_follows WHERE followee_id = $1", userId).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return n, nil
}

func (s *Storage) CountFollowing(userId uuid.UUID) (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM user_follows WHERE follower_id = $1", userId).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return n, nil
}

func (s *Storage) FolloweeIds(followerId uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query("SELECT followee_id FROM user_follows WHERE follower_id = $1", followerId)
	if err != nil {
		return nil, fmt.Errorf("failed to query followees: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan followee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
