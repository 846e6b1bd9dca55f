package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

type PopularService interface {
	ListPopular(rng string, limit int, cursor *pagination.RankedCursor, viewerId *uuid.UUID) (domain.PopularPostsPage, error)
}

type PopularStorage interface {
	// PopularPosts returns posts created at or after since, ordered by
	// (score, createdAt, id) descending, continuing strictly past cursor.
	PopularPosts(since time.Time, fetch int, cursor *pagination.RankedCursor) ([]domain.PopularPost, error)
	LikedPostIds(userId uuid.UUID, postIds []uuid.UUID) (map[uuid.UUID]bool, error)
}

type Popular struct {
	storage PopularStorage
	now     func() time.Time
}

func NewPopular(storage PopularStorage) PopularService {
	return &Popular{storage: storage, now: time.Now}
}

// windowFor maps a range string to its lookback window. Unrecognized
// values fall back to the last 24 hours.
func windowFor(rng string) time.Duration {
	switch strings.ToLower(rng) {
	case "week", "7d":
		return 7 * 24 * time.Hour
	case "day", "24h":
		return 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// ListPopular pages posts ranked by score = likes*2 + comments, computed
// from current counts at query time. Scores are not cached between
// pages of the same scroll session.
func (s *Popular) ListPopular(rng string, limit int, cursor *pagination.RankedCursor, viewerId *uuid.UUID) (domain.PopularPostsPage, error) {
	limit = pagination.ClampLimit(limit)
	since := s.now().Add(-windowFor(rng))

	rows, err := s.storage.PopularPosts(since, limit+1, cursor)
	if err != nil {
		return domain.PopularPostsPage{}, err
	}

	items, next := pagination.BuildPage(rows, limit, domain.PopularPost.RankedKey)

	if viewerId != nil && len(items) > 0 {
		ids := make([]uuid.UUID, len(items))
		for i, p := range items {
			ids[i] = p.Id
		}
		liked, err := s.storage.LikedPostIds(*viewerId, ids)
		if err != nil {
			return domain.PopularPostsPage{}, err
		}
		for i := range items {
			items[i].LikedByMe = liked[items[i].Id]
		}
	}

	if items == nil {
		items = []domain.PopularPost{}
	}
	return domain.PopularPostsPage{Items: items, NextCursor: next}, nil
}
