package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

const (
	// queries shorter than this return nothing instead of scanning the
	// whole users table
	minSearchQueryLen = 2

	defaultSearchLimit = 8
	maxSearchLimit     = 20

	maxBioLen = 280
)

type UserService interface {
	Search(q string, limit int) ([]domain.UserSummary, error)
	Profile(displayName string) (domain.User, error)
	UpdateBio(userId uuid.UUID, bio string) (domain.User, error)
}

type ProfileStorage interface {
	SearchUsers(q string, limit int) ([]domain.UserSummary, error)
	UserByDisplayNameFold(displayName string) (domain.User, error)
	UpdateUserBio(userId uuid.UUID, bio string) (domain.User, error)
}

type UserProfile struct {
	storage ProfileStorage
}

func NewUser(storage ProfileStorage) UserService {
	return &UserProfile{storage}
}

func (s *UserProfile) Search(q string, limit int) ([]domain.UserSummary, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minSearchQueryLen {
		return []domain.UserSummary{}, nil
	}

	if limit < 1 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.storage.SearchUsers(q, limit)
}

// Profile resolves a public profile by display name, ignoring case.
func (s *UserProfile) Profile(displayName string) (domain.User, error) {
	return s.storage.UserByDisplayNameFold(strings.TrimSpace(displayName))
}

// UpdateBio replaces the user's bio. Markup is stripped and the result is
// truncated to maxBioLen runes.
func (s *UserProfile) UpdateBio(userId uuid.UUID, bio string) (domain.User, error) {
	bio = utils.SanitizeContent(bio)
	if runes := []rune(bio); len(runes) > maxBioLen {
		bio = string(runes[:maxBioLen])
	}
	return s.storage.UpdateUserBio(userId, bio)
}
