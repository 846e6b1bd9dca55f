package service

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
)

type FollowService interface {
	Follow(follower domain.User, targetDisplayName string) error
	Unfollow(follower domain.User, targetDisplayName string) error
	Stats(viewerId *uuid.UUID, displayName string) (domain.FollowStats, error)
}

type FollowStorage interface {
	CreateFollow(followerId, followeeId uuid.UUID) error
	DeleteFollow(followerId, followeeId uuid.UUID) error
	IsFollowing(followerId, followeeId uuid.UUID) (bool, error)
	CountFollowers(userId uuid.UUID) (int64, error)
	CountFollowing(userId uuid.UUID) (int64, error)
	FolloweeIds(followerId uuid.UUID) ([]uuid.UUID, error)
}

type UserStorage interface {
	UserByDisplayName(displayName string) (domain.User, error)
}

type Follow struct {
	storage FollowStorage
	users   UserStorage
}

func NewFollow(storage FollowStorage, users UserStorage) FollowService {
	return &Follow{storage, users}
}

// Follow creates the follow edge. At most one edge per pair exists and
// self-follows are rejected.
func (s *Follow) Follow(follower domain.User, targetDisplayName string) error {
	target, err := s.users.UserByDisplayName(targetDisplayName)
	if err != nil {
		return err
	}
	if follower.Id == target.Id {
		return &internal_errors.ErrorWithStatusCode{Message: "Cannot follow yourself", StatusCode: http.StatusBadRequest}
	}
	return s.storage.CreateFollow(follower.Id, target.Id)
}

func (s *Follow) Unfollow(follower domain.User, targetDisplayName string) error {
	target, err := s.users.UserByDisplayName(targetDisplayName)
	if err != nil {
		return err
	}
	return s.storage.DeleteFollow(follower.Id, target.Id)
}

func (s *Follow) Stats(viewerId *uuid.UUID, displayName string) (domain.FollowStats, error) {
	user, err := s.users.UserByDisplayName(displayName)
	if err != nil {
		return domain.FollowStats{}, err
	}

	followers, err := s.storage.CountFollowers(user.Id)
	if err != nil {
		return domain.FollowStats{}, err
	}
	following, err := s.storage.CountFollowing(user.Id)
	if err != nil {
		return domain.FollowStats{}, err
	}

	followingByMe := false
	if viewerId != nil {
		followingByMe, err = s.storage.IsFollowing(*viewerId, user.Id)
		if err != nil {
			return domain.FollowStats{}, err
		}
	}

	return domain.FollowStats{
		DisplayName:   user.DisplayName,
		Followers:     followers,
		Following:     following,
		FollowingByMe: followingByMe,
	}, nil
}
