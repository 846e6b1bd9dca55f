package service

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	internal_errors "github.com/pulsefeed-dev/pulsefeed/internal/errors"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
	"github.com/pulsefeed-dev/pulsefeed/internal/utils"
)

type PostService interface {
	Create(author domain.User, content, imageUrl string) (domain.Post, error)
	Snapshot(postId uuid.UUID, viewerId *uuid.UUID) (domain.Post, error)
	Delete(postId uuid.UUID, requester domain.User) error
	Like(postId uuid.UUID, user domain.User) (domain.Post, error)
	Unlike(postId uuid.UUID, user domain.User) (domain.Post, error)
	AddComment(postId uuid.UUID, content string, author domain.User) (domain.Comment, error)
	ListComments(postId uuid.UUID, limit int, cursor *pagination.Cursor) (domain.CommentsPage, error)
	List(limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error)
	ListByAuthor(displayName string, limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error)
	ListHome(viewer domain.User, limit int, cursor *pagination.Cursor) (domain.PostsPage, error)
}

type PostStorage interface {
	CreatePost(author domain.User, content, imageUrl string) (domain.Post, error)
	GetPost(id uuid.UUID) (domain.Post, error)
	DeletePost(id uuid.UUID) error
	ListPosts(fetch int, cursor *pagination.Cursor) ([]domain.Post, error)
	ListPostsByAuthor(authorId uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Post, error)
	ListPostsByAuthors(authorIds []uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Post, error)
	LikePost(postId, userId uuid.UUID) error
	UnlikePost(postId, userId uuid.UUID) error
	CreateComment(postId uuid.UUID, author domain.User, content string) (domain.Comment, error)
	ListComments(postId uuid.UUID, fetch int, cursor *pagination.Cursor) ([]domain.Comment, error)
	LikedPostIds(userId uuid.UUID, postIds []uuid.UUID) (map[uuid.UUID]bool, error)
}

type Post struct {
	storage PostStorage
	users   UserStorage
	follows FollowStorage
}

func NewPost(storage PostStorage, users UserStorage, follows FollowStorage) PostService {
	return &Post{storage, users, follows}
}

func (s *Post) Create(author domain.User, content, imageUrl string) (domain.Post, error) {
	content = utils.SanitizeContent(content)
	if content == "" {
		return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post content is empty", StatusCode: http.StatusBadRequest}
	}
	return s.storage.CreatePost(author, content, imageUrl)
}

func (s *Post) Snapshot(postId uuid.UUID, viewerId *uuid.UUID) (domain.Post, error) {
	post, err := s.storage.GetPost(postId)
	if err != nil {
		return domain.Post{}, err
	}
	annotated, err := s.annotateLiked([]domain.Post{post}, viewerId)
	if err != nil {
		return domain.Post{}, err
	}
	return annotated[0], nil
}

// Delete removes a post together with its likes and comments.
// Only the owner may delete; the check happens before any state change.
func (s *Post) Delete(postId uuid.UUID, requester domain.User) error {
	post, err := s.storage.GetPost(postId)
	if err != nil {
		return err
	}
	if post.AuthorId != requester.Id {
		return &internal_errors.ErrorWithStatusCode{Message: "Not allowed to delete this post", StatusCode: http.StatusForbidden}
	}
	return s.storage.DeletePost(postId)
}

func (s *Post) Like(postId uuid.UUID, user domain.User) (domain.Post, error) {
	if _, err := s.storage.GetPost(postId); err != nil {
		return domain.Post{}, err
	}
	if err := s.storage.LikePost(postId, user.Id); err != nil {
		return domain.Post{}, err
	}
	return s.Snapshot(postId, &user.Id)
}

func (s *Post) Unlike(postId uuid.UUID, user domain.User) (domain.Post, error) {
	if _, err := s.storage.GetPost(postId); err != nil {
		return domain.Post{}, err
	}
	if err := s.storage.UnlikePost(postId, user.Id); err != nil {
		return domain.Post{}, err
	}
	return s.Snapshot(postId, &user.Id)
}

func (s *Post) AddComment(postId uuid.UUID, content string, author domain.User) (domain.Comment, error) {
	content = utils.SanitizeContent(content)
	if content == "" {
		return domain.Comment{}, &internal_errors.ErrorWithStatusCode{Message: "Comment content is empty", StatusCode: http.StatusBadRequest}
	}
	if _, err := s.storage.GetPost(postId); err != nil {
		return domain.Comment{}, err
	}
	return s.storage.CreateComment(postId, author, content)
}

func (s *Post) ListComments(postId uuid.UUID, limit int, cursor *pagination.Cursor) (domain.CommentsPage, error) {
	limit = pagination.ClampLimit(limit)
	rows, err := s.storage.ListComments(postId, limit+1, cursor)
	if err != nil {
		return domain.CommentsPage{}, err
	}
	items, next := pagination.BuildPage(rows, limit, domain.Comment.Key)
	return domain.CommentsPage{Items: items, NextCursor: next}, nil
}

func (s *Post) List(limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error) {
	limit = pagination.ClampLimit(limit)
	rows, err := s.storage.ListPosts(limit+1, cursor)
	if err != nil {
		return domain.PostsPage{}, err
	}
	return s.buildPostsPage(rows, limit, viewerId)
}

func (s *Post) ListByAuthor(displayName string, limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error) {
	author, err := s.users.UserByDisplayName(displayName)
	if err != nil {
		return domain.PostsPage{}, err
	}
	limit = pagination.ClampLimit(limit)
	rows, err := s.storage.ListPostsByAuthor(author.Id, limit+1, cursor)
	if err != nil {
		return domain.PostsPage{}, err
	}
	return s.buildPostsPage(rows, limit, viewerId)
}

// ListHome pages posts from the viewer's follow set. An empty follow set
// is a terminal empty page, not an error.
func (s *Post) ListHome(viewer domain.User, limit int, cursor *pagination.Cursor) (domain.PostsPage, error) {
	followeeIds, err := s.follows.FolloweeIds(viewer.Id)
	if err != nil {
		return domain.PostsPage{}, err
	}
	if len(followeeIds) == 0 {
		return domain.PostsPage{Items: []domain.Post{}}, nil
	}
	limit = pagination.ClampLimit(limit)
	rows, err := s.storage.ListPostsByAuthors(followeeIds, limit+1, cursor)
	if err != nil {
		return domain.PostsPage{}, err
	}
	return s.buildPostsPage(rows, limit, &viewer.Id)
}

func (s *Post) buildPostsPage(rows []domain.Post, limit int, viewerId *uuid.UUID) (domain.PostsPage, error) {
	items, next := pagination.BuildPage(rows, limit, domain.Post.Key)
	items, err := s.annotateLiked(items, viewerId)
	if err != nil {
		return domain.PostsPage{}, err
	}
	if items == nil {
		items = []domain.Post{}
	}
	return domain.PostsPage{Items: items, NextCursor: next}, nil
}

// annotateLiked marks which of the page's posts the viewer liked, with a
// single batched lookup keyed by the page's ids.
func (s *Post) annotateLiked(posts []domain.Post, viewerId *uuid.UUID) ([]domain.Post, error) {
	if viewerId == nil || len(posts) == 0 {
		return posts, nil
	}
	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.Id
	}
	liked, err := s.storage.LikedPostIds(*viewerId, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].LikedByMe = liked[posts[i].Id]
	}
	return posts, nil
}
