package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/config"
	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/middleware"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
	"github.com/pulsefeed-dev/pulsefeed/internal/sse"
)

// MockPostService implements service.PostService
type MockPostService struct {
	MockCreate       func(author domain.User, content, imageUrl string) (domain.Post, error)
	MockSnapshot     func(postId uuid.UUID, viewerId *uuid.UUID) (domain.Post, error)
	MockDelete       func(postId uuid.UUID, requester domain.User) error
	MockLike         func(postId uuid.UUID, user domain.User) (domain.Post, error)
	MockUnlike       func(postId uuid.UUID, user domain.User) (domain.Post, error)
	MockAddComment   func(postId uuid.UUID, content string, author domain.User) (domain.Comment, error)
	MockListComments func(postId uuid.UUID, limit int, cursor *pagination.Cursor) (domain.CommentsPage, error)
	MockList         func(limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error)
	MockListByAuthor func(displayName string, limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error)
	MockListHome     func(viewer domain.User, limit int, cursor *pagination.Cursor) (domain.PostsPage, error)
}

func (m *MockPostService) Create(author domain.User, content, imageUrl string) (domain.Post, error) {
	if m.MockCreate != nil {
		return m.MockCreate(author, content, imageUrl)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Snapshot(postId uuid.UUID, viewerId *uuid.UUID) (domain.Post, error) {
	if m.MockSnapshot != nil {
		return m.MockSnapshot(postId, viewerId)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Delete(postId uuid.UUID, requester domain.User) error {
	if m.MockDelete != nil {
		return m.MockDelete(postId, requester)
	}
	return nil
}

func (m *MockPostService) Like(postId uuid.UUID, user domain.User) (domain.Post, error) {
	if m.MockLike != nil {
		return m.MockLike(postId, user)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Unlike(postId uuid.UUID, user domain.User) (domain.Post, error) {
	if m.MockUnlike != nil {
		return m.MockUnlike(postId, user)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) AddComment(postId uuid.UUID, content string, author domain.User) (domain.Comment, error) {
	if m.MockAddComment != nil {
		return m.MockAddComment(postId, content, author)
	}
	return domain.Comment{}, nil
}

func (m *MockPostService) ListComments(postId uuid.UUID, limit int, cursor *pagination.Cursor) (domain.CommentsPage, error) {
	if m.MockListComments != nil {
		return m.MockListComments(postId, limit, cursor)
	}
	return domain.CommentsPage{}, nil
}

func (m *MockPostService) List(limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error) {
	if m.MockList != nil {
		return m.MockList(limit, cursor, viewerId)
	}
	return domain.PostsPage{}, nil
}

func (m *MockPostService) ListByAuthor(displayName string, limit int, cursor *pagination.Cursor, viewerId *uuid.UUID) (domain.PostsPage, error) {
	if m.MockListByAuthor != nil {
		return m.MockListByAuthor(displayName, limit, cursor, viewerId)
	}
	return domain.PostsPage{}, nil
}

func (m *MockPostService) ListHome(viewer domain.User, limit int, cursor *pagination.Cursor) (domain.PostsPage, error) {
	if m.MockListHome != nil {
		return m.MockListHome(viewer, limit, cursor)
	}
	return domain.PostsPage{}, nil
}

// MockPopularService implements service.PopularService
type MockPopularService struct {
	MockListPopular func(rng string, limit int, cursor *pagination.RankedCursor, viewerId *uuid.UUID) (domain.PopularPostsPage, error)
}

func (m *MockPopularService) ListPopular(rng string, limit int, cursor *pagination.RankedCursor, viewerId *uuid.UUID) (domain.PopularPostsPage, error) {
	if m.MockListPopular != nil {
		return m.MockListPopular(rng, limit, cursor, viewerId)
	}
	return domain.PopularPostsPage{}, nil
}

// MockFollowService implements service.FollowService
type MockFollowService struct {
	MockFollow   func(follower domain.User, targetDisplayName string) error
	MockUnfollow func(follower domain.User, targetDisplayName string) error
	MockStats    func(viewerId *uuid.UUID, displayName string) (domain.FollowStats, error)
}

func (m *MockFollowService) Follow(follower domain.User, targetDisplayName string) error {
	if m.MockFollow != nil {
		return m.MockFollow(follower, targetDisplayName)
	}
	return nil
}

func (m *MockFollowService) Unfollow(follower domain.User, targetDisplayName string) error {
	if m.MockUnfollow != nil {
		return m.MockUnfollow(follower, targetDisplayName)
	}
	return nil
}

func (m *MockFollowService) Stats(viewerId *uuid.UUID, displayName string) (domain.FollowStats, error) {
	if m.MockStats != nil {
		return m.MockStats(viewerId, displayName)
	}
	return domain.FollowStats{}, nil
}

// MockUserService implements service.UserService
type MockUserService struct {
	MockSearch    func(q string, limit int) ([]domain.UserSummary, error)
	MockProfile   func(displayName string) (domain.User, error)
	MockUpdateBio func(userId uuid.UUID, bio string) (domain.User, error)
}

func (m *MockUserService) Search(q string, limit int) ([]domain.UserSummary, error) {
	if m.MockSearch != nil {
		return m.MockSearch(q, limit)
	}
	return []domain.UserSummary{}, nil
}

func (m *MockUserService) Profile(displayName string) (domain.User, error) {
	if m.MockProfile != nil {
		return m.MockProfile(displayName)
	}
	return domain.User{}, nil
}

func (m *MockUserService) UpdateBio(userId uuid.UUID, bio string) (domain.User, error) {
	if m.MockUpdateBio != nil {
		return m.MockUpdateBio(userId, bio)
	}
	return domain.User{}, nil
}

// MockAuthService implements service.AuthService
type MockAuthService struct {
	MockRegister func(displayName, email, password string) (domain.User, string, error)
	MockLogin    func(email, password string) (domain.User, string, error)
	MockUserById func(id uuid.UUID) (domain.User, error)
}

func (m *MockAuthService) Register(displayName, email, password string) (domain.User, string, error) {
	if m.MockRegister != nil {
		return m.MockRegister(displayName, email, password)
	}
	return domain.User{}, "", nil
}

func (m *MockAuthService) Login(email, password string) (domain.User, string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(email, password)
	}
	return domain.User{}, "", nil
}

func (m *MockAuthService) UserById(id uuid.UUID) (domain.User, error) {
	if m.MockUserById != nil {
		return m.MockUserById(id)
	}
	return domain.User{}, nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{JwtTTL: 3600000000000}}
}

// newTestHandler builds a handler around the given mocks, nil mocks get
// zero-value defaults.
func newTestHandler(post *MockPostService, popular *MockPopularService, follow *MockFollowService, auth *MockAuthService, user *MockUserService) *Handler {
	if post == nil {
		post = &MockPostService{}
	}
	if popular == nil {
		popular = &MockPopularService{}
	}
	if follow == nil {
		follow = &MockFollowService{}
	}
	if auth == nil {
		auth = &MockAuthService{}
	}
	if user == nil {
		user = &MockUserService{}
	}
	return New(auth, post, popular, follow, user, sse.NewHub(), testConfig())
}

// newTestRouter registers the routes the tests exercise.
func newTestRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/posts", h.Feed)
	r.Post("/api/posts", h.CreatePost)
	r.Get("/api/posts/{postId}", h.GetPost)
	r.Delete("/api/posts/{postId}", h.DeletePost)
	r.Post("/api/posts/{postId}/likes", h.LikePost)
	r.Delete("/api/posts/{postId}/likes", h.UnlikePost)
	r.Post("/api/posts/{postId}/comments", h.AddComment)
	r.Get("/api/posts/{postId}/comments", h.ListComments)
	r.Get("/api/users/search", h.SearchUsers)
	r.Get("/api/users/{displayName}", h.UserProfile)
	r.Put("/api/users/me", h.UpdateMe)
	r.Get("/api/users/{displayName}/posts", h.AuthorFeed)
	r.Post("/api/users/{displayName}/follow", h.Follow)
	r.Delete("/api/users/{displayName}/follow", h.Unfollow)
	r.Get("/api/users/{displayName}/follow-stats", h.FollowStats)
	r.Get("/api/home", h.HomeFeed)
	r.Get("/api/popular", h.PopularFeed)
	r.Get("/api/stream/posts", h.StreamPosts)
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Post("/api/auth/logout", h.Logout)
	r.Get("/api/auth/me", h.Me)
	return r
}

// asUser injects an authenticated user the way the auth middleware does.
func asUser(req *http.Request, user domain.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserClaimsKey, &user)
	return req.WithContext(ctx)
}

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

func doRequest(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rr, req)
	return rr
}
