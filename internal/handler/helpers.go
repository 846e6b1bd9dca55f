package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pulsefeed-dev/pulsefeed/internal/domain"
	"github.com/pulsefeed-dev/pulsefeed/internal/middleware"
	"github.com/pulsefeed-dev/pulsefeed/internal/pagination"
)

// parseLimit reads the limit query parameter. Absent or unparseable
// values fall back to the default, out-of-range values are clamped
// downstream.
func parseLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return pagination.DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return pagination.DefaultLimit
	}
	return limit
}

// parseCursor accepts either the opaque cursor token or the split
// cursorCreatedAt/cursorId pair. A missing or malformed cursor degrades
// to a first-page request instead of failing.
func parseCursor(r *http.Request) *pagination.Cursor {
	q := r.URL.Query()

	if token := q.Get("cursor"); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil
		}
		return &cursor
	}

	createdAt, ok := parseCursorTime(q.Get("cursorCreatedAt"))
	if !ok {
		return nil
	}
	id, err := uuid.Parse(q.Get("cursorId"))
	if err != nil {
		return nil
	}
	return &pagination.Cursor{CreatedAt: createdAt, Id: id}
}

func parseRankedCursor(r *http.Request) *pagination.RankedCursor {
	q := r.URL.Query()

	if token := q.Get("cursor"); token != "" {
		cursor, err := pagination.DecodeRankedCursor(token)
		if err != nil {
			return nil
		}
		return &cursor
	}

	score, err := strconv.ParseInt(q.Get("cursorScore"), 10, 64)
	if err != nil {
		return nil
	}
	createdAt, ok := parseCursorTime(q.Get("cursorCreatedAt"))
	if !ok {
		return nil
	}
	id, err := uuid.Parse(q.Get("cursorId"))
	if err != nil {
		return nil
	}
	return &pagination.RankedCursor{Score: score, CreatedAt: createdAt, Id: id}
}

func parseCursorTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// viewerId returns the authenticated user's id or nil for anonymous
// requests.
func viewerId(r *http.Request) *uuid.UUID {
	if user := middleware.GetUserFromContext(r); user != nil {
		return &user.Id
	}
	return nil
}

// requireUser is used behind NeedAuth routes; a nil user there means the
// middleware was bypassed, which is a server error.
func requireUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return domain.User{}, false
	}
	return *user, true
}
