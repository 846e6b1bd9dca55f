package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ClampLimit bounds a requested page size to [1, MaxLimit]. Oversized
// requests get the clamped count, never an error.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// BuildPage trims a limit+1 fetch down to the page and derives the
// continuation cursor. rows must already be ordered descending by the
// active sort-key tuple. When more than limit rows came back, the page is
// rows[:limit] and the cursor is the key of the last *returned* item, so
// the strict "< cursor" continuation predicate resumes exactly one row
// past it with no gap and no duplicate. Fewer rows mean end of feed.
func BuildPage[T any, C any](rows []T, limit int, key func(T) C) ([]T, *C) {
	if len(rows) <= limit {
		return rows, nil
	}
	page := rows[:limit]
	next := key(page[len(page)-1])
	return page, &next
}
