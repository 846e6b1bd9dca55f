package errors

import "errors"

// ErrInvalidCursor marks a malformed or stale pagination token.
// Callers recover by treating the request as a first-page request,
// so this never surfaces as an HTTP error.
var ErrInvalidCursor = errors.New("invalid cursor")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
