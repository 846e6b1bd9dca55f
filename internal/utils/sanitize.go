package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var contentPolicy = bluemonday.StrictPolicy()

// SanitizeContent strips any markup from user-submitted post/comment text.
// Content is stored and served as plain text.
func SanitizeContent(text string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(text))
}
