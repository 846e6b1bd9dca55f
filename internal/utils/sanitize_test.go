package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"script stripped", `hi<script>alert("x")</script>`, "hi"},
		{"tags stripped", "<b>bold</b> move", "bold move"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"empty after strip", "<img src=x onerror=alert(1)>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeContent(tt.in))
		})
	}
}
