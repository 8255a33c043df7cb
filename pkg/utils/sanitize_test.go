package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  Jane  ", "Jane"},
		{"escapes html", "<b>Jane</b>", "&lt;b&gt;Jane&lt;/b&gt;"},
		{"strips backslash escapes", `Jane\'s`, "Jane&#39;s"},
		{"double backslash collapses", `a\\b`, `a\b`},
		{"whitespace only becomes empty", "   \t ", ""},
		{"plain name untouched", "Jane", "Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.input))
		})
	}
}

func TestStripSlashes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `it's`, StripSlashes(`it\'s`))
	assert.Equal(t, `a\b`, StripSlashes(`a\\b`))
	assert.Equal(t, "trailing", StripSlashes(`trailing\`))
	assert.Equal(t, "", StripSlashes(""))
}

func TestSanitizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jane@example.com", SanitizeEmail("  Jane@Example.COM "))
	assert.Equal(t, "jane@example.com", SanitizeEmail("jane@example.com\x00"))
	assert.Equal(t, "jane@example.com", SanitizeEmail(`jane\@example.com`))
}
