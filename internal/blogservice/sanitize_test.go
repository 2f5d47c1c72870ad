package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripParagraphWrapper(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "Hello, World!",
			want:  "Hello, World!",
		},
		{
			name:  "wrapped text",
			input: "<p>Hello, World!</p>",
			want:  "Hello, World!",
		},
		{
			name:  "wrapper with surrounding whitespace",
			input: "  <p>Hello</p>\n",
			want:  "Hello",
		},
		{
			name:  "inner markup kept",
			input: "<p>Hello <b>there</b></p>",
			want:  "Hello <b>there</b>",
		},
		{
			name:  "only leading wrapper",
			input: "<p>unclosed",
			want:  "unclosed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripParagraphWrapper(tc.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Hello, World!",
			want:  "Hello, World!",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "uppercase script tag",
			input: `before<SCRIPT SRC="evil.js"></SCRIPT>after`,
			want:  "beforeafter",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeHTML(tc.input))
		})
	}
}
