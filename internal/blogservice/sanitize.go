package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// stripParagraphWrapper removes the leading and trailing paragraph tags that
// rich text editors wrap a submission in. It is not a full HTML sanitizer.
func stripParagraphWrapper(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "<p>")
	text = strings.TrimSuffix(text, "</p>")
	return strings.TrimSpace(text)
}

func sanitizeHTML(text string) string {
	return scriptTagPattern.ReplaceAllString(text, "")
}
