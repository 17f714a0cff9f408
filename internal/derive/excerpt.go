package derive

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExcerptMaxLength is the default bound for derived excerpts.
const ExcerptMaxLength = 200

var tagRe = regexp.MustCompile(`<[^>]+>`)

// Excerpt derives a bounded summary from content: markup-like tags are
// stripped, and content longer than maxLength characters is cut at the last
// whitespace
// boundary before the limit (hard cut when there is none) with an ellipsis
// appended. Empty content yields an empty excerpt.
func Excerpt(content string, maxLength int) string {
	clean := tagRe.ReplaceAllString(content, "")
	if utf8.RuneCountInString(clean) <= maxLength {
		return clean
	}

	truncated := string([]rune(clean)[:maxLength])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
