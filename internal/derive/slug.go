// Package derive holds the pure derivation functions for post metadata:
// URL slugs from titles and plain-text excerpts from content.
package derive

import (
	"fmt"
	"regexp"
	"strings"
)

// fallbackSlugBase is used when a title reduces to an empty base (symbol-only
// titles). Uniqueness suffixing still applies on top of it.
const fallbackSlugBase = "post"

var (
	slugStripRe    = regexp.MustCompile(`[^\pL\pN\s_-]`)
	slugCollapseRe = regexp.MustCompile(`[\s_-]+`)
)

// SlugBase turns a title into its URL-safe base form: lower-cased, with
// punctuation stripped and runs of whitespace, underscores and hyphens
// collapsed into single hyphens. A title with nothing left yields the fixed
// fallback base.
func SlugBase(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlugBase
	}
	return slug
}

// Slug derives a unique slug for title against exists. The predicate must
// exclude the record's own id when re-slugging. Collision resolution appends
// -1, -2, ... and terminates because the existing set is finite.
func Slug(title string, exists func(slug string) (bool, error)) (string, error) {
	base := SlugBase(title)

	slug := base
	for counter := 1; ; counter++ {
		taken, err := exists(slug)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
