package classify

import (
	"regexp"
	"strings"
)

const maxSlugLen = 50

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSlug derives a category slug: lowercase, non-alphanumeric runs
// collapsed to single hyphens, trimmed, and capped at 50 characters.
func NormalizeSlug(input string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return slug
}

var wordInitial = regexp.MustCompile(`\b\w`)

// HumanizeSlug turns a slug back into a display name ("office-supplies" ->
// "Office Supplies").
func HumanizeSlug(slug string) string {
	name := strings.ReplaceAll(slug, "-", " ")
	return wordInitial.ReplaceAllStringFunc(name, strings.ToUpper)
}
