package listing

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// EscapePattern escapes every character with special meaning in regular
// expression syntax so the result matches the input literally when used
// as a substring pattern.
func EscapePattern(s string) string {
	return regexp.QuoteMeta(s)
}

// StripTags removes HTML tags from free-text input before it is used in
// a search clause or echoed back in a response.
func StripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
