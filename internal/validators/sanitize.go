package validators

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()

	// Only the entities bluemonday writes for plain punctuation are decoded.
	// Escaped markup such as "&lt;b&gt;" stays escaped.
	punctuation = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)
)

// SanitizeText strips every HTML element from free text typed by students or
// teachers.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(punctuation.Replace(strict.Sanitize(s)))
}
