package program

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

const (
	MinSlugLength = 3
	MaxSlugLength = 50

	// slugColumnSize bounds generated slugs, which may outgrow MaxSlugLength.
	slugColumnSize = 100

	// MaxCopyAttempts caps how many "-copy" candidates Duplicate will try.
	MaxCopyAttempts = 20
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var reservedSlugs = map[string]struct{}{
	"new": {}, "edit": {}, "settings": {}, "bookings": {}, "students": {},
	"create": {}, "all": {}, "upcoming": {}, "past": {}, "draft": {}, "published": {},
}

func IsReservedSlug(slug string) bool {
	_, ok := reservedSlugs[slug]
	return ok
}

func ValidateSlug(slug string) error {
	switch {
	case len(slug) < MinSlugLength:
		return httperr.ErrValidation("slug", "slug must be at least 3 characters in length")
	case len(slug) > MaxSlugLength:
		return httperr.ErrValidation("slug", "slug must be a maximum of 50 characters in length")
	case !slugPattern.MatchString(slug):
		return httperr.ErrValidation("slug", "slug may only contain lowercase letters, numbers and single hyphens")
	case IsReservedSlug(slug):
		return httperr.ErrValidation("slug", "slug is reserved")
	}
	return nil
}

// CopySlug returns the n-th candidate slug for a duplicate of base:
// base-copy, base-copy-2, base-copy-3 ...
func CopySlug(base string, n int) string {
	suffix := "-copy"
	if n > 1 {
		suffix += "-" + strconv.Itoa(n)
	}
	if len(base)+len(suffix) > slugColumnSize {
		base = strings.TrimRight(base[:slugColumnSize-len(suffix)], "-")
	}
	return base + suffix
}
