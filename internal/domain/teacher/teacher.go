package teacher

import (
	"strconv"
	"strings"
)

// Identity is what the external identity provider tells us about the caller.
type Identity struct {
	ID        string
	Email     string
	Name      string
	FullName  string
	AvatarURL string
}

// DisplayName falls back from the provider's name fields to the email's
// local part.
func (i Identity) DisplayName() string {
	for _, n := range []string{i.Name, i.FullName} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	if at := strings.Index(i.Email, "@"); at > 0 {
		return i.Email[:at]
	}
	return "Teacher"
}

// SlugCandidate returns base for n == 0 and base-n afterwards.
func SlugCandidate(base string, n int) string {
	if base == "" {
		base = "teacher"
	}
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
