package canon

import (
	"regexp"
	"strings"
)

var reSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses every run of non-alphanumerics into a
// single dash: "Winter  Park" and "winter_park" both become "winter-park".
func Slug(s string) string {
	s = reSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// Lookup indexes a fixed list of display values by slug.
type Lookup map[string]string

func NewLookup(values ...string) Lookup {
	l := make(Lookup, len(values))
	for _, v := range values {
		l[Slug(v)] = v
	}
	return l
}

// Canonical maps any spelling of a known value to its display form.
func (l Lookup) Canonical(s string) (string, bool) {
	v, ok := l[Slug(s)]
	return v, ok
}

// Zip trims whitespace, keeps the 5-digit prefix of ZIP+4 values and reports
// whether the result is a plain 5-digit zip.
func Zip(z string) (string, bool) {
	z = strings.TrimSpace(z)
	if len(z) > 5 && (z[5] == '-' || z[5] == ' ') {
		z = z[:5]
	}
	if len(z) != 5 {
		return z, false
	}
	for i := 0; i < len(z); i++ {
		if z[i] < '0' || z[i] > '9' {
			return z, false
		}
	}
	return z, true
}
