// Package slug builds URL-safe identifiers for public resources.
package slug

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Make joins parts into a slug: ("Blue Hour", "2024") -> "blue-hour-2024".
func Make(parts ...string) string {
	base := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "_", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}

// Unique returns Make(parts...) or, when taken reports it is in use, the
// slug with a short random suffix. An empty base falls back to fallback.
func Unique(fallback string, taken func(string) (bool, error), parts ...string) (string, error) {
	base := Make(parts...)
	if base == "" {
		base = fallback
	}

	candidate := base
	for i := 0; i < 5; i++ {
		used, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !used {
			return candidate, nil
		}
		candidate = base + "-" + uuid.NewString()[:8]
	}
	return base + "-" + uuid.NewString(), nil
}
