// Package listing normalises pagination for list endpoints.
package listing

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Clamp bounds limit to (0, MaxLimit], defaulting to DefaultLimit, and
// floors offset at zero.
func Clamp(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
