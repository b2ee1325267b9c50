package pricing

import "strings"

// Filter scopes a global adjustment. Empty allow-lists apply to everything;
// the exclude list always wins.
type Filter struct {
	Categories []string
	Artists    []string
	Exclude    []string
}

// Target identifies the artwork a filter is evaluated against.
type Target struct {
	ArtworkID   string
	ArtworkSlug string
	Category    string
	ArtistName  string
}

func (p *ArtworkPricing) Target() Target {
	return Target{
		ArtworkID:   p.ArtworkID,
		ArtworkSlug: p.ArtworkSlug,
		Category:    p.Category,
		ArtistName:  p.ArtistName,
	}
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}

func (f Filter) Matches(t Target) bool {
	if len(f.Categories) > 0 && !containsFold(f.Categories, t.Category) {
		return false
	}
	if len(f.Artists) > 0 && !containsFold(f.Artists, t.ArtistName) {
		return false
	}
	if containsFold(f.Exclude, t.ArtworkID) || containsFold(f.Exclude, t.ArtworkSlug) {
		return false
	}
	return true
}

// Clean trims entries and drops blanks and duplicates, preserving order.
func Clean(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Lower returns a lower-cased copy, used for case-insensitive SQL filters.
func Lower(list []string) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = strings.ToLower(v)
	}
	return out
}
