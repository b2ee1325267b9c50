package banners

import "time"

type SponsorBanner struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Sponsor   string     `json:"sponsor,omitempty"`
	ImageURL  string     `gorm:"not null" json:"imageUrl"`
	LinkURL   string     `json:"linkUrl,omitempty"`
	Placement string     `gorm:"not null;default:'home';index" json:"placement"`
	SortOrder int        `gorm:"not null;default:0" json:"sortOrder"`
	IsActive  bool       `gorm:"not null;default:true" json:"isActive"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LiveAt reports whether the banner should be shown at now. Open-ended
// windows are allowed on either side.
func (b *SponsorBanner) LiveAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && !now.Before(*b.EndsAt) {
		return false
	}
	return true
}
