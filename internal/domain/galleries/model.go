package galleries

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ArtworkRef is an artwork listed by a gallery or museum. Stored inline as
// JSON, the way the listing is edited as a whole.
type ArtworkRef struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	Category  string   `json:"category,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	PriceType string   `json:"priceType,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Year      int      `json:"year,omitempty"`
}

type Gallery struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     *uint  `gorm:"index" json:"ownerId,omitempty"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex:idx_galleries_slug" json:"slug"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	Artworks datatypes.JSONSlice[ArtworkRef] `gorm:"type:jsonb" json:"artworks"`

	Status    string    `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
