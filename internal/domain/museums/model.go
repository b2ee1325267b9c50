package museums

import (
	"time"

	"artmarket-admin/internal/domain/galleries"

	"gorm.io/datatypes"
)

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

type Museum struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OwnerID     *uint  `gorm:"index" json:"ownerId,omitempty"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;uniqueIndex:idx_museums_slug" json:"slug"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`

	Events   datatypes.JSONSlice[Event]                `gorm:"type:jsonb" json:"events"`
	Artworks datatypes.JSONSlice[galleries.ArtworkRef] `gorm:"type:jsonb" json:"artworks"`

	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
