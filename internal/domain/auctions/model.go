package auctions

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Auction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"not null" json:"title"`
	Slug         string `gorm:"not null;uniqueIndex:idx_auctions_slug" json:"slug"`
	Description  string `json:"description,omitempty"`
	ArtworkID    string `gorm:"index" json:"artworkId,omitempty"`
	ArtworkTitle string `json:"artworkTitle,omitempty"`
	ArtistName   string `gorm:"index" json:"artistName,omitempty"`
	Category     string `gorm:"index" json:"category,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`

	StartingPrice decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"startingPrice"`
	ReservePrice  decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"reservePrice"`
	CurrentBid    decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"currentBid"`

	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`

	Status    Status    `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	CreatedBy *uint     `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var transitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusPaused, StatusCompleted, StatusCancelled},
	StatusActive:  {StatusPaused, StatusCompleted, StatusCancelled},
	StatusPaused:  {StatusActive, StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusPaused, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an auction may move from s to next.
// Completed and cancelled auctions are final.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
