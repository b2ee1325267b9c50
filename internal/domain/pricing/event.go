package pricing

import "time"

type EventType string

const (
	EventUpserted  EventType = "pricing.upserted"
	EventCascaded  EventType = "pricing.cascaded"
	EventReset     EventType = "pricing.reset"
	EventResetAll  EventType = "pricing.reset_all"
	EventDeleted   EventType = "pricing.deleted"
	EventGlobalOff EventType = "pricing.global_deactivated"
)

// Event is published whenever a stored price changes.
type Event struct {
	Type                 EventType `json:"type"`
	ArtworkID            string    `json:"artworkId,omitempty"`
	ArtworkSlug          string    `json:"artworkSlug,omitempty"`
	OriginalPrice        string    `json:"originalPrice,omitempty"`
	AdjustedPrice        string    `json:"adjustedPrice,omitempty"`
	AdjustmentPercentage string    `json:"adjustmentPercentage,omitempty"`
	GlobalAdjustmentID   string    `json:"globalAdjustmentId,omitempty"`
	OccurredAt           time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, p *ArtworkPricing, at time.Time) Event {
	return Event{
		Type:                 t,
		ArtworkID:            p.ArtworkID,
		ArtworkSlug:          p.ArtworkSlug,
		OriginalPrice:        p.OriginalPrice.StringFixed(PriceScale),
		AdjustedPrice:        p.AdjustedPrice.StringFixed(PriceScale),
		AdjustmentPercentage: p.AdjustmentPercentage.String(),
		OccurredAt:           at,
	}
}
