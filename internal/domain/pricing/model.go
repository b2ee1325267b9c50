package pricing

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PriceType string

const (
	PriceTypeMoney PriceType = "Money"
	PriceTypeRange PriceType = "Range"
)

func (t PriceType) Valid() bool {
	return t == PriceTypeMoney || t == PriceTypeRange
}

// ArtworkPricing holds the admin-controlled price of one artwork.
type ArtworkPricing struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ArtworkID    string `gorm:"not null;uniqueIndex:idx_artwork_pricings_artwork_id" json:"artworkId"`
	ArtworkSlug  string `gorm:"not null;index" json:"artworkSlug"`
	ArtworkTitle string `gorm:"not null" json:"artworkTitle"`
	ArtistName   string `gorm:"not null;index" json:"artistName"`
	Category     string `gorm:"index" json:"category,omitempty"`

	OriginalPrice     decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"originalPrice"`
	OriginalPriceType PriceType           `gorm:"type:varchar(16);not null" json:"originalPriceType"`
	OriginalMinPrice  decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"originalMinPrice"`
	OriginalMaxPrice  decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"originalMaxPrice"`

	AdjustedPrice    decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"adjustedPrice"`
	AdjustedMinPrice decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"adjustedMinPrice"`
	AdjustedMaxPrice decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"adjustedMaxPrice"`

	AdjustmentPercentage decimal.Decimal `gorm:"type:numeric(10,4);not null;default:0" json:"adjustmentPercentage"`
	AdjustmentReason     string          `json:"adjustmentReason,omitempty"`

	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`

	CreatedBy *uint `json:"createdBy,omitempty"`
	UpdatedBy *uint `json:"updatedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GlobalPricingAdjustment is a blanket percentage change. At most one row
// has IsActive set; database.InitDB backs that with a partial unique index.
type GlobalPricingAdjustment struct {
	ID string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	AdjustmentPercentage decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"adjustmentPercentage"`
	AdjustmentReason     string          `gorm:"not null" json:"adjustmentReason"`

	AppliedToCategories pq.StringArray `gorm:"type:text[]" json:"appliedToCategories"`
	AppliedToArtists    pq.StringArray `gorm:"type:text[]" json:"appliedToArtists"`
	ExcludeArtworks     pq.StringArray `gorm:"type:text[]" json:"excludeArtworks"`

	IsActive      bool `gorm:"not null;index" json:"isActive"`
	AffectedCount int  `gorm:"not null;default:0" json:"affectedCount"`

	CreatedBy     *uint      `json:"createdBy,omitempty"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *GlobalPricingAdjustment) Filter() Filter {
	return Filter{
		Categories: g.AppliedToCategories,
		Artists:    g.AppliedToArtists,
		Exclude:    g.ExcludeArtworks,
	}
}
