package offers

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

const (
	PaymentNone   = "none"
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Offer struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	ArtworkID    string              `gorm:"not null;index" json:"artworkId"`
	ArtworkTitle string              `gorm:"not null" json:"artworkTitle"`
	ArtistName   string              `json:"artistName,omitempty"`
	BuyerName    string              `gorm:"not null" json:"buyerName"`
	BuyerEmail   string              `gorm:"not null;index" json:"buyerEmail"`
	BuyerPhone   string              `json:"buyerPhone,omitempty"`
	BuyerID      *uint               `json:"buyerId,omitempty"`
	OfferedPrice decimal.Decimal     `gorm:"type:numeric(14,2);not null" json:"offeredPrice"`
	ListedPrice  decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"listedPrice"`
	Message      string              `json:"message,omitempty"`

	Status       string     `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	ResponseNote string     `json:"responseNote,omitempty"`
	RespondedBy  *uint      `json:"respondedBy,omitempty"`
	RespondedAt  *time.Time `json:"respondedAt,omitempty"`

	CheckoutSessionID string `json:"-"`
	CheckoutURL       string `json:"checkoutUrl,omitempty"`
	PaymentStatus     string `gorm:"type:varchar(16);not null;default:'none'" json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
