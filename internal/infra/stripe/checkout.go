// Package stripe wraps the Stripe calls used for accepted offers.
package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	stripeapi "github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
)

type CheckoutRequest struct {
	OfferID      uint
	ArtworkTitle string
	BuyerEmail   string
	Amount       decimal.Decimal
}

type CheckoutSession struct {
	ID  string
	URL string
}

type Checkout struct {
	currency string
	appURL   string
}

// NewCheckout sets the global Stripe key the same way the SDK examples do.
func NewCheckout(secretKey, currency, appURL string) *Checkout {
	stripeapi.Key = secretKey
	return &Checkout{currency: strings.ToLower(currency), appURL: strings.TrimRight(appURL, "/")}
}

// MinorUnits converts an amount to the integer cents Stripe expects.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// CreateOfferCheckout opens a one-off payment session for an accepted offer.
func (c *Checkout) CreateOfferCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("offer amount must be positive")
	}
	ref := fmt.Sprint(req.OfferID)

	params := &stripeapi.CheckoutSessionParams{
		Mode:              stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL:        stripeapi.String(c.appURL + "/offers/" + ref + "?paid=1"),
		CancelURL:         stripeapi.String(c.appURL + "/offers/" + ref + "?canceled=1"),
		CustomerEmail:     stripeapi.String(req.BuyerEmail),
		ClientReferenceID: stripeapi.String(ref),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Quantity: stripeapi.Int64(1),
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(c.currency),
					UnitAmount: stripeapi.Int64(MinorUnits(req.Amount)),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(req.ArtworkTitle),
					},
				},
			},
		},
		PaymentIntentData: &stripeapi.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"offer_id": ref},
		},
	}
	params.Metadata = map[string]string{"offer_id": ref}
	params.Context = ctx

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// NormalizePaymentStatus maps a checkout session payment_status onto the
// offer payment states.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "unpaid"
	case "":
		return "none"
	default:
		return strings.TrimSpace(s)
	}
}
