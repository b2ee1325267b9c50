// Package offers handles buyer offers on artworks and the admin decision
// flow around them.
package offers

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/offers"
	"artmarket-admin/internal/infra/mailer"
	"artmarket-admin/internal/infra/stripe"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ListQuery struct {
	Status    string
	ArtworkID string
	Search    string
	Limit     int
	Offset    int
}

// Repository finders return (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, o *domain.Offer) error
	FindByID(ctx context.Context, id uint) (*domain.Offer, error)
	FindByCheckoutSession(ctx context.Context, sessionID string) (*domain.Offer, error)
	Save(ctx context.Context, o *domain.Offer) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) ([]domain.Offer, int64, error)
}

type Mailer interface {
	SendOfferAccepted(ctx context.Context, o mailer.OfferMail) error
	SendOfferRejected(ctx context.Context, o mailer.OfferMail) error
}

type Checkout interface {
	CreateOfferCheckout(ctx context.Context, req stripe.CheckoutRequest) (*stripe.CheckoutSession, error)
}

type Service struct {
	repo     Repository
	mail     Mailer
	checkout Checkout
	currency string
	log      *zap.Logger
	now      func() time.Time
}

// NewService wires the offer flow. checkout may be nil when payments are
// not configured.
func NewService(repo Repository, mail Mailer, checkout Checkout, currency string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, mail: mail, checkout: checkout, currency: strings.ToUpper(currency), log: log, now: time.Now}
}

type CreateInput struct {
	ArtworkID    string   `json:"artworkId" validate:"required"`
	ArtworkTitle string   `json:"artworkTitle" validate:"required"`
	ArtistName   string   `json:"artistName"`
	BuyerName    string   `json:"buyerName" validate:"required"`
	BuyerEmail   string   `json:"buyerEmail" validate:"required,email"`
	BuyerPhone   string   `json:"buyerPhone"`
	OfferedPrice *float64 `json:"offeredPrice"`
	ListedPrice  *float64 `json:"listedPrice"`
	Message      string   `json:"message"`
}

func (s *Service) Create(ctx context.Context, in CreateInput, buyerID *uint) (*domain.Offer, error) {
	in.ArtworkID = strings.TrimSpace(in.ArtworkID)
	in.ArtworkTitle = strings.TrimSpace(in.ArtworkTitle)
	in.BuyerName = strings.TrimSpace(in.BuyerName)
	in.BuyerEmail = strings.ToLower(strings.TrimSpace(in.BuyerEmail))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.OfferedPrice == nil {
		return nil, apperr.MissingField("offeredPrice")
	}
	if *in.OfferedPrice <= 0 {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Field: "offeredPrice", Message: "offeredPrice must be greater than 0"}
	}

	o := &domain.Offer{
		ArtworkID:     in.ArtworkID,
		ArtworkTitle:  in.ArtworkTitle,
		ArtistName:    strings.TrimSpace(in.ArtistName),
		BuyerName:     in.BuyerName,
		BuyerEmail:    in.BuyerEmail,
		BuyerPhone:    strings.TrimSpace(in.BuyerPhone),
		BuyerID:       buyerID,
		OfferedPrice:  decimal.NewFromFloat(*in.OfferedPrice).Round(2),
		Message:       strings.TrimSpace(in.Message),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentNone,
	}
	if in.ListedPrice != nil {
		o.ListedPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*in.ListedPrice).Round(2))
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Internal("Failed to create offer", err)
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*domain.Offer, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load offer", err)
	}
	if o == nil {
		return nil, apperr.NotFound("Offer not found")
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Offer, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list offers", err)
	}
	return items, total, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal("Failed to delete offer", err)
	}
	return nil
}

func (s *Service) pending(ctx context.Context, id uint) (*domain.Offer, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.StatusPending {
		return nil, apperr.Validation("Offer has already been " + o.Status)
	}
	return o, nil
}

func (s *Service) formatPrice(d decimal.Decimal) string {
	return s.currency + " " + d.StringFixed(2)
}

// Accept marks a pending offer accepted, opens a checkout session when
// payments are configured and emails the buyer.
func (s *Service) Accept(ctx context.Context, id uint, note string, actor *uint) (*domain.Offer, error) {
	o, err := s.pending(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o.Status = domain.StatusAccepted
	o.ResponseNote = strings.TrimSpace(note)
	o.RespondedBy = actor
	o.RespondedAt = &now

	if s.checkout != nil {
		sess, err := s.checkout.CreateOfferCheckout(ctx, stripe.CheckoutRequest{
			OfferID:      o.ID,
			ArtworkTitle: o.ArtworkTitle,
			BuyerEmail:   o.BuyerEmail,
			Amount:       o.OfferedPrice,
		})
		if err != nil {
			s.log.Warn("checkout session failed", zap.Uint("offer_id", o.ID), zap.Error(err))
		} else {
			o.CheckoutSessionID = sess.ID
			o.CheckoutURL = sess.URL
			o.PaymentStatus = domain.PaymentUnpaid
		}
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, apperr.Internal("Failed to accept offer", err)
	}

	if err := s.mail.SendOfferAccepted(ctx, s.offerMail(o)); err != nil {
		s.log.Warn("offer accepted email failed", zap.Uint("offer_id", o.ID), zap.Error(err))
	}
	return o, nil
}

func (s *Service) Reject(ctx context.Context, id uint, note string, actor *uint) (*domain.Offer, error) {
	o, err := s.pending(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	o.Status = domain.StatusRejected
	o.ResponseNote = strings.TrimSpace(note)
	o.RespondedBy = actor
	o.RespondedAt = &now

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, apperr.Internal("Failed to reject offer", err)
	}

	if err := s.mail.SendOfferRejected(ctx, s.offerMail(o)); err != nil {
		s.log.Warn("offer rejected email failed", zap.Uint("offer_id", o.ID), zap.Error(err))
	}
	return o, nil
}

// RecordPayment stores the payment state reported by a completed checkout
// session. Unknown sessions are ignored.
func (s *Service) RecordPayment(ctx context.Context, sessionID, paymentStatus string) (*domain.Offer, error) {
	o, err := s.repo.FindByCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, apperr.Internal("Failed to load offer", err)
	}
	if o == nil {
		return nil, nil
	}
	o.PaymentStatus = stripe.NormalizePaymentStatus(paymentStatus)
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, apperr.Internal("Failed to record payment", err)
	}
	return o, nil
}

func (s *Service) offerMail(o *domain.Offer) mailer.OfferMail {
	return mailer.OfferMail{
		To:           o.BuyerEmail,
		BuyerName:    o.BuyerName,
		ArtworkTitle: o.ArtworkTitle,
		Price:        s.formatPrice(o.OfferedPrice),
		Note:         o.ResponseNote,
		CheckoutURL:  o.CheckoutURL,
	}
}
