// Package pricing implements per-artwork price overrides and global
// percentage adjustments.
package pricing

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/pricing"
	"artmarket-admin/internal/infra/metrics"
	"artmarket-admin/internal/service/listing"
	"artmarket-admin/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Deps struct {
	Tx          Transactor
	Pricings    Repository
	Adjustments AdjustmentRepository
	Cache       AdjustmentCache
	Events      EventPublisher
	Logger      *zap.Logger
	Now         func() time.Time
}

type Service struct {
	tx          Transactor
	pricings    Repository
	adjustments AdjustmentRepository
	cache       AdjustmentCache
	events      EventPublisher
	log         *zap.Logger
	now         func() time.Time
}

func NewService(d Deps) *Service {
	s := &Service{
		tx:          d.Tx,
		pricings:    d.Pricings,
		adjustments: d.Adjustments,
		cache:       d.Cache,
		events:      d.Events,
		log:         d.Logger,
		now:         d.Now,
	}
	if s.cache == nil {
		s.cache = nopCache{}
	}
	if s.events == nil {
		s.events = nopPublisher{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// UpsertInput carries a per-artwork price edit. Pointer fields distinguish
// "absent" from zero.
type UpsertInput struct {
	ArtworkID            string   `json:"artworkId" validate:"required"`
	ArtworkSlug          string   `json:"artworkSlug" validate:"required"`
	OriginalPrice        *float64 `json:"originalPrice"`
	OriginalPriceType    string   `json:"originalPriceType" validate:"required"`
	OriginalMinPrice     *float64 `json:"originalMinPrice"`
	OriginalMaxPrice     *float64 `json:"originalMaxPrice"`
	AdjustmentPercentage *float64 `json:"adjustmentPercentage"`
	AdjustmentReason     string   `json:"adjustmentReason"`
	ArtworkTitle         string   `json:"artworkTitle" validate:"required"`
	ArtistName           string   `json:"artistName" validate:"required"`
	Category             string   `json:"category"`
}

func (in *UpsertInput) trim() {
	in.ArtworkID = strings.TrimSpace(in.ArtworkID)
	in.ArtworkSlug = strings.TrimSpace(in.ArtworkSlug)
	in.OriginalPriceType = strings.TrimSpace(in.OriginalPriceType)
	in.ArtworkTitle = strings.TrimSpace(in.ArtworkTitle)
	in.ArtistName = strings.TrimSpace(in.ArtistName)
	in.Category = strings.TrimSpace(in.Category)
	in.AdjustmentReason = strings.TrimSpace(in.AdjustmentReason)
}

func validatePercent(field string, pct *float64) error {
	if pct == nil {
		return apperr.MissingField(field)
	}
	if *pct <= -100 {
		return &apperr.Error{Kind: apperr.KindValidation, Field: field, Message: field + " must be greater than -100"}
	}
	return nil
}

// priceFields validates the price shape shared by upserts and quotes.
func priceFields(priceType string, price, lo, hi *float64) (domain.PriceType, error) {
	pt := domain.PriceType(priceType)
	if !pt.Valid() {
		return "", &apperr.Error{Kind: apperr.KindValidation, Field: "originalPriceType",
			Message: "originalPriceType must be one of: Money Range"}
	}
	if pt == domain.PriceTypeRange {
		if lo == nil {
			return "", apperr.MissingField("originalMinPrice")
		}
		if hi == nil {
			return "", apperr.MissingField("originalMaxPrice")
		}
		if *lo < 0 || *hi < 0 {
			return "", apperr.Validation("Prices must not be negative")
		}
		if *lo > *hi {
			return "", &apperr.Error{Kind: apperr.KindValidation, Field: "originalMinPrice",
				Message: "originalMinPrice must not exceed originalMaxPrice"}
		}
		return pt, nil
	}
	if price == nil {
		return "", apperr.MissingField("originalPrice")
	}
	if *price < 0 {
		return "", &apperr.Error{Kind: apperr.KindValidation, Field: "originalPrice", Message: "originalPrice must not be negative"}
	}
	return pt, nil
}

func applyPrices(p *domain.ArtworkPricing, pt domain.PriceType, price, lo, hi *float64) {
	p.OriginalPriceType = pt
	if price != nil {
		p.OriginalPrice = decimal.NewFromFloat(*price).Round(domain.PriceScale)
	}
	p.OriginalMinPrice = decimal.NullDecimal{}
	p.OriginalMaxPrice = decimal.NullDecimal{}
	if pt == domain.PriceTypeRange {
		p.OriginalMinPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*lo).Round(domain.PriceScale))
		p.OriginalMaxPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*hi).Round(domain.PriceScale))
	}
	p.Normalize()
}

// Upsert creates or overwrites the pricing record of one artwork. Concurrent
// edits of the same artwork are last-write-wins.
func (s *Service) Upsert(ctx context.Context, in UpsertInput, actor *uint) (p *domain.ArtworkPricing, created bool, err error) {
	defer func() { metrics.CountPricingOperation("upsert", err) }()

	in.trim()
	if err := validation.Struct(in); err != nil {
		return nil, false, err
	}
	if err := validatePercent("adjustmentPercentage", in.AdjustmentPercentage); err != nil {
		return nil, false, err
	}
	pt, err := priceFields(in.OriginalPriceType, in.OriginalPrice, in.OriginalMinPrice, in.OriginalMaxPrice)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.pricings.FindByArtworkID(ctx, in.ArtworkID)
	if err != nil {
		return nil, false, apperr.Internal("Failed to load artwork pricing", err)
	}

	p = existing
	if p == nil {
		created = true
		p = &domain.ArtworkPricing{CreatedBy: actor}
	}

	p.ArtworkID = in.ArtworkID
	p.ArtworkSlug = in.ArtworkSlug
	p.ArtworkTitle = in.ArtworkTitle
	p.ArtistName = in.ArtistName
	p.Category = in.Category
	p.AdjustmentReason = in.AdjustmentReason
	p.IsActive = true
	p.UpdatedBy = actor

	applyPrices(p, pt, in.OriginalPrice, in.OriginalMinPrice, in.OriginalMaxPrice)
	p.SetAdjustment(decimal.NewFromFloat(*in.AdjustmentPercentage))

	if err := s.pricings.Save(ctx, p); err != nil {
		return nil, false, apperr.Internal("Failed to save artwork pricing", err)
	}

	s.publish(ctx, domain.NewEvent(domain.EventUpserted, p, s.now()))
	return p, created, nil
}

// Get returns the stored pricing for an artwork by id or slug.
func (s *Service) Get(ctx context.Context, artworkID, slug string) (*domain.ArtworkPricing, error) {
	artworkID = strings.TrimSpace(artworkID)
	slug = strings.TrimSpace(slug)
	if artworkID == "" && slug == "" {
		return nil, apperr.Validation("artworkId or artworkSlug is required")
	}

	var (
		p   *domain.ArtworkPricing
		err error
	)
	if artworkID != "" {
		p, err = s.pricings.FindByArtworkID(ctx, artworkID)
	} else {
		p, err = s.pricings.FindBySlug(ctx, slug)
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load artwork pricing", err)
	}
	if p == nil || !p.IsActive {
		return nil, apperr.NotFound("Pricing not found for this artwork")
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.ArtworkPricing, error) {
	p, err := s.pricings.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("Failed to load artwork pricing", err)
	}
	if p == nil {
		return nil, apperr.NotFound("Pricing record not found")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.ArtworkPricing, int64, error) {
	q.Limit, q.Offset = listing.Clamp(q.Limit, q.Offset)
	items, total, err := s.pricings.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list artwork pricing", err)
	}
	return items, total, nil
}

// Delete soft-deletes a pricing record.
func (s *Service) Delete(ctx context.Context, id string, actor *uint) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = false
	p.UpdatedBy = actor
	if err := s.pricings.Save(ctx, p); err != nil {
		return apperr.Internal("Failed to delete artwork pricing", err)
	}
	s.publish(ctx, domain.NewEvent(domain.EventDeleted, p, s.now()))
	return nil
}

type GlobalInput struct {
	AdjustmentPercentage *float64 `json:"adjustmentPercentage"`
	AdjustmentReason     string   `json:"adjustmentReason" validate:"required"`
	AppliedToCategories  []string `json:"appliedToCategories"`
	AppliedToArtists     []string `json:"appliedToArtists"`
	ExcludeArtworks      []string `json:"excludeArtworks"`
}

type GlobalResult struct {
	Adjustment  *domain.GlobalPricingAdjustment
	Affected    int
	Deactivated int64
}

// CreateGlobalAdjustment deactivates the current global adjustment, stores
// the new one and compounds it into every matching active pricing record.
// All three steps commit or roll back together.
func (s *Service) CreateGlobalAdjustment(ctx context.Context, in GlobalInput, actor *uint) (res *GlobalResult, err error) {
	defer func() { metrics.CountPricingOperation("global_adjustment", err) }()

	in.AdjustmentReason = strings.TrimSpace(in.AdjustmentReason)
	if err := validatePercent("adjustmentPercentage", in.AdjustmentPercentage); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	pct := decimal.NewFromFloat(*in.AdjustmentPercentage).Round(domain.PercentScale)
	g := &domain.GlobalPricingAdjustment{
		AdjustmentPercentage: pct,
		AdjustmentReason:     in.AdjustmentReason,
		AppliedToCategories:  domain.Clean(in.AppliedToCategories),
		AppliedToArtists:     domain.Clean(in.AppliedToArtists),
		ExcludeArtworks:      domain.Clean(in.ExcludeArtworks),
		IsActive:             true,
		CreatedBy:            actor,
	}

	start := s.now()
	res = &GlobalResult{Adjustment: g}
	var changed []*domain.ArtworkPricing

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.adjustments.DeactivateAll(ctx)
		if err != nil {
			return apperr.Internal("Failed to deactivate previous adjustments", err)
		}
		res.Deactivated = n

		if err := s.adjustments.Create(ctx, g); err != nil {
			return apperr.Internal("Failed to create global adjustment", err)
		}

		filter := g.Filter()
		records, err := s.pricings.ListActiveMatching(ctx, filter)
		if err != nil {
			return apperr.Internal("Failed to load pricing records", err)
		}

		changed = make([]*domain.ArtworkPricing, 0, len(records))
		for _, p := range records {
			if !filter.Matches(p.Target()) {
				continue
			}
			p.Compound(pct)
			p.AdjustmentReason = g.AdjustmentReason
			p.UpdatedBy = actor
			// the batch upsert only stamps a zero UpdatedAt
			p.UpdatedAt = start
			changed = append(changed, p)
		}

		if err := s.pricings.SaveAll(ctx, changed); err != nil {
			return apperr.Internal("Failed to apply global adjustment", err)
		}

		g.AffectedCount = len(changed)
		if err := s.adjustments.SetAffected(ctx, g.ID, len(changed)); err != nil {
			return apperr.Internal("Failed to record affected artworks", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Affected = len(changed)
	metrics.ObserveCascade(len(changed), s.now().Sub(start))

	if err := s.cache.SetActive(ctx, g); err != nil {
		s.log.Warn("failed to cache global adjustment", zap.Error(err))
		s.invalidate(ctx)
	}

	at := s.now()
	events := make([]domain.Event, 0, len(changed))
	for _, p := range changed {
		ev := domain.NewEvent(domain.EventCascaded, p, at)
		ev.GlobalAdjustmentID = g.ID
		events = append(events, ev)
	}
	s.publish(ctx, events...)

	s.log.Info("global pricing adjustment applied",
		zap.String("adjustment_id", g.ID),
		zap.String("percentage", pct.String()),
		zap.Int("affected", len(changed)),
		zap.Int64("deactivated", res.Deactivated),
	)
	return res, nil
}

// ActiveGlobalAdjustment returns the active global adjustment or nil.
func (s *Service) ActiveGlobalAdjustment(ctx context.Context) (*domain.GlobalPricingAdjustment, error) {
	if g, found, err := s.cache.GetActive(ctx); err == nil && found {
		return g, nil
	} else if err != nil {
		s.log.Warn("global adjustment cache read failed", zap.Error(err))
	}

	g, err := s.adjustments.Active(ctx)
	if err != nil {
		return nil, apperr.Internal("Failed to load active global adjustment", err)
	}
	if err := s.cache.SetActive(ctx, g); err != nil {
		s.log.Warn("failed to cache global adjustment", zap.Error(err))
	}
	return g, nil
}

func (s *Service) ListGlobalAdjustments(ctx context.Context, limit, offset int) ([]domain.GlobalPricingAdjustment, int64, error) {
	limit, offset = listing.Clamp(limit, offset)
	items, total, err := s.adjustments.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to list global adjustments", err)
	}
	return items, total, nil
}

// DeactivateGlobalAdjustment stops a global adjustment from applying to new
// quotes. Prices already rewritten by its cascade are left as they are.
func (s *Service) DeactivateGlobalAdjustment(ctx context.Context, id string) error {
	g, err := s.adjustments.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to load global adjustment", err)
	}
	if g == nil {
		return apperr.NotFound("Global adjustment not found")
	}
	if !g.IsActive {
		return apperr.Validation("Global adjustment is already inactive")
	}
	if err := s.adjustments.Deactivate(ctx, id); err != nil {
		return apperr.Internal("Failed to deactivate global adjustment", err)
	}
	s.invalidate(ctx)
	s.publish(ctx, domain.Event{Type: domain.EventGlobalOff, GlobalAdjustmentID: id, OccurredAt: s.now()})
	return nil
}

type QuoteInput struct {
	ArtworkID         string   `json:"artworkId" validate:"required"`
	ArtworkSlug       string   `json:"artworkSlug"`
	OriginalPrice     *float64 `json:"originalPrice"`
	OriginalPriceType string   `json:"originalPriceType" validate:"required"`
	OriginalMinPrice  *float64 `json:"originalMinPrice"`
	OriginalMaxPrice  *float64 `json:"originalMaxPrice"`
	Category          string   `json:"category"`
	ArtistName        string   `json:"artistName"`
	ArtworkTitle      string   `json:"artworkTitle"`
}

const (
	SourceStored   = "stored"
	SourceGlobal   = "global"
	SourceOriginal = "original"
)

type Quote struct {
	Pricing            domain.ArtworkPricing
	Source             string
	GlobalAdjustmentID string
}

// Quote prices an artwork without persisting anything. A stored record wins;
// otherwise the active global adjustment is applied when its filter matches.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	in.ArtworkID = strings.TrimSpace(in.ArtworkID)
	in.OriginalPriceType = strings.TrimSpace(in.OriginalPriceType)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	pt, err := priceFields(in.OriginalPriceType, in.OriginalPrice, in.OriginalMinPrice, in.OriginalMaxPrice)
	if err != nil {
		return nil, err
	}

	stored, err := s.pricings.FindByArtworkID(ctx, in.ArtworkID)
	if err != nil {
		return nil, apperr.Internal("Failed to load artwork pricing", err)
	}
	if stored != nil && stored.IsActive {
		return &Quote{Pricing: *stored, Source: SourceStored}, nil
	}

	p := domain.ArtworkPricing{
		ArtworkID:    in.ArtworkID,
		ArtworkSlug:  strings.TrimSpace(in.ArtworkSlug),
		ArtworkTitle: strings.TrimSpace(in.ArtworkTitle),
		ArtistName:   strings.TrimSpace(in.ArtistName),
		Category:     strings.TrimSpace(in.Category),
		IsActive:     true,
	}
	applyPrices(&p, pt, in.OriginalPrice, in.OriginalMinPrice, in.OriginalMaxPrice)
	p.Reset()

	g, err := s.ActiveGlobalAdjustment(ctx)
	if err != nil {
		return nil, err
	}
	if g == nil || !g.Filter().Matches(p.Target()) {
		return &Quote{Pricing: p, Source: SourceOriginal}, nil
	}

	p.Compound(g.AdjustmentPercentage)
	p.AdjustmentReason = g.AdjustmentReason
	return &Quote{Pricing: p, Source: SourceGlobal, GlobalAdjustmentID: g.ID}, nil
}

// Reset restores one record to its original price and deactivates the
// active global adjustment so it does not re-apply.
func (s *Service) Reset(ctx context.Context, id string, actor *uint) (*domain.ArtworkPricing, error) {
	var p *domain.ArtworkPricing
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.pricings.FindByID(ctx, id)
		if err != nil {
			return apperr.Internal("Failed to load artwork pricing", err)
		}
		if p == nil {
			return apperr.NotFound("Pricing record not found")
		}

		p.Reset()
		p.UpdatedBy = actor
		if err := s.pricings.Save(ctx, p); err != nil {
			return apperr.Internal("Failed to reset artwork pricing", err)
		}
		if _, err := s.adjustments.DeactivateAll(ctx); err != nil {
			return apperr.Internal("Failed to deactivate global adjustment", err)
		}
		return nil
	})
	metrics.CountPricingOperation("reset", err)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, domain.NewEvent(domain.EventReset, p, s.now()))
	return p, nil
}

// ResetAll resets every active record in one statement.
func (s *Service) ResetAll(ctx context.Context, actor *uint) (int64, error) {
	var n int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		n, err = s.pricings.ResetAll(ctx, actor)
		if err != nil {
			return apperr.Internal("Failed to reset artwork pricing", err)
		}
		if _, err := s.adjustments.DeactivateAll(ctx); err != nil {
			return apperr.Internal("Failed to deactivate global adjustment", err)
		}
		return nil
	})
	metrics.CountPricingOperation("reset_all", err)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx)
	s.publish(ctx, domain.Event{Type: domain.EventResetAll, OccurredAt: s.now()})
	return n, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("failed to invalidate global adjustment cache", zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, events ...domain.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.events.PublishPricing(ctx, events...); err != nil {
		s.log.Warn("failed to publish pricing events", zap.Int("count", len(events)), zap.Error(err))
	}
}
