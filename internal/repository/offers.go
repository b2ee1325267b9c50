package repository

import (
	"context"
	"strings"

	"artmarket-admin/internal/domain/offers"
	"artmarket-admin/internal/domain/partnerships"
	offersvc "artmarket-admin/internal/service/offers"
	partnershipsvc "artmarket-admin/internal/service/partnerships"

	"gorm.io/gorm"
)

type OfferRepository struct {
	crud[offers.Offer]
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{crud[offers.Offer]{DB: db}}
}

func (r *OfferRepository) FindByCheckoutSession(ctx context.Context, sessionID string) (*offers.Offer, error) {
	return r.first(ctx, "checkout_session_id = ?", sessionID)
}

func (r *OfferRepository) List(ctx context.Context, q offersvc.ListQuery) ([]offers.Offer, int64, error) {
	db := search(r.model(ctx), q.Search, "artwork_title", "buyer_name", "buyer_email")
	if q.Status != "" {
		db = db.Where("status = ?", strings.ToLower(q.Status))
	}
	if q.ArtworkID != "" {
		db = db.Where("artwork_id = ?", q.ArtworkID)
	}
	return r.page(db, "created_at DESC", q.Limit, q.Offset)
}

type PartnershipRepository struct {
	crud[partnerships.Partnership]
}

func NewPartnershipRepository(db *gorm.DB) *PartnershipRepository {
	return &PartnershipRepository{crud[partnerships.Partnership]{DB: db}}
}

func (r *PartnershipRepository) List(ctx context.Context, q partnershipsvc.ListQuery) ([]partnerships.Partnership, int64, error) {
	db := r.model(ctx)
	if q.Status != "" {
		db = db.Where("status = ?", strings.ToLower(q.Status))
	}
	if q.Type != "" {
		db = db.Where("type = ?", strings.ToLower(q.Type))
	}
	return r.page(db, "created_at DESC", q.Limit, q.Offset)
}
