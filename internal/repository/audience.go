package repository

import (
	"context"
	"strings"
	"time"

	"artmarket-admin/internal/domain/banners"
	"artmarket-admin/internal/domain/newsletters"
	bannersvc "artmarket-admin/internal/service/banners"
	newslettersvc "artmarket-admin/internal/service/newsletters"

	"gorm.io/gorm"
)

type SubscriberRepository struct {
	crud[newsletters.Subscriber]
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{crud[newsletters.Subscriber]{DB: db}}
}

func (r *SubscriberRepository) FindByEmail(ctx context.Context, email string) (*newsletters.Subscriber, error) {
	return r.first(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

func (r *SubscriberRepository) List(ctx context.Context, q newslettersvc.ListQuery) ([]newsletters.Subscriber, int64, error) {
	db := search(r.model(ctx), q.Search, "email", "name")
	if q.Subscribed != nil {
		db = db.Where("is_subscribed = ?", *q.Subscribed)
	}
	return r.page(db, "created_at DESC", q.Limit, q.Offset)
}

type BannerRepository struct {
	crud[banners.SponsorBanner]
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{crud[banners.SponsorBanner]{DB: db}}
}

func (r *BannerRepository) List(ctx context.Context, q bannersvc.ListQuery) ([]banners.SponsorBanner, int64, error) {
	db := r.model(ctx)
	if q.Placement != "" {
		db = db.Where("placement = ?", q.Placement)
	}
	if q.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	return r.page(db, "placement ASC, sort_order ASC, id ASC", q.Limit, q.Offset)
}

func (r *BannerRepository) ActiveAt(ctx context.Context, placement string, now time.Time) ([]banners.SponsorBanner, error) {
	var out []banners.SponsorBanner
	err := conn(ctx, r.DB).
		Where("is_active = ? AND placement = ?", true, placement).
		Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at > ?)", now, now).
		Order("sort_order ASC, id ASC").
		Find(&out).Error
	return out, err
}
