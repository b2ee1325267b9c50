package repository

import (
	"context"
	"strings"

	"artmarket-admin/internal/domain/auctions"
	"artmarket-admin/internal/domain/categories"
	"artmarket-admin/internal/domain/galleries"
	"artmarket-admin/internal/domain/museums"
	auctionsvc "artmarket-admin/internal/service/auctions"
	categorysvc "artmarket-admin/internal/service/categories"
	gallerysvc "artmarket-admin/internal/service/galleries"
	museumsvc "artmarket-admin/internal/service/museums"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	crud[categories.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{crud[categories.Category]{DB: db}}
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*categories.Category, error) {
	return r.first(ctx, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*categories.Category, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *CategoryRepository) List(ctx context.Context, q categorysvc.ListQuery) ([]categories.Category, int64, error) {
	db := search(r.model(ctx), q.Search, "name", "description")
	if q.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	return r.page(db, "name ASC", q.Limit, q.Offset)
}

type GalleryRepository struct {
	crud[galleries.Gallery]
}

func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{crud[galleries.Gallery]{DB: db}}
}

func (r *GalleryRepository) FindBySlug(ctx context.Context, slug string) (*galleries.Gallery, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *GalleryRepository) List(ctx context.Context, q gallerysvc.ListQuery) ([]galleries.Gallery, int64, error) {
	db := search(r.model(ctx), q.Search, "name", "location", "description")
	if q.Status != "" {
		db = db.Where("status = ?", strings.ToLower(q.Status))
	}
	if q.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.OwnerID)
	}
	return r.page(db, "created_at DESC", q.Limit, q.Offset)
}

type MuseumRepository struct {
	crud[museums.Museum]
}

func NewMuseumRepository(db *gorm.DB) *MuseumRepository {
	return &MuseumRepository{crud[museums.Museum]{DB: db}}
}

func (r *MuseumRepository) FindBySlug(ctx context.Context, slug string) (*museums.Museum, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *MuseumRepository) List(ctx context.Context, q museumsvc.ListQuery) ([]museums.Museum, int64, error) {
	db := search(r.model(ctx), q.Search, "name", "location", "description")
	if q.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}
	if q.OwnerID != nil {
		db = db.Where("owner_id = ?", *q.OwnerID)
	}
	return r.page(db, "created_at DESC", q.Limit, q.Offset)
}

type AuctionRepository struct {
	crud[auctions.Auction]
}

func NewAuctionRepository(db *gorm.DB) *AuctionRepository {
	return &AuctionRepository{crud[auctions.Auction]{DB: db}}
}

func (r *AuctionRepository) FindBySlug(ctx context.Context, slug string) (*auctions.Auction, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *AuctionRepository) List(ctx context.Context, q auctionsvc.ListQuery) ([]auctions.Auction, int64, error) {
	db := search(r.model(ctx), q.Search, "title", "artist_name", "artwork_title")
	if q.Status != "" {
		db = db.Where("status = ?", strings.ToLower(q.Status))
	}
	if q.Category != "" {
		db = db.Where("LOWER(category) = ?", strings.ToLower(q.Category))
	}
	return r.page(db, "start_time DESC", q.Limit, q.Offset)
}
