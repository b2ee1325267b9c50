package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "artmarket-admin/internal/domain/pricing"
	svc "artmarket-admin/internal/service/pricing"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepository struct {
	DB *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{DB: db}
}

func (r *PricingRepository) findOne(ctx context.Context, query string, arg any) (*domain.ArtworkPricing, error) {
	var p domain.ArtworkPricing
	err := conn(ctx, r.DB).Where(query, arg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PricingRepository) FindByID(ctx context.Context, id string) (*domain.ArtworkPricing, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *PricingRepository) FindByArtworkID(ctx context.Context, artworkID string) (*domain.ArtworkPricing, error) {
	return r.findOne(ctx, "artwork_id = ?", artworkID)
}

func (r *PricingRepository) FindBySlug(ctx context.Context, slug string) (*domain.ArtworkPricing, error) {
	return r.findOne(ctx, "artwork_slug = ?", slug)
}

func (r *PricingRepository) List(ctx context.Context, q svc.ListQuery) ([]domain.ArtworkPricing, int64, error) {
	db := conn(ctx, r.DB).Model(&domain.ArtworkPricing{})

	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		db = db.Where("LOWER(artwork_title) LIKE ? OR LOWER(artist_name) LIKE ? OR LOWER(artwork_slug) LIKE ?", like, like, like)
	}
	if q.Category != "" {
		db = db.Where("LOWER(category) = ?", strings.ToLower(q.Category))
	}
	if q.Artist != "" {
		db = db.Where("LOWER(artist_name) = ?", strings.ToLower(q.Artist))
	}
	if q.Active != nil {
		db = db.Where("is_active = ?", *q.Active)
	}

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count artwork pricing: %w", err)
	}

	var items []domain.ArtworkPricing
	err := db.Order("updated_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list artwork pricing: %w", err)
	}
	return items, total, nil
}

func (r *PricingRepository) Save(ctx context.Context, p *domain.ArtworkPricing) error {
	return conn(ctx, r.DB).Save(p).Error
}

// SaveAll writes every record in one INSERT ... ON CONFLICT statement.
func (r *PricingRepository) SaveAll(ctx context.Context, ps []*domain.ArtworkPricing) error {
	if len(ps) == 0 {
		return nil
	}
	return conn(ctx, r.DB).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"adjusted_price", "adjusted_min_price", "adjusted_max_price",
			"adjustment_percentage", "adjustment_reason", "updated_by", "updated_at",
		}),
	}).CreateInBatches(ps, 500).Error
}

// ListActiveMatching narrows candidates in SQL; callers still apply
// domain.Filter.Matches for the exact rule.
func (r *PricingRepository) ListActiveMatching(ctx context.Context, f domain.Filter) ([]*domain.ArtworkPricing, error) {
	db := conn(ctx, r.DB).Where("is_active = ?", true)

	if len(f.Categories) > 0 {
		db = db.Where("LOWER(TRIM(category)) = ANY(?)", pq.StringArray(domain.Lower(f.Categories)))
	}
	if len(f.Artists) > 0 {
		db = db.Where("LOWER(TRIM(artist_name)) = ANY(?)", pq.StringArray(domain.Lower(f.Artists)))
	}
	if len(f.Exclude) > 0 {
		ex := pq.StringArray(domain.Lower(f.Exclude))
		db = db.Where("NOT (LOWER(artwork_id) = ANY(?) OR LOWER(artwork_slug) = ANY(?))", ex, ex)
	}

	var out []*domain.ArtworkPricing
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list matching pricing: %w", err)
	}
	return out, nil
}

// ResetAll restores every active record to its original prices in a single
// UPDATE.
func (r *PricingRepository) ResetAll(ctx context.Context, updatedBy *uint) (int64, error) {
	res := conn(ctx, r.DB).Model(&domain.ArtworkPricing{}).
		Where("is_active = ?", true).
		Updates(map[string]any{
			"adjusted_price":        gorm.Expr("original_price"),
			"adjusted_min_price":    gorm.Expr("CASE WHEN original_price_type = ? THEN original_min_price ELSE NULL END", domain.PriceTypeRange),
			"adjusted_max_price":    gorm.Expr("CASE WHEN original_price_type = ? THEN original_max_price ELSE NULL END", domain.PriceTypeRange),
			"adjustment_percentage": 0,
			"adjustment_reason":     "",
			"updated_by":            updatedBy,
			"updated_at":            time.Now(),
		})
	return res.RowsAffected, res.Error
}

type AdjustmentRepository struct {
	DB *gorm.DB
}

func NewAdjustmentRepository(db *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{DB: db}
}

func (r *AdjustmentRepository) Active(ctx context.Context) (*domain.GlobalPricingAdjustment, error) {
	var g domain.GlobalPricingAdjustment
	err := conn(ctx, r.DB).Where("is_active = ?", true).Order("created_at DESC").First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AdjustmentRepository) FindByID(ctx context.Context, id string) (*domain.GlobalPricingAdjustment, error) {
	var g domain.GlobalPricingAdjustment
	err := conn(ctx, r.DB).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AdjustmentRepository) Create(ctx context.Context, g *domain.GlobalPricingAdjustment) error {
	return conn(ctx, r.DB).Create(g).Error
}

func (r *AdjustmentRepository) DeactivateAll(ctx context.Context) (int64, error) {
	res := conn(ctx, r.DB).Model(&domain.GlobalPricingAdjustment{}).
		Where("is_active = ?", true).
		Updates(map[string]any{"is_active": false, "deactivated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *AdjustmentRepository) Deactivate(ctx context.Context, id string) error {
	return conn(ctx, r.DB).Model(&domain.GlobalPricingAdjustment{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "deactivated_at": time.Now()}).Error
}

func (r *AdjustmentRepository) SetAffected(ctx context.Context, id string, n int) error {
	return conn(ctx, r.DB).Model(&domain.GlobalPricingAdjustment{}).
		Where("id = ?", id).
		Update("affected_count", n).Error
}

func (r *AdjustmentRepository) List(ctx context.Context, limit, offset int) ([]domain.GlobalPricingAdjustment, int64, error) {
	db := conn(ctx, r.DB).Model(&domain.GlobalPricingAdjustment{})

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []domain.GlobalPricingAdjustment
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
