package pricing

import (
	"context"

	domain "artmarket-admin/internal/domain/pricing"
)

// Transactor runs fn in a database transaction carried by the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ListQuery struct {
	Search   string
	Category string
	Artist   string
	Active   *bool
	Limit    int
	Offset   int
}

// Repository stores ArtworkPricing records. Finders return (nil, nil)
// when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.ArtworkPricing, error)
	FindByArtworkID(ctx context.Context, artworkID string) (*domain.ArtworkPricing, error)
	FindBySlug(ctx context.Context, slug string) (*domain.ArtworkPricing, error)
	List(ctx context.Context, q ListQuery) ([]domain.ArtworkPricing, int64, error)
	Save(ctx context.Context, p *domain.ArtworkPricing) error
	SaveAll(ctx context.Context, ps []*domain.ArtworkPricing) error
	ListActiveMatching(ctx context.Context, f domain.Filter) ([]*domain.ArtworkPricing, error)
	ResetAll(ctx context.Context, updatedBy *uint) (int64, error)
}

type AdjustmentRepository interface {
	Active(ctx context.Context) (*domain.GlobalPricingAdjustment, error)
	FindByID(ctx context.Context, id string) (*domain.GlobalPricingAdjustment, error)
	Create(ctx context.Context, g *domain.GlobalPricingAdjustment) error
	DeactivateAll(ctx context.Context) (int64, error)
	Deactivate(ctx context.Context, id string) error
	SetAffected(ctx context.Context, id string, n int) error
	List(ctx context.Context, limit, offset int) ([]domain.GlobalPricingAdjustment, int64, error)
}

// AdjustmentCache caches the active global adjustment. A cached nil means
// "no active adjustment"; found=false means the cache has no entry.
type AdjustmentCache interface {
	GetActive(ctx context.Context) (g *domain.GlobalPricingAdjustment, found bool, err error)
	SetActive(ctx context.Context, g *domain.GlobalPricingAdjustment) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	PublishPricing(ctx context.Context, events ...domain.Event) error
}

type nopCache struct{}

func (nopCache) GetActive(context.Context) (*domain.GlobalPricingAdjustment, bool, error) {
	return nil, false, nil
}
func (nopCache) SetActive(context.Context, *domain.GlobalPricingAdjustment) error { return nil }
func (nopCache) Invalidate(context.Context) error                                 { return nil }

type nopPublisher struct{}

func (nopPublisher) PublishPricing(context.Context, ...domain.Event) error { return nil }
