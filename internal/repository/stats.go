package repository

import (
	"context"
	"time"

	"artmarket-admin/internal/domain/auctions"
	"artmarket-admin/internal/domain/newsletters"
	"artmarket-admin/internal/domain/offers"
	"artmarket-admin/internal/domain/partnerships"
	"artmarket-admin/internal/domain/pricing"
	"artmarket-admin/internal/domain/users"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers          int64                            `json:"totalUsers"`
	UsersPerRole        map[string]int64                 `json:"usersPerRole"`
	AuctionsPerStatus   map[string]int64                 `json:"auctionsPerStatus"`
	PendingOffers       int64                            `json:"pendingOffers"`
	PaidOfferRevenue    decimal.Decimal                  `json:"paidOfferRevenue"`
	RecentOfferRevenue  decimal.Decimal                  `json:"recentOfferRevenue"`
	PendingPartnerships int64                            `json:"pendingPartnerships"`
	Subscribers         int64                            `json:"subscribers"`
	PricedArtworks      int64                            `json:"pricedArtworks"`
	ActiveAdjustment    *pricing.GlobalPricingAdjustment `json:"activeAdjustment"`
}

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (r *StatsRepository) countBy(ctx context.Context, model any, col string) (map[string]int64, error) {
	var rows []groupCount
	err := conn(ctx, r.DB).Model(model).
		Select(col + " AS key, COUNT(*) AS count").
		Group(col).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, g := range rows {
		out[g.Key] = g.Count
	}
	return out, nil
}

func (r *StatsRepository) revenue(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	q := conn(ctx, r.DB).Model(&offers.Offer{}).
		Where("status = ? AND payment_status = ?", offers.StatusAccepted, offers.PaymentPaid)
	if since != nil {
		q = q.Where("updated_at >= ?", *since)
	}
	var d decimal.Decimal
	err := q.Select("COALESCE(SUM(offered_price), 0)").Row().Scan(&d)
	return d, err
}

// Dashboard gathers the admin overview. Recent revenue covers offers paid
// since the given time.
func (r *StatsRepository) Dashboard(ctx context.Context, since time.Time) (*DashboardStats, error) {
	var s DashboardStats
	db := conn(ctx, r.DB)

	var err error
	if s.UsersPerRole, err = r.countBy(ctx, &users.User{}, "role"); err != nil {
		return nil, err
	}
	for _, n := range s.UsersPerRole {
		s.TotalUsers += n
	}
	if s.AuctionsPerStatus, err = r.countBy(ctx, &auctions.Auction{}, "status"); err != nil {
		return nil, err
	}

	counts := []struct {
		dst   *int64
		model any
		where string
		arg   any
	}{
		{&s.PendingOffers, &offers.Offer{}, "status = ?", offers.StatusPending},
		{&s.PendingPartnerships, &partnerships.Partnership{}, "status = ?", partnerships.StatusPending},
		{&s.Subscribers, &newsletters.Subscriber{}, "is_subscribed = ?", true},
		{&s.PricedArtworks, &pricing.ArtworkPricing{}, "is_active = ?", true},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.arg).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if s.PaidOfferRevenue, err = r.revenue(ctx, nil); err != nil {
		return nil, err
	}
	if s.RecentOfferRevenue, err = r.revenue(ctx, &since); err != nil {
		return nil, err
	}

	var active pricing.GlobalPricingAdjustment
	res := db.Where("is_active = ?", true).Limit(1).Find(&active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		s.ActiveAdjustment = &active
	}
	return &s, nil
}
