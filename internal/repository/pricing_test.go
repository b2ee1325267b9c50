package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	domain "artmarket-admin/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPricing(t *testing.T, ctx context.Context, r *PricingRepository, p domain.ArtworkPricing) *domain.ArtworkPricing {
	t.Helper()
	if p.ArtworkSlug == "" {
		p.ArtworkSlug = "slug-" + p.ArtworkID
	}
	p.ArtworkTitle = "Title " + p.ArtworkID
	if p.OriginalPriceType == "" {
		p.OriginalPriceType = domain.PriceTypeMoney
	}
	active := p.IsActive
	p.IsActive = true
	p.Normalize()
	p.SetAdjustment(p.AdjustmentPercentage)
	require.NoError(t, r.Save(ctx, &p))

	// is_active has a database default, so an inactive row needs a second write
	if !active {
		p.IsActive = false
		require.NoError(t, r.Save(ctx, &p))
	}
	return &p
}

func artworkIDs(ps []*domain.ArtworkPricing) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ArtworkID)
	}
	sort.Strings(out)
	return out
}

func TestPricingRepository_ListActiveMatching(t *testing.T) {
	ctx := txContext(t)
	r := NewPricingRepository(testDB)

	seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "LM-1", Category: " Painting ", ArtistName: "Ana Lima", OriginalPrice: decimal.NewFromInt(100), IsActive: true})
	seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "LM-2", Category: "painting", ArtistName: "Ben Ode", OriginalPrice: decimal.NewFromInt(200), IsActive: true})
	seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "LM-3", ArtworkSlug: "blue-hour", Category: "Painting", ArtistName: "ana lima", OriginalPrice: decimal.NewFromInt(300), IsActive: true})
	seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "LM-4", Category: "Sculpture", ArtistName: "Ana Lima", OriginalPrice: decimal.NewFromInt(400), IsActive: true})
	seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "LM-5", Category: "Painting", ArtistName: "Ana Lima", OriginalPrice: decimal.NewFromInt(500)})

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{"category ignores case and padding", domain.Filter{Categories: []string{"PAINTING"}}, []string{"LM-1", "LM-2", "LM-3"}},
		{"artist", domain.Filter{Artists: []string{"Ana Lima"}}, []string{"LM-1", "LM-3", "LM-4"}},
		{"category and artist", domain.Filter{Categories: []string{"painting"}, Artists: []string{"ANA LIMA"}}, []string{"LM-1", "LM-3"}},
		{"exclude by id or slug", domain.Filter{Categories: []string{"painting"}, Exclude: []string{"lm-1", "Blue-Hour"}}, []string{"LM-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ListActiveMatching(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, artworkIDs(got))
		})
	}

	all, err := r.ListActiveMatching(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.NotContains(t, artworkIDs(all), "LM-5")
}

func TestPricingRepository_ResetAll(t *testing.T) {
	ctx := txContext(t)
	r := NewPricingRepository(testDB)

	money := seedPricing(t, ctx, r, domain.ArtworkPricing{
		ArtworkID:            "RA-1",
		ArtistName:           "Ana",
		OriginalPrice:        decimal.NewFromInt(1000),
		AdjustmentPercentage: decimal.NewFromInt(10),
		AdjustmentReason:     "seasonal",
		IsActive:             true,
	})
	ranged := seedPricing(t, ctx, r, domain.ArtworkPricing{
		ArtworkID:            "RA-2",
		ArtistName:           "Ben",
		OriginalPriceType:    domain.PriceTypeRange,
		OriginalMinPrice:     decimal.NewNullDecimal(decimal.NewFromInt(100)),
		OriginalMaxPrice:     decimal.NewNullDecimal(decimal.NewFromInt(300)),
		AdjustmentPercentage: decimal.NewFromInt(-20),
		IsActive:             true,
	})
	gone := seedPricing(t, ctx, r, domain.ArtworkPricing{
		ArtworkID:            "RA-3",
		ArtistName:           "Cy",
		OriginalPrice:        decimal.NewFromInt(50),
		AdjustmentPercentage: decimal.NewFromInt(50),
	})

	actor := uint(7)
	n, err := r.ResetAll(ctx, &actor)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(2))

	got, err := r.FindByID(ctx, money.ID)
	require.NoError(t, err)
	assert.True(t, got.AdjustedPrice.Equal(decimal.NewFromInt(1000)), got.AdjustedPrice.String())
	assert.True(t, got.AdjustmentPercentage.IsZero())
	assert.Empty(t, got.AdjustmentReason)
	assert.False(t, got.AdjustedMinPrice.Valid)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, actor, *got.UpdatedBy)

	got, err = r.FindByID(ctx, ranged.ID)
	require.NoError(t, err)
	assert.True(t, got.AdjustedPrice.Equal(decimal.NewFromInt(200)), got.AdjustedPrice.String())
	require.True(t, got.AdjustedMinPrice.Valid)
	assert.True(t, got.AdjustedMinPrice.Decimal.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.AdjustedMaxPrice.Decimal.Equal(decimal.NewFromInt(300)))

	got, err = r.FindByID(ctx, gone.ID)
	require.NoError(t, err)
	assert.True(t, got.AdjustedPrice.Equal(decimal.NewFromInt(75)), "inactive records keep their adjustment")
}

func TestPricingRepository_SaveAllWritesUpdatedAt(t *testing.T) {
	ctx := txContext(t)
	r := NewPricingRepository(testDB)

	p := seedPricing(t, ctx, r, domain.ArtworkPricing{ArtworkID: "SA-1", ArtistName: "Ana", OriginalPrice: decimal.NewFromInt(100), IsActive: true})

	stamp := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	p.Compound(decimal.NewFromInt(25))
	p.UpdatedAt = stamp
	require.NoError(t, r.SaveAll(ctx, []*domain.ArtworkPricing{p}))

	got, err := r.FindByArtworkID(ctx, "SA-1")
	require.NoError(t, err)
	assert.True(t, got.AdjustedPrice.Equal(decimal.NewFromInt(125)), got.AdjustedPrice.String())
	assert.True(t, got.UpdatedAt.Equal(stamp), "got %s", got.UpdatedAt)
}
