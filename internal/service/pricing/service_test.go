package pricing

import (
	"context"
	"testing"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc         *Service
	tx          *fakeTx
	pricings    *memPricings
	adjustments *memAdjustments
	events      *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		tx:          &fakeTx{},
		pricings:    newMemPricings(),
		adjustments: &memAdjustments{},
		events:      &recordingPublisher{},
	}
	f.svc = NewService(Deps{
		Tx:          f.tx,
		Pricings:    f.pricings,
		Adjustments: f.adjustments,
		Events:      f.events,
		Now:         func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	return f
}

func fp(v float64) *float64 { return &v }

func moneyInput(id, category, artist string, price, pct float64) UpsertInput {
	return UpsertInput{
		ArtworkID:            id,
		ArtworkSlug:          "slug-" + id,
		OriginalPrice:        fp(price),
		OriginalPriceType:    "Money",
		AdjustmentPercentage: fp(pct),
		ArtworkTitle:         "Title " + id,
		ArtistName:           artist,
		Category:             category,
	}
}

func globalInput(pct float64) GlobalInput {
	return GlobalInput{AdjustmentPercentage: fp(pct), AdjustmentReason: "seasonal"}
}

func requireDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestUpsert_CreatesThenOverwrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	actor := uint(7)

	p, created, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 10), &actor)
	require.NoError(t, err)
	assert.True(t, created)
	requireDec(t, "1100", p.AdjustedPrice)
	requireDec(t, "10", p.AdjustmentPercentage)

	p2, created, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 25), &actor)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, p.ID, p2.ID)
	requireDec(t, "1250", p2.AdjustedPrice)
	assert.Len(t, f.pricings.rows, 1)
}

func TestUpsert_Range(t *testing.T) {
	f := newFixture()
	in := UpsertInput{
		ArtworkID:            "R1",
		ArtworkSlug:          "r-1",
		OriginalPriceType:    "Range",
		OriginalMinPrice:     fp(1000),
		OriginalMaxPrice:     fp(2000),
		AdjustmentPercentage: fp(10),
		ArtworkTitle:         "Dunes",
		ArtistName:           "Ana",
	}

	p, _, err := f.svc.Upsert(context.Background(), in, nil)
	require.NoError(t, err)
	requireDec(t, "1500", p.OriginalPrice)
	requireDec(t, "1100", p.AdjustedMinPrice.Decimal)
	requireDec(t, "2200", p.AdjustedMaxPrice.Decimal)
	requireDec(t, "1650", p.AdjustedPrice)
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*UpsertInput)
		field string
	}{
		{"missing artwork id", func(in *UpsertInput) { in.ArtworkID = "" }, "artworkId"},
		{"blank slug", func(in *UpsertInput) { in.ArtworkSlug = "   " }, "artworkSlug"},
		{"missing percentage", func(in *UpsertInput) { in.AdjustmentPercentage = nil }, "adjustmentPercentage"},
		{"missing price", func(in *UpsertInput) { in.OriginalPrice = nil }, "originalPrice"},
		{"missing title", func(in *UpsertInput) { in.ArtworkTitle = "" }, "artworkTitle"},
		{"missing artist", func(in *UpsertInput) { in.ArtistName = "" }, "artistName"},
		{"bad price type", func(in *UpsertInput) { in.OriginalPriceType = "Barter" }, "originalPriceType"},
		{"range without max", func(in *UpsertInput) {
			in.OriginalPriceType = "Range"
			in.OriginalMinPrice = fp(10)
		}, "originalMaxPrice"},
		{"percentage wipes price", func(in *UpsertInput) { in.AdjustmentPercentage = fp(-100) }, "adjustmentPercentage"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			in := moneyInput("A1", "Painting", "Ana", 1000, 10)
			tc.edit(&in)

			_, _, err := f.svc.Upsert(context.Background(), in, nil)
			require.Error(t, err)
			ae := apperr.As(err)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Equal(t, tc.field, ae.Field)
			assert.Empty(t, f.pricings.rows)
		})
	}
}

func TestGlobalAdjustment_CompoundsOnAdjustedPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 10), nil)
	require.NoError(t, err)

	res, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(-10), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)
	assert.Equal(t, 1, res.Adjustment.AffectedCount)

	p, err := f.svc.Get(ctx, "A1", "")
	require.NoError(t, err)
	requireDec(t, "990", p.AdjustedPrice) // not 900
	requireDec(t, "-1", p.AdjustmentPercentage)
	assert.Equal(t, "seasonal", p.AdjustmentReason)
	assert.Equal(t, 1, f.tx.calls)
}

func TestGlobalAdjustment_StampsCascadedRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 10), nil)
	require.NoError(t, err)
	stale := f.pricings.rows["A1"]
	stale.UpdatedAt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	f.pricings.rows["A1"] = stale

	actor := uint(4)
	_, err = f.svc.CreateGlobalAdjustment(ctx, globalInput(5), &actor)
	require.NoError(t, err)

	p := f.pricings.rows["A1"]
	assert.True(t, p.UpdatedAt.Equal(f.svc.now()), "got %s", p.UpdatedAt)
	require.NotNil(t, p.UpdatedBy)
	assert.Equal(t, actor, *p.UpdatedBy)
}

func TestGlobalAdjustment_ZeroPriorUsesPercentDirectly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 200, 0), nil)
	require.NoError(t, err)
	_, err = f.svc.CreateGlobalAdjustment(ctx, globalInput(15), nil)
	require.NoError(t, err)

	p, err := f.svc.Get(ctx, "A1", "")
	require.NoError(t, err)
	requireDec(t, "230", p.AdjustedPrice)
	requireDec(t, "15", p.AdjustmentPercentage)
}

func TestGlobalAdjustment_Filters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, in := range []UpsertInput{
		moneyInput("A1", "Painting", "Ana", 1000, 0),
		moneyInput("A2", "Painting", "Ben", 1000, 0),
		moneyInput("S1", "Sculpture", "Ana", 1000, 0),
	} {
		_, _, err := f.svc.Upsert(ctx, in, nil)
		require.NoError(t, err)
	}

	in := globalInput(20)
	in.AppliedToCategories = []string{"painting", " Painting "}
	in.ExcludeArtworks = []string{"A1"}
	res, err := f.svc.CreateGlobalAdjustment(ctx, in, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Affected)
	assert.Equal(t, []string{"painting"}, []string(res.Adjustment.AppliedToCategories))

	a1, err := f.svc.Get(ctx, "A1", "")
	require.NoError(t, err)
	requireDec(t, "1000", a1.AdjustedPrice)

	a2, err := f.svc.Get(ctx, "A2", "")
	require.NoError(t, err)
	requireDec(t, "1200", a2.AdjustedPrice)

	s1, err := f.svc.Get(ctx, "", "slug-S1")
	require.NoError(t, err)
	requireDec(t, "1000", s1.AdjustedPrice)
	requireDec(t, "0", s1.AdjustmentPercentage)
}

func TestGlobalAdjustment_SkipsSoftDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 0), nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, p.ID, nil))

	res, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(50), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Affected)

	_, err = f.svc.Get(ctx, "A1", "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGlobalAdjustment_OnlyOneActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(10), nil)
	require.NoError(t, err)
	assert.Zero(t, first.Deactivated)

	second, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(5), nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, second.Deactivated)
	assert.Equal(t, 1, f.adjustments.activeCount())

	active, err := f.svc.ActiveGlobalAdjustment(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.Adjustment.ID, active.ID)
}

func TestGlobalAdjustment_RequiresReason(t *testing.T) {
	f := newFixture()
	in := globalInput(10)
	in.AdjustmentReason = "  "

	_, err := f.svc.CreateGlobalAdjustment(context.Background(), in, nil)
	ae := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "adjustmentReason", ae.Field)
	assert.Zero(t, f.adjustments.activeCount())
}

func TestQuote(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	q, err := f.svc.Quote(ctx, QuoteInput{ArtworkID: "N1", OriginalPrice: fp(500), OriginalPriceType: "Money", Category: "Painting"})
	require.NoError(t, err)
	assert.Equal(t, SourceOriginal, q.Source)
	requireDec(t, "500", q.Pricing.AdjustedPrice)

	in := globalInput(-20)
	in.AppliedToCategories = []string{"Painting"}
	g, err := f.svc.CreateGlobalAdjustment(ctx, in, nil)
	require.NoError(t, err)

	q, err = f.svc.Quote(ctx, QuoteInput{ArtworkID: "N1", OriginalPrice: fp(500), OriginalPriceType: "Money", Category: "painting"})
	require.NoError(t, err)
	assert.Equal(t, SourceGlobal, q.Source)
	assert.Equal(t, g.Adjustment.ID, q.GlobalAdjustmentID)
	requireDec(t, "400", q.Pricing.AdjustedPrice)
	requireDec(t, "-20", q.Pricing.AdjustmentPercentage)

	q, err = f.svc.Quote(ctx, QuoteInput{ArtworkID: "N2", OriginalPrice: fp(500), OriginalPriceType: "Money", Category: "Sculpture"})
	require.NoError(t, err)
	assert.Equal(t, SourceOriginal, q.Source)

	_, _, err = f.svc.Upsert(ctx, moneyInput("N3", "Painting", "Ana", 100, 5), nil)
	require.NoError(t, err)
	q, err = f.svc.Quote(ctx, QuoteInput{ArtworkID: "N3", OriginalPrice: fp(100), OriginalPriceType: "Money"})
	require.NoError(t, err)
	assert.Equal(t, SourceStored, q.Source)
	requireDec(t, "105", q.Pricing.AdjustedPrice)

	assert.Empty(t, f.pricings.rows["N1"].ArtworkID, "quotes are never persisted")
}

func TestGlobalAdjustment_CacheWriteFailureDropsStaleEntry(t *testing.T) {
	f := newFixture()
	cache := &memCache{}
	f.svc.cache = cache
	ctx := context.Background()

	_, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(10), nil)
	require.NoError(t, err)
	require.True(t, cache.found)

	cache.failSet = true
	res, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(-50), nil)
	require.NoError(t, err)
	assert.False(t, cache.found)

	q, err := f.svc.Quote(ctx, QuoteInput{ArtworkID: "Q1", OriginalPrice: fp(1000), OriginalPriceType: "Money"})
	require.NoError(t, err)
	assert.Equal(t, SourceGlobal, q.Source)
	assert.Equal(t, res.Adjustment.ID, q.GlobalAdjustmentID)
	requireDec(t, "500", q.Pricing.AdjustedPrice)
}

func TestReset(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 10), nil)
	require.NoError(t, err)
	_, err = f.svc.CreateGlobalAdjustment(ctx, globalInput(10), nil)
	require.NoError(t, err)

	got, err := f.svc.Reset(ctx, p.ID, nil)
	require.NoError(t, err)
	requireDec(t, "0", got.AdjustmentPercentage)
	requireDec(t, "1000", got.AdjustedPrice)
	assert.Zero(t, f.adjustments.activeCount())

	_, err = f.svc.Reset(ctx, "missing", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResetAll(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.svc.Upsert(ctx, moneyInput("A1", "Painting", "Ana", 1000, 10), nil)
	require.NoError(t, err)
	_, _, err = f.svc.Upsert(ctx, moneyInput("A2", "Sculpture", "Ben", 300, -5), nil)
	require.NoError(t, err)
	_, err = f.svc.CreateGlobalAdjustment(ctx, globalInput(10), nil)
	require.NoError(t, err)

	n, err := f.svc.ResetAll(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Zero(t, f.adjustments.activeCount())

	for _, id := range []string{"A1", "A2"} {
		p, err := f.svc.Get(ctx, id, "")
		require.NoError(t, err)
		requireDec(t, "0", p.AdjustmentPercentage)
		assert.True(t, p.AdjustedPrice.Equal(p.OriginalPrice))
	}
	assert.Equal(t, domain.EventResetAll, f.events.events[len(f.events.events)-1].Type)
}

func TestDeactivateGlobalAdjustment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.svc.CreateGlobalAdjustment(ctx, globalInput(10), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeactivateGlobalAdjustment(ctx, res.Adjustment.ID))
	assert.Zero(t, f.adjustments.activeCount())

	err = f.svc.DeactivateGlobalAdjustment(ctx, res.Adjustment.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = f.svc.DeactivateGlobalAdjustment(ctx, "nope")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestGet_RequiresIdentifier(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Get(context.Background(), " ", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
