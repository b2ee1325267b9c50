package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	// PriceScale is the number of decimal places kept for prices.
	PriceScale = 2
	// PercentScale is the number of decimal places kept for percentages.
	PercentScale = 4
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Factor converts a percentage delta into a multiplier: 10 -> 1.10.
func Factor(pct decimal.Decimal) decimal.Decimal {
	return one.Add(pct.Div(hundred))
}

// ApplyPercent returns price * (1 + pct/100) rounded to cents.
func ApplyPercent(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(Factor(pct)).Round(PriceScale)
}

// CumulativePercent back-computes the percent change from original to
// adjusted: (adjusted/original - 1) * 100.
func CumulativePercent(original, adjusted decimal.Decimal) decimal.Decimal {
	if original.IsZero() {
		return decimal.Zero
	}
	return adjusted.Div(original).Sub(one).Mul(hundred).Round(PercentScale)
}

func midpoint(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Div(two).Round(PriceScale)
}

// IsRange reports whether the record is priced as a min/max range.
func (p *ArtworkPricing) IsRange() bool {
	return p.OriginalPriceType == PriceTypeRange && p.OriginalMinPrice.Valid && p.OriginalMaxPrice.Valid
}

// Normalize derives OriginalPrice for range-priced artworks from the
// midpoint of min and max and clears range fields for single prices.
func (p *ArtworkPricing) Normalize() {
	if p.IsRange() {
		p.OriginalPrice = midpoint(p.OriginalMinPrice.Decimal, p.OriginalMaxPrice.Decimal)
		return
	}
	p.OriginalMinPrice = decimal.NullDecimal{}
	p.OriginalMaxPrice = decimal.NullDecimal{}
	p.AdjustedMinPrice = decimal.NullDecimal{}
	p.AdjustedMaxPrice = decimal.NullDecimal{}
}

// SetAdjustment recomputes adjusted prices from the original prices.
func (p *ArtworkPricing) SetAdjustment(pct decimal.Decimal) {
	p.AdjustmentPercentage = pct.Round(PercentScale)
	if p.IsRange() {
		lo := ApplyPercent(p.OriginalMinPrice.Decimal, pct)
		hi := ApplyPercent(p.OriginalMaxPrice.Decimal, pct)
		p.AdjustedMinPrice = decimal.NewNullDecimal(lo)
		p.AdjustedMaxPrice = decimal.NewNullDecimal(hi)
		p.AdjustedPrice = midpoint(lo, hi)
		return
	}
	p.AdjustedPrice = ApplyPercent(p.OriginalPrice, pct)
}

// Compound applies pct on top of the current adjustment. A record with no
// prior adjustment takes pct directly; otherwise pct scales the already
// adjusted prices and the cumulative percentage is back-computed.
func (p *ArtworkPricing) Compound(pct decimal.Decimal) {
	if p.AdjustmentPercentage.IsZero() {
		p.SetAdjustment(pct)
		return
	}

	if p.IsRange() {
		baseMin, baseMax := p.AdjustedMinPrice, p.AdjustedMaxPrice
		if !baseMin.Valid || !baseMax.Valid {
			baseMin, baseMax = p.OriginalMinPrice, p.OriginalMaxPrice
		}
		lo := ApplyPercent(baseMin.Decimal, pct)
		hi := ApplyPercent(baseMax.Decimal, pct)
		p.AdjustedMinPrice = decimal.NewNullDecimal(lo)
		p.AdjustedMaxPrice = decimal.NewNullDecimal(hi)
		p.AdjustedPrice = midpoint(lo, hi)
	} else {
		p.AdjustedPrice = ApplyPercent(p.AdjustedPrice, pct)
	}

	if p.OriginalPrice.IsZero() {
		// No price to back-compute from; chain the multipliers instead.
		p.AdjustmentPercentage = Factor(p.AdjustmentPercentage).Mul(Factor(pct)).Sub(one).Mul(hundred).Round(PercentScale)
		return
	}
	p.AdjustmentPercentage = CumulativePercent(p.OriginalPrice, p.AdjustedPrice)
}

// Reset restores the original prices and zeroes the adjustment.
func (p *ArtworkPricing) Reset() {
	p.AdjustmentPercentage = decimal.Zero
	p.AdjustedPrice = p.OriginalPrice
	if p.IsRange() {
		p.AdjustedMinPrice = p.OriginalMinPrice
		p.AdjustedMaxPrice = p.OriginalMaxPrice
	} else {
		p.AdjustedMinPrice = decimal.NullDecimal{}
		p.AdjustedMaxPrice = decimal.NullDecimal{}
	}
	p.AdjustmentReason = ""
}
