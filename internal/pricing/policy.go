package pricing

import "math"

// Tolerance when deciding a value already sits on a charm price, so float
// noise like 12.989999 still counts as 12.99.
const charmTolerance = 0.001

// Inputs are the reconciled source prices plus operator configuration for
// one pricing run. Nil pointers mean that source produced no data.
type Inputs struct {
	DiscogsMedian      *float64
	EbayLowest         *float64
	EbayLowestShipping *float64
	FlatShippingCost   float64
	MinStorePrice      float64
}

// Outputs are the two numbers the business posts.
type Outputs struct {
	StorePrice float64 `json:"store_price"`
	EbaySellAt float64 `json:"ebay_sell_at"`
}

// RoundDownToCharm rounds a price down to the nearest customer-facing charm
// price (a value ending in .49 or .99), never up — the store never charges
// more than the computed fair-market value. A value already on a charm
// price is returned unchanged. Values at or below zero, and values so small
// that even the next charm price down would be negative, come back as 0.00.
func RoundDownToCharm(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if isCharm(p) {
		return round2(p)
	}
	base := math.Floor(p)
	for _, c := range []float64{base + 0.99, base + 0.49} {
		if c <= p {
			return round2(c)
		}
	}
	// fractional part below .49: drop to the previous dollar's .99
	prev := base - 1 + 0.99
	if prev < 0 {
		return 0
	}
	return round2(prev)
}

func isCharm(p float64) bool {
	frac := p - math.Floor(p)
	return math.Abs(frac-0.49) < charmTolerance || math.Abs(frac-0.99) < charmTolerance
}

// ComputeEbaySellAt derives the eBay listing price. When eBay data exists,
// the competitor's delivered price (item + their shipping) minus our flat
// shipping cost is the raw estimate; a raw estimate above the Discogs
// median is discarded as an overpriced outlier and the Discogs median caps
// the result instead. Without eBay data the Discogs median alone decides.
// Absent inputs fall through the rule tiers; this never errors.
func ComputeEbaySellAt(in Inputs) float64 {
	var out float64
	switch {
	case in.EbayLowest != nil && in.EbayLowestShipping != nil:
		raw := *in.EbayLowest + *in.EbayLowestShipping - in.FlatShippingCost
		if raw < 0 {
			raw = 0
		}
		if in.DiscogsMedian != nil && raw > *in.DiscogsMedian {
			out = RoundDownToCharm(*in.DiscogsMedian)
		} else {
			out = RoundDownToCharm(raw)
		}
	case in.DiscogsMedian != nil && *in.DiscogsMedian > 0:
		out = RoundDownToCharm(*in.DiscogsMedian)
	}
	if out < 0 {
		out = 0
	}
	return out
}

// ComputeStorePrice derives the walk-in price from the Discogs median:
// round up to the .99 just above it. Deliberately the opposite rounding
// direction from the eBay policy — the in-store price faces no competing
// listings. The operator-configured minimum floor is applied by the caller,
// not here.
func ComputeStorePrice(median *float64) float64 {
	if median == nil || *median <= 0 {
		return 0
	}
	return round2(math.Ceil(*median) - 0.01)
}
