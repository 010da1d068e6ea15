package pricing

import "sort"

// Source kind tags recorded on an aggregation, naming which fallback tier
// produced the data.
const (
	SourceMarketplace  = "marketplace"   // live per-listing prices
	SourceReleaseStats = "release_stats" // release-level point estimate
	SourceNone         = "no_prices"     // every tier exhausted
)

// Aggregated is the result of reducing one marketplace's prices. Median,
// Lowest and Highest are nil when no usable price existed. SampleSize counts
// the listings examined; SourceCount counts the ones that carried a usable
// price. A new aggregation supersedes the previous one, it is never mutated.
type Aggregated struct {
	Median      *float64
	Lowest      *float64
	Highest     *float64
	SourceCount int
	SampleSize  int
	SourceKind  string
}

// Aggregate reduces a list of already-parsed prices to min/median/max.
// An empty list yields the no_prices sentinel regardless of sourceKind.
// Even-count median is the mean of the two middle values, rounded to two
// digits.
func Aggregate(prices []float64, sampleSize int, sourceKind string) Aggregated {
	if len(prices) == 0 {
		return Aggregated{SampleSize: sampleSize, SourceKind: SourceNone}
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	lowest := sorted[0]
	highest := sorted[len(sorted)-1]
	mid := len(sorted) / 2
	var median float64
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = round2((sorted[mid-1] + sorted[mid]) / 2)
	}

	return Aggregated{
		Median:      &median,
		Lowest:      &lowest,
		Highest:     &highest,
		SourceCount: len(sorted),
		SampleSize:  sampleSize,
		SourceKind:  sourceKind,
	}
}

// Tier is one step of a fallback chain: a fetch function plus the source
// kind tag stamped on the aggregation when this tier wins.
type Tier struct {
	Kind  string
	Fetch func() (prices []float64, sampleSize int, err error)
}

// ResolveWithFallback tries tiers in order and aggregates the first one that
// yields at least one price. A tier coming back empty is the expected
// trigger for the next tier, not an error. A tier returning an error is an
// infrastructure failure and is propagated immediately — it must never be
// conflated with "no data", or outages would show up as pricing gaps.
func ResolveWithFallback(tiers []Tier) (Aggregated, error) {
	for _, t := range tiers {
		prices, sampleSize, err := t.Fetch()
		if err != nil {
			return Aggregated{}, err
		}
		if len(prices) > 0 {
			return Aggregate(prices, sampleSize, t.Kind), nil
		}
	}
	return Aggregate(nil, 0, SourceNone), nil
}
