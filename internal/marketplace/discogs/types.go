// Package discogs is a thin client for the pieces of the Discogs API the
// pricing flow needs: release search, release detail, marketplace stats,
// and marketplace listings. No retries or backoff here; callers own that
// decision.
package discogs

import "crateworth/internal/marketplace"

// SearchResponse is a /database/search page.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type SearchResult struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Year    string `json:"year"`
	Country string `json:"country"`
	CatNo   string `json:"catno"`
	Thumb   string `json:"thumb"`
}

// Release is the subset of a release detail object the pricing flow reads.
// LowestPrice and EstimatedPrice are release-level aggregates that can be
// populated even when no listing is live.
type Release struct {
	ID             int64               `json:"id"`
	Title          string              `json:"title"`
	NumForSale     int                 `json:"num_for_sale"`
	LowestPrice    *marketplace.Amount `json:"lowest_price"`
	EstimatedPrice *marketplace.Amount `json:"estimated_price"`
}

// Stats is a /marketplace/stats object: the release-level point estimate
// used as the fallback tier when no listings carry usable prices.
type Stats struct {
	NumForSale  int         `json:"num_for_sale"`
	BlockedFrom bool        `json:"blocked_from_sale"`
	LowestPrice *StatsPrice `json:"lowest_price"`
}

type StatsPrice struct {
	Currency string              `json:"currency"`
	Value    *marketplace.Amount `json:"value"`
}

// ListingsResponse is a page of marketplace listings for a release.
type ListingsResponse struct {
	Listings []Listing `json:"listings"`
}

type Listing struct {
	ID        int64         `json:"id"`
	Condition string        `json:"condition"`
	Price     *ListingPrice `json:"price"`
}

type ListingPrice struct {
	Currency string              `json:"currency"`
	Value    *marketplace.Amount `json:"value"`
}

// Prices extracts the usable listing prices from a page; entries without a
// parseable price are skipped, not errors. The second return is the number
// of listings examined.
func (lr *ListingsResponse) Prices() ([]float64, int) {
	var prices []float64
	for _, l := range lr.Listings {
		if l.Price == nil || l.Price.Value == nil {
			continue
		}
		if p, ok := l.Price.Value.Price(); ok {
			prices = append(prices, p)
		}
	}
	return prices, len(lr.Listings)
}

// StatPrice extracts the release-level point estimate, if any.
func (s *Stats) StatPrice() (float64, bool) {
	if s == nil || s.LowestPrice == nil || s.LowestPrice.Value == nil {
		return 0, false
	}
	return s.LowestPrice.Value.Price()
}

// StatPrice on a release detail prefers the live lowest price and falls
// back to the estimated price.
func (r *Release) StatPrice() (float64, bool) {
	if r == nil {
		return 0, false
	}
	if r.LowestPrice != nil {
		if p, ok := r.LowestPrice.Price(); ok {
			return p, true
		}
	}
	if r.EstimatedPrice != nil {
		if p, ok := r.EstimatedPrice.Price(); ok {
			return p, true
		}
	}
	return 0, false
}
