// Package ebay is a thin client for the eBay Browse API item-summary
// search, plus the normalization of eBay's three shipping representations
// into a single pricing.ShippingQuote.
package ebay

import (
	"crateworth/internal/marketplace"
	"crateworth/internal/pricing"
)

type SearchResponse struct {
	Total         int           `json:"total"`
	ItemSummaries []ItemSummary `json:"itemSummaries"`
}

type ItemSummary struct {
	ItemID    string `json:"itemId"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	ItemURL   string `json:"itemWebUrl"`

	Price Money `json:"price"`

	// Shipping arrives in one of three shapes depending on endpoint and
	// listing age; ExtractShipping reconciles them.
	ShippingOptions     []ShippingOption     `json:"shippingOptions"`
	ShippingCostSummary *ShippingCostSummary `json:"shippingCostSummary"`
	ShippingServiceCost *Money               `json:"shippingServiceCost"`
}

// Money accepts both the Browse API field name ("value") and the legacy
// Finding API name ("__value__").
type Money struct {
	Value       marketplace.Amount `json:"value"`
	LegacyValue marketplace.Amount `json:"__value__"`
	Currency    string             `json:"currency"`
}

// Price parses whichever value field is populated.
func (m Money) Price() (float64, bool) {
	if p, ok := m.Value.Price(); ok {
		return p, true
	}
	return m.LegacyValue.Price()
}

type ShippingOption struct {
	ShippingCostType string `json:"shippingCostType"` // FIXED | CALCULATED
	ShippingCost     *Money `json:"shippingCost"`
}

type ShippingCostSummary struct {
	ShippingCostType string `json:"shippingCostType"`
	ShippingCost     *Money `json:"shippingCost"`
}

const costTypeCalculated = "CALCULATED"

// ExtractShipping normalizes an item's shipping fields, inspected in
// priority order: shippingOptions array, then shippingCostSummary, then the
// flat shippingServiceCost field. A listing with no shipping information at
// all ships free as far as pricing is concerned.
func ExtractShipping(item ItemSummary) pricing.ShippingQuote {
	if len(item.ShippingOptions) > 0 {
		opt := item.ShippingOptions[0]
		if opt.ShippingCostType == costTypeCalculated {
			return pricing.CalculatedShipping()
		}
		return fixedFrom(opt.ShippingCost)
	}
	if s := item.ShippingCostSummary; s != nil {
		if s.ShippingCostType == costTypeCalculated {
			return pricing.CalculatedShipping()
		}
		return fixedFrom(s.ShippingCost)
	}
	if item.ShippingServiceCost != nil {
		return fixedFrom(item.ShippingServiceCost)
	}
	return pricing.FreeShipping()
}

func fixedFrom(m *Money) pricing.ShippingQuote {
	if m == nil {
		return pricing.FreeShipping()
	}
	if v, ok := m.Price(); ok {
		return pricing.FixedShipping(v)
	}
	// a cost of exactly "0.00" fails the plausibility window but is a real
	// free-shipping signal
	return pricing.FreeShipping()
}

// LowestPriced picks the cheapest item by delivered-comparable item price.
// Summaries without a parseable price are skipped; they are common in
// search results and are not errors. Returns false when nothing usable
// remained.
func LowestPriced(items []ItemSummary) (ItemSummary, float64, bool) {
	var (
		best      ItemSummary
		bestPrice float64
		found     bool
	)
	for _, it := range items {
		p, ok := it.Price.Price()
		if !ok {
			continue
		}
		if !found || p < bestPrice {
			best, bestPrice, found = it, p, true
		}
	}
	return best, bestPrice, found
}
