package pricing

// ShippingKind discriminates the three ways marketplaces express shipping.
type ShippingKind string

const (
	ShippingCalculated ShippingKind = "CALCULATED" // cost unknown until checkout
	ShippingFree       ShippingKind = "FREE"
	ShippingFixed      ShippingKind = "FIXED"
)

// ShippingQuote is a normalized shipping cost for one listing. Amount is
// meaningful only for ShippingFixed. Source APIs express "free shipping"
// three different ways (a FREE tag, a FIXED cost of 0, or no shipping field
// at all); all three normalize to the same quote here so the policy layer
// never has to know.
type ShippingQuote struct {
	Kind   ShippingKind
	Amount float64
}

func CalculatedShipping() ShippingQuote { return ShippingQuote{Kind: ShippingCalculated} }

func FreeShipping() ShippingQuote { return ShippingQuote{Kind: ShippingFree} }

// FixedShipping builds a fixed-cost quote. An amount of exactly 0.00
// collapses to FreeShipping, same downstream treatment.
func FixedShipping(amount float64) ShippingQuote {
	if amount <= 0 {
		return FreeShipping()
	}
	return ShippingQuote{Kind: ShippingFixed, Amount: amount}
}

// Cost values the quote for price reconciliation. CALCULATED shipping is
// assumed equal to the store's flat shipping rate — the seller will charge
// something, and the flat rate is the best available stand-in.
func (q ShippingQuote) Cost(flatRate float64) float64 {
	switch q.Kind {
	case ShippingFixed:
		return q.Amount
	case ShippingCalculated:
		return flatRate
	default:
		return 0
	}
}
