package pricing

import "testing"

func fp(v float64) *float64 { return &v }

func TestRoundDownToCharmBoundaries(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{12.30, 11.99},
		{12.50, 12.49},
		{12.49, 12.49},
		{12.99, 12.99},
		{13.00, 12.99},
		{12.48, 11.99},
		{1.00, 0.99},
		{0.99, 0.99},
		{0.49, 0.49},
		{0.30, 0.00}, // next charm down would be negative
		{0, 0.00},
		{-5, 0.00},
		{54.28, 53.99},
	}
	for _, c := range cases {
		if got := RoundDownToCharm(c.in); got != c.want {
			t.Fatalf("RoundDownToCharm(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRoundDownToCharmNeverRoundsUp(t *testing.T) {
	// values inside the charm tolerance may snap up by under a tenth of a
	// cent; anything beyond that is a genuine round-up
	for p := 0.0; p < 120; p += 0.07 {
		if got := RoundDownToCharm(p); got > p+0.001 && got != 0 {
			t.Fatalf("rounded up: %v -> %v", p, got)
		}
	}
}

func TestRoundDownToCharmIdempotent(t *testing.T) {
	for p := 0.0; p < 120; p += 0.07 {
		once := RoundDownToCharm(p)
		if twice := RoundDownToCharm(once); twice != once {
			t.Fatalf("not idempotent at %v: %v -> %v", p, once, twice)
		}
	}
}

func TestComputeEbaySellAtCapsAgainstDiscogsMedian(t *testing.T) {
	// eBay delivered 60.00 minus flat 5.72 = 54.28, above the 20.00 median:
	// the eBay estimate is an outlier and the Discogs ceiling wins.
	got := ComputeEbaySellAt(Inputs{
		DiscogsMedian:      fp(20.00),
		EbayLowest:         fp(50.00),
		EbayLowestShipping: fp(10.00),
		FlatShippingCost:   5.72,
	})
	if got != 19.99 {
		t.Fatalf("want 19.99, got %v", got)
	}
}

func TestComputeEbaySellAtUsesEbayWhenBelowMedian(t *testing.T) {
	got := ComputeEbaySellAt(Inputs{
		DiscogsMedian:      fp(30.00),
		EbayLowest:         fp(15.00),
		EbayLowestShipping: fp(4.00),
		FlatShippingCost:   5.72,
	})
	// raw = 15 + 4 - 5.72 = 13.28 -> charm 12.99
	if got != 12.99 {
		t.Fatalf("want 12.99, got %v", got)
	}
}

func TestComputeEbaySellAtNoEbayData(t *testing.T) {
	got := ComputeEbaySellAt(Inputs{DiscogsMedian: fp(15.00)})
	if got != 14.99 {
		t.Fatalf("want 14.99, got %v", got)
	}
}

func TestComputeEbaySellAtNoDataAtAll(t *testing.T) {
	if got := ComputeEbaySellAt(Inputs{FlatShippingCost: 5.72}); got != 0 {
		t.Fatalf("want 0.00, got %v", got)
	}
}

func TestComputeEbaySellAtClampsNegativeRaw(t *testing.T) {
	// delivered price below our flat shipping cost
	got := ComputeEbaySellAt(Inputs{
		EbayLowest:         fp(2.00),
		EbayLowestShipping: fp(1.00),
		FlatShippingCost:   5.72,
	})
	if got != 0 {
		t.Fatalf("want 0.00, got %v", got)
	}
}

func TestComputeStorePriceRoundsUp(t *testing.T) {
	cases := []struct {
		in   *float64
		want float64
	}{
		{fp(3.56), 3.99},
		{fp(54.00), 53.99}, // exact integer still lands on ceil-0.01
		{fp(0.50), 0.99},
		{fp(0), 0.00},
		{nil, 0.00},
	}
	for _, c := range cases {
		if got := ComputeStorePrice(c.in); got != c.want {
			t.Fatalf("ComputeStorePrice(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestShippingQuoteNormalization(t *testing.T) {
	if q := FixedShipping(0); q.Kind != ShippingFree {
		t.Fatalf("fixed 0.00 must normalize to free, got %+v", q)
	}
	if q := FixedShipping(4.50); q.Kind != ShippingFixed || q.Amount != 4.50 {
		t.Fatalf("fixed quote wrong: %+v", q)
	}
	if got := CalculatedShipping().Cost(5.72); got != 5.72 {
		t.Fatalf("calculated shipping must assume the flat rate, got %v", got)
	}
	if got := FreeShipping().Cost(5.72); got != 0 {
		t.Fatalf("free shipping costs 0, got %v", got)
	}
	if got := FixedShipping(3.25).Cost(5.72); got != 3.25 {
		t.Fatalf("fixed shipping cost wrong: %v", got)
	}
}
