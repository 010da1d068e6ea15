// Package marketplace holds the pieces shared by the Discogs and eBay
// clients: a tolerant JSON money codec and an optional response cache.
package marketplace

import (
	"strings"

	"crateworth/internal/pricing"
)

// Amount is a raw monetary field as delivered by a marketplace API. The
// same field arrives as a JSON string on one endpoint and a JSON number on
// another, so it unmarshals from either and stays a string until
// pricing.ParsePrice decides whether it is usable.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		s = ""
	}
	*a = Amount(s)
	return nil
}

// Price parses the raw amount; false means empty, malformed, or outside the
// plausible price window.
func (a Amount) Price() (float64, bool) {
	return pricing.ParsePrice(string(a))
}
