package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"crateworth/internal/domain"
	applog "crateworth/internal/log"
	"crateworth/internal/pricing"
	"crateworth/internal/repos"
)

// DiscogsSource is the slice of the Discogs client the pricing flow needs.
type DiscogsSource interface {
	SearchRelease(ctx context.Context, artist, title string) (int64, error)
	ListingPrices(ctx context.Context, releaseID int64) ([]float64, int, error)
	StatPrice(ctx context.Context, releaseID int64) (*float64, error)
}

// EbaySource is the slice of the eBay client the pricing flow needs.
type EbaySource interface {
	LowestListing(ctx context.Context, query string) (price float64, ship pricing.ShippingQuote, ok bool, err error)
}

// PricingService orchestrates one pricing refresh: fetch the Discogs
// fallback tiers and the cheapest eBay competitor, run the pricing engine,
// persist a snapshot, and update the record's posted prices. Fetch errors
// abort the refresh; tiers coming back empty are ordinary fallbacks.
type PricingService struct {
	Records   *repos.RecordRepo
	Snapshots *repos.SnapshotRepo
	Discogs   DiscogsSource
	Ebay      EbaySource

	FlatShippingCost float64
	MinStorePrice    float64
}

func NewPricingService(records *repos.RecordRepo, snapshots *repos.SnapshotRepo,
	dg DiscogsSource, eb EbaySource, flatShippingCost, minStorePrice float64) *PricingService {
	return &PricingService{
		Records:          records,
		Snapshots:        snapshots,
		Discogs:          dg,
		Ebay:             eb,
		FlatShippingCost: flatShippingCost,
		MinStorePrice:    minStorePrice,
	}
}

// RefreshResult reports one refresh run. HasData is false when every source
// was exhausted; callers must surface that as "no pricing data", not as a
// $0.00 price.
type RefreshResult struct {
	Record   domain.Record        `json:"record"`
	Snapshot domain.PriceSnapshot `json:"snapshot"`
	HasData  bool                 `json:"has_data"`
}

func (s *PricingService) Refresh(ctx context.Context, recordID string) (RefreshResult, error) {
	rec, err := s.Records.Get(recordID)
	if err != nil {
		return RefreshResult{}, err
	}

	releaseID := rec.DiscogsReleaseID
	if releaseID == 0 {
		releaseID, err = s.Discogs.SearchRelease(ctx, rec.Artist, rec.Title)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("discogs search: %w", err)
		}
		if releaseID != 0 {
			if err := s.Records.SetDiscogsRelease(rec.ID, releaseID); err != nil {
				return RefreshResult{}, err
			}
			rec.DiscogsReleaseID = releaseID
		}
	}

	agg, err := s.discogsAggregate(ctx, releaseID)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("discogs pricing: %w", err)
	}

	var ebayLowest, ebayShipping *float64
	price, ship, ok, err := s.Ebay.LowestListing(ctx, ebayQuery(rec))
	if err != nil {
		return RefreshResult{}, fmt.Errorf("ebay pricing: %w", err)
	}
	if ok {
		cost := ship.Cost(s.FlatShippingCost)
		ebayLowest, ebayShipping = &price, &cost
	}

	inputs := pricing.Inputs{
		DiscogsMedian:      agg.Median,
		EbayLowest:         ebayLowest,
		EbayLowestShipping: ebayShipping,
		FlatShippingCost:   s.FlatShippingCost,
		MinStorePrice:      s.MinStorePrice,
	}
	sellAt := pricing.ComputeEbaySellAt(inputs)
	store := pricing.ComputeStorePrice(agg.Median)

	hasData := agg.SourceKind != pricing.SourceNone || ebayLowest != nil
	source := agg.SourceKind
	if hasData {
		// operator-configured minimum applies to any priced record
		store = max(store, s.MinStorePrice)
		if source == pricing.SourceNone {
			source = "ebay"
		}
	}

	snap := domain.PriceSnapshot{
		ID:           uuid.NewString(),
		RecordID:     rec.ID,
		SourceKind:   agg.SourceKind,
		Median:       agg.Median,
		Lowest:       agg.Lowest,
		Highest:      agg.Highest,
		SourceCount:  agg.SourceCount,
		SampleSize:   agg.SampleSize,
		EbayLowest:   ebayLowest,
		EbayShipping: ebayShipping,
	}
	if hasData {
		snap.StorePrice = store
		snap.EbaySellAt = sellAt
	}
	if err := s.Snapshots.Insert(snap); err != nil {
		return RefreshResult{}, err
	}

	if hasData {
		if err := s.Records.UpdatePricing(rec.ID, store, sellAt, source); err != nil {
			return RefreshResult{}, err
		}
		rec.StorePrice, rec.EbaySellAt, rec.PriceSource = store, sellAt, source
		if rec.Status != "SOLD" {
			rec.Status = "PRICED"
		}
	} else {
		// no data anywhere: leave any previously posted prices alone
		if err := s.Records.SetPriceSource(rec.ID, pricing.SourceNone); err != nil {
			return RefreshResult{}, err
		}
		rec.PriceSource = pricing.SourceNone
	}

	return RefreshResult{Record: rec, Snapshot: snap, HasData: hasData}, nil
}

// RefreshAll reprices every unsold record, logging and skipping individual
// failures. Returns refreshed and failed counts.
func (s *PricingService) RefreshAll(ctx context.Context) (refreshed, failed int) {
	recs, err := s.Records.Unsold()
	if err != nil {
		applog.JobError("pricing.refresh_all.load", err, nil)
		return 0, 0
	}
	for _, rec := range recs {
		if _, err := s.Refresh(ctx, rec.ID); err != nil {
			applog.JobError("pricing.refresh.record", err, map[string]any{"record_id": rec.ID})
			failed++
			continue
		}
		refreshed++
	}
	applog.Job("pricing.refresh_all.done", map[string]any{"refreshed": refreshed, "failed": failed})
	return refreshed, failed
}

// discogsAggregate runs the Discogs fallback chain: live listings first,
// then the release-level point estimate. No linked release means an empty
// aggregation, not an error.
func (s *PricingService) discogsAggregate(ctx context.Context, releaseID int64) (pricing.Aggregated, error) {
	if releaseID == 0 {
		return pricing.Aggregate(nil, 0, pricing.SourceNone), nil
	}
	return pricing.ResolveWithFallback([]pricing.Tier{
		{Kind: pricing.SourceMarketplace, Fetch: func() ([]float64, int, error) {
			return s.Discogs.ListingPrices(ctx, releaseID)
		}},
		{Kind: pricing.SourceReleaseStats, Fetch: func() ([]float64, int, error) {
			p, err := s.Discogs.StatPrice(ctx, releaseID)
			if err != nil {
				return nil, 0, err
			}
			if p == nil {
				return nil, 0, nil
			}
			return []float64{*p}, 1, nil
		}},
	})
}

func ebayQuery(rec domain.Record) string {
	parts := []string{rec.Artist, rec.Title, "vinyl"}
	return strings.Join(parts, " ")
}
