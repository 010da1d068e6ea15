package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"crateworth/internal/domain"
	"crateworth/internal/pricing"
	"crateworth/internal/repos"
	"crateworth/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func checkin(t *testing.T, db *sqlx.DB, rec domain.Record) domain.Record {
	t.Helper()
	svc := services.NewRecordService(repos.NewRecordRepo(db))
	created, err := svc.CheckIn(rec)
	if err != nil {
		t.Fatal(err)
	}
	return created
}

// fakeDiscogs serves canned tier data.
type fakeDiscogs struct {
	releaseID   int64
	searchErr   error
	listings    []float64
	sampleSize  int
	listingsErr error
	stat        *float64
	statErr     error
}

func (f *fakeDiscogs) SearchRelease(context.Context, string, string) (int64, error) {
	return f.releaseID, f.searchErr
}
func (f *fakeDiscogs) ListingPrices(context.Context, int64) ([]float64, int, error) {
	return f.listings, f.sampleSize, f.listingsErr
}
func (f *fakeDiscogs) StatPrice(context.Context, int64) (*float64, error) {
	return f.stat, f.statErr
}

type fakeEbay struct {
	price float64
	ship  pricing.ShippingQuote
	ok    bool
	err   error
}

func (f *fakeEbay) LowestListing(context.Context, string) (float64, pricing.ShippingQuote, bool, error) {
	return f.price, f.ship, f.ok, f.err
}

func newPricingSvc(db *sqlx.DB, dg *fakeDiscogs, eb *fakeEbay) *services.PricingService {
	return services.NewPricingService(
		repos.NewRecordRepo(db), repos.NewSnapshotRepo(db), dg, eb, 5.72, 1.99)
}

func TestRefreshCapsEbayAgainstDiscogsMedian(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Nick Drake", Title: "Pink Moon", MediaGrade: "VG+", DiscogsReleaseID: 1})

	svc := newPricingSvc(db,
		&fakeDiscogs{listings: []float64{18, 20, 22}, sampleSize: 3},
		&fakeEbay{price: 50.00, ship: pricing.FixedShipping(10.00), ok: true},
	)

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasData {
		t.Fatalf("want priced result, got %+v", res)
	}
	// eBay delivered 54.28 beats the 20.00 median; Discogs ceiling wins
	if res.Record.EbaySellAt != 19.99 {
		t.Fatalf("ebay sell-at want 19.99, got %v", res.Record.EbaySellAt)
	}
	if res.Record.StorePrice != 19.99 {
		t.Fatalf("store price want 19.99, got %v", res.Record.StorePrice)
	}
	if res.Record.Status != "PRICED" || res.Record.PriceSource != pricing.SourceMarketplace {
		t.Fatalf("record not promoted: %+v", res.Record)
	}
	if res.Snapshot.SourceKind != pricing.SourceMarketplace || res.Snapshot.SourceCount != 3 {
		t.Fatalf("snapshot wrong: %+v", res.Snapshot)
	}

	// snapshot persisted
	latest, err := repos.NewSnapshotRepo(db).Latest(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *latest.Median != 20.00 || latest.EbaySellAt != 19.99 {
		t.Fatalf("persisted snapshot wrong: %+v", latest)
	}
}

func TestRefreshFallsBackToReleaseStats(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Can", Title: "Tago Mago", MediaGrade: "VG", DiscogsReleaseID: 2})

	stat := 15.00
	svc := newPricingSvc(db, &fakeDiscogs{stat: &stat}, &fakeEbay{})

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Snapshot.SourceKind != pricing.SourceReleaseStats {
		t.Fatalf("want release_stats tier, got %q", res.Snapshot.SourceKind)
	}
	if res.Record.EbaySellAt != 14.99 || res.Record.StorePrice != 14.99 {
		t.Fatalf("prices wrong: %+v", res.Record)
	}
}

func TestRefreshNoDataAnywhere(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Unknown Artist", Title: "White Label", MediaGrade: "G", DiscogsReleaseID: 3})

	svc := newPricingSvc(db, &fakeDiscogs{}, &fakeEbay{})

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasData {
		t.Fatalf("want no data, got %+v", res)
	}
	if res.Record.Status != "CHECKED_IN" || res.Record.StorePrice != 0 {
		t.Fatalf("no-data refresh must not price the record: %+v", res.Record)
	}
	if res.Record.PriceSource != pricing.SourceNone {
		t.Fatalf("want no_prices source, got %q", res.Record.PriceSource)
	}
	// the run itself is still recorded
	if res.Snapshot.SourceKind != pricing.SourceNone || res.Snapshot.StorePrice != 0 {
		t.Fatalf("snapshot wrong: %+v", res.Snapshot)
	}
}

func TestRefreshPropagatesMarketplaceFailure(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Neu!", Title: "Neu! 75", MediaGrade: "NM", DiscogsReleaseID: 4})

	boom := errors.New("discogs 500")
	svc := newPricingSvc(db, &fakeDiscogs{listingsErr: boom}, &fakeEbay{})

	if _, err := svc.Refresh(context.Background(), rec.ID); !errors.Is(err, boom) {
		t.Fatalf("infrastructure failure must propagate, got %v", err)
	}
	// a failed refresh leaves no snapshot behind
	snaps, err := repos.NewSnapshotRepo(db).History(rec.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 0 {
		t.Fatalf("failed refresh must not record a snapshot, got %d", len(snaps))
	}
}

func TestRefreshAppliesMinStorePriceFloor(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Bargain Bin", Title: "Scratched 45", MediaGrade: "P", DiscogsReleaseID: 5})

	svc := newPricingSvc(db, &fakeDiscogs{listings: []float64{0.50}, sampleSize: 1}, &fakeEbay{})

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	// raw store price 0.99 gets floored to the configured minimum
	if res.Record.StorePrice != 1.99 {
		t.Fatalf("store floor want 1.99, got %v", res.Record.StorePrice)
	}
	if res.Record.EbaySellAt != 0.49 {
		t.Fatalf("ebay sell-at want 0.49, got %v", res.Record.EbaySellAt)
	}
}

func TestRefreshEbayOnlyWithCalculatedShipping(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Broadcast", Title: "Tender Buttons", MediaGrade: "NM", DiscogsReleaseID: 6})

	// CALCULATED shipping is valued at the flat rate, so it cancels out
	svc := newPricingSvc(db, &fakeDiscogs{}, &fakeEbay{price: 10.00, ship: pricing.CalculatedShipping(), ok: true})

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasData {
		t.Fatal("ebay-only pricing still counts as data")
	}
	if res.Record.EbaySellAt != 9.99 {
		t.Fatalf("want 9.99, got %v", res.Record.EbaySellAt)
	}
	if res.Record.PriceSource != "ebay" {
		t.Fatalf("want ebay source, got %q", res.Record.PriceSource)
	}
	// no Discogs median: store price is just the floor
	if res.Record.StorePrice != 1.99 {
		t.Fatalf("want floored 1.99, got %v", res.Record.StorePrice)
	}
}

func TestRefreshLinksDiscogsReleaseOnFirstRun(t *testing.T) {
	db := memdb(t)
	rec := checkin(t, db, domain.Record{Artist: "Stereolab", Title: "Dots and Loops", MediaGrade: "VG+"})

	svc := newPricingSvc(db,
		&fakeDiscogs{releaseID: 424961, listings: []float64{30}, sampleSize: 1},
		&fakeEbay{})

	res, err := svc.Refresh(context.Background(), rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if res.Record.DiscogsReleaseID != 424961 {
		t.Fatalf("release id not linked: %+v", res.Record)
	}
	stored, err := repos.NewRecordRepo(db).Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.DiscogsReleaseID != 424961 {
		t.Fatalf("release id not persisted: %+v", stored)
	}
}
