package services_test

import (
	"database/sql"
	"errors"
	"testing"

	"crateworth/internal/domain"
	"crateworth/internal/repos"
	"crateworth/internal/services"
)

func TestRecordServiceCheckInDefaults(t *testing.T) {
	db := memdb(t)
	svc := services.NewRecordService(repos.NewRecordRepo(db))

	rec, err := svc.CheckIn(domain.Record{Artist: "Alice Coltrane", Title: "Journey in Satchidananda", MediaGrade: "VG+"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" || rec.CreatedAt == "" {
		t.Fatalf("id/created_at missing: %+v", rec)
	}
	if rec.Format != "LP" {
		t.Fatalf("format default want LP, got %q", rec.Format)
	}
	if rec.SleeveGrade != "VG+" {
		t.Fatalf("sleeve grade defaults to media grade, got %q", rec.SleeveGrade)
	}
	if rec.Status != "CHECKED_IN" || rec.PriceSource != "no_prices" {
		t.Fatalf("fresh record state wrong: %+v", rec)
	}

	if _, err := svc.CheckIn(domain.Record{Title: "No Artist", MediaGrade: "VG"}); err == nil {
		t.Fatal("missing artist must be rejected")
	}
}

func TestRecordServiceSellAndDelete(t *testing.T) {
	db := memdb(t)
	svc := services.NewRecordService(repos.NewRecordRepo(db))

	rec, err := svc.CheckIn(domain.Record{Artist: "Television", Title: "Marquee Moon", MediaGrade: "NM"})
	if err != nil {
		t.Fatal(err)
	}

	sold, err := svc.Sell(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sold.Status != "SOLD" {
		t.Fatalf("want SOLD, got %q", sold.Status)
	}

	if err := svc.Delete(rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(rec.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("deleted record should be gone, got %v", err)
	}
}

func TestRecordServiceSearch(t *testing.T) {
	db := memdb(t)
	svc := services.NewRecordService(repos.NewRecordRepo(db))

	if _, err := svc.CheckIn(domain.Record{Artist: "Sun Ra", Title: "Lanquidity", Label: "Philly Jazz", MediaGrade: "VG"}); err != nil {
		t.Fatal(err)
	}

	hits, err := svc.Search("lanquidity", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Artist != "Sun Ra" {
		t.Fatalf("search miss: %+v", hits)
	}

	byLabel, err := svc.Search("philly", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(byLabel) != 1 {
		t.Fatalf("label search miss: %+v", byLabel)
	}
}

func TestStoreStats(t *testing.T) {
	db := memdb(t)
	recRepo := repos.NewRecordRepo(db)
	svc := services.NewRecordService(recRepo)
	stats := services.NewStatsService(recRepo)

	before, err := stats.Store()
	if err != nil {
		t.Fatal(err)
	}

	rec, err := svc.CheckIn(domain.Record{Artist: "ESG", Title: "Come Away with ESG", MediaGrade: "VG+"})
	if err != nil {
		t.Fatal(err)
	}
	if err := recRepo.UpdatePricing(rec.ID, 24.99, 22.49, "marketplace"); err != nil {
		t.Fatal(err)
	}

	after, err := stats.Store()
	if err != nil {
		t.Fatal(err)
	}
	if after.Total != before.Total+1 || after.Priced != before.Priced+1 {
		t.Fatalf("counts wrong: before=%+v after=%+v", before, after)
	}
	if after.InventoryValue != before.InventoryValue+24.99 {
		t.Fatalf("inventory value wrong: before=%v after=%v", before.InventoryValue, after.InventoryValue)
	}
}
