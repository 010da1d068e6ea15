package handlers_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"crateworth/internal/config"
	"crateworth/internal/http/handlers"
	"crateworth/internal/repos"
)

// The pricing endpoint carries its own, stricter limiter: 10 requests per
// 30s per client. The 11th request of a burst must get a 429.
func TestPricingEndpointRateLimited(t *testing.T) {
	cfg := config.Config{DBDSN: ":memory:", FlatShippingCost: 5.72, MinStorePrice: 1.99}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, &stubDiscogs{}, stubEbay{})

	app := fiber.New()
	app.Post("/api/v1/records/:id/price", handlers.PriceLimiter(), deps.PricingHandler.Refresh)

	// An unknown id keeps the handler cheap; the limiter counts the request
	// either way.
	for i := 1; i <= 10; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/records/absent-id/price", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("request %d: want 404 before the limit, got %d", i, resp.StatusCode)
		}
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/records/absent-id/price", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("burst request 11: want 429, got %d", resp.StatusCode)
	}
}
