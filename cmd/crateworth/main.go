package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"crateworth/internal/config"
	"crateworth/internal/http/handlers"
	applog "crateworth/internal/log"
	"crateworth/internal/marketplace"
	"crateworth/internal/marketplace/discogs"
	"crateworth/internal/marketplace/ebay"
	"crateworth/internal/repos"
	"crateworth/internal/scheduler"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Marketplace clients, with an optional shared Redis response cache
	var cache *marketplace.Cache
	if cfg.RedisURL != "" {
		cache, err = marketplace.NewCache(ctx, cfg.RedisURL, 15*time.Minute)
		if err != nil {
			log.Printf("[warn] marketplace cache disabled: %v", err)
			cache = nil
		}
	}
	dg := discogs.NewClient(cfg.DiscogsToken, cache)
	eb := ebay.NewClient(cfg.EbayToken, cache)

	deps := handlers.NewDeps(db, cfg, dg, eb)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please retry",
			})
		},
	})
	// Global body size guard (CSV imports stay small)
	app.Server().MaxRequestBodySize = 4 << 20 // 4 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- API ----------
	api := app.Group("/api/v1")

	api.Get("/records", deps.RecordHandler.List)
	api.Post("/records", deps.RecordHandler.Create)
	api.Get("/records/:id", deps.RecordHandler.Get)
	api.Put("/records/:id", deps.RecordHandler.Update)
	api.Post("/records/:id/sell", deps.RecordHandler.Sell)
	api.Delete("/records/:id", deps.RecordHandler.Delete)

	// Pricing refresh hits external marketplaces; throttle it separately
	api.Post("/records/:id/price", handlers.PriceLimiter(), deps.PricingHandler.Refresh)
	api.Get("/records/:id/pricing", deps.PricingHandler.History)

	api.Get("/stats", deps.StatsHandler.Store)
	api.Get("/export", deps.CSVHandler.Export)
	api.Post("/import", deps.CSVHandler.Import)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	// ---------- Background refresh ----------
	if cfg.RefreshCron != "" {
		sched := scheduler.New(deps.Pricing, cfg.RefreshCron)
		if err := sched.Start(ctx); err != nil {
			log.Fatal(err)
		}
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
