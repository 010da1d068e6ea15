package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "crateworth/internal/log"
)

// PriceLimiter throttles the pricing refresh endpoint separately from the
// global limiter: every refresh fans out to Discogs and eBay, and both
// rate-limit aggressively on their side.
func PriceLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|price"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.pricing.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})
}
