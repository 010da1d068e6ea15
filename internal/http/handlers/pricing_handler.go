package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "crateworth/internal/log"
	"crateworth/internal/repos"
	"crateworth/internal/services"
	"crateworth/internal/validate"
)

type PricingHandler struct {
	Pricing   *services.PricingService
	Snapshots *repos.SnapshotRepo
}

// Refresh reprices one record against Discogs and eBay. Distinguishes "no
// pricing data anywhere" from a priced result so the UI never shows $0.00
// for an unknown value.
func (h *PricingHandler) Refresh(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}

	res, err := h.Pricing.Refresh(c.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "record not found")
	}
	if err != nil {
		// marketplace outage, not absence of data
		applog.Error(c, "pricing.refresh.error", err, map[string]any{"record_id": id})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "marketplace lookup failed, try again later",
		})
	}

	if !res.HasData {
		applog.Info(c, "pricing.refresh.nodata", map[string]any{"record_id": id})
		return c.JSON(fiber.Map{
			"status":   "no_pricing_data",
			"record":   res.Record,
			"snapshot": res.Snapshot,
		})
	}

	applog.Info(c, "pricing.refresh.ok", map[string]any{
		"record_id":    id,
		"source":       res.Record.PriceSource,
		"store_price":  res.Record.StorePrice,
		"ebay_sell_at": res.Record.EbaySellAt,
	})
	return c.JSON(fiber.Map{
		"status":   "priced",
		"record":   res.Record,
		"snapshot": res.Snapshot,
	})
}

// History returns the snapshot trail for a record, newest first.
func (h *PricingHandler) History(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}
	snaps, err := h.Snapshots.History(id, validate.Limit(c.Query("limit")))
	if err != nil {
		applog.Error(c, "pricing.history.error", err, nil)
		return serverError(c)
	}
	return c.JSON(fiber.Map{"snapshots": snaps, "count": len(snaps)})
}
