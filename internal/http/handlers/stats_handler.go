package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "crateworth/internal/log"
	"crateworth/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

func (h *StatsHandler) Store(c *fiber.Ctx) error {
	stats, err := h.Stats.Store()
	if err != nil {
		applog.Error(c, "stats.error", err, nil)
		return serverError(c)
	}
	return c.JSON(stats)
}
