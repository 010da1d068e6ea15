package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	applog "crateworth/internal/log"
	"crateworth/internal/services"
)

type CSVHandler struct {
	CSV *services.CSVService
}

func (h *CSVHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.CSV.Export(&buf); err != nil {
		applog.Error(c, "csv.export.error", err, nil)
		return serverError(c)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.csv"`)
	return c.Send(buf.Bytes())
}

func (h *CSVHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "empty CSV body")
	}
	imported, err := h.CSV.Import(bytes.NewReader(body))
	if err != nil {
		applog.Error(c, "csv.import.error", err, map[string]any{"imported": imported})
		return badRequest(c, err.Error())
	}
	applog.Info(c, "csv.import", map[string]any{"imported": imported})
	return c.JSON(fiber.Map{"imported": imported})
}
