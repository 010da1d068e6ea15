package handlers

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"crateworth/internal/domain"
	applog "crateworth/internal/log"
	"crateworth/internal/services"
	"crateworth/internal/validate"
)

type RecordHandler struct {
	Records *services.RecordService
}

// recordForm is the client-supplied subset of a record; posted prices and
// status are never accepted from the client.
type recordForm struct {
	Artist           string `json:"artist"`
	Title            string `json:"title"`
	Label            string `json:"label"`
	CatNo            string `json:"catno"`
	Format           string `json:"format"`
	MediaGrade       string `json:"media_grade"`
	SleeveGrade      string `json:"sleeve_grade"`
	DiscogsReleaseID int64  `json:"discogs_release_id"`
	Notes            string `json:"notes"`
}

func (f recordForm) validate() (domain.Record, string) {
	artist, ok := validate.Q(f.Artist)
	if !ok {
		return domain.Record{}, "enter a valid artist"
	}
	title, ok := validate.Q(f.Title)
	if !ok {
		return domain.Record{}, "enter a valid title"
	}
	grade, ok := validate.Grade(f.MediaGrade)
	if !ok {
		return domain.Record{}, "enter a valid media grade (M/NM/VG+/VG/G+/G/F/P)"
	}
	rec := domain.Record{
		Artist:           artist,
		Title:            title,
		Label:            strings.TrimSpace(f.Label),
		CatNo:            strings.TrimSpace(f.CatNo),
		MediaGrade:       grade,
		DiscogsReleaseID: f.DiscogsReleaseID,
		Notes:            strings.TrimSpace(f.Notes),
	}
	if f.Format != "" {
		format, ok := validate.Format(f.Format)
		if !ok {
			return domain.Record{}, "enter a valid format (LP/EP/SINGLE/BOX)"
		}
		rec.Format = format
	}
	if f.SleeveGrade != "" {
		sleeve, ok := validate.Grade(f.SleeveGrade)
		if !ok {
			return domain.Record{}, "enter a valid sleeve grade"
		}
		rec.SleeveGrade = sleeve
	}
	if rec.DiscogsReleaseID < 0 {
		return domain.Record{}, "enter a valid discogs release id"
	}
	return rec, ""
}

// Create is the check-in endpoint.
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	var f recordForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	rec, msg := f.validate()
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"endpoint": "record.create"})
		return badRequest(c, msg)
	}
	created, err := h.Records.CheckIn(rec)
	if err != nil {
		applog.Error(c, "record.create.error", err, nil)
		return serverError(c)
	}
	applog.Info(c, "record.checkin", map[string]any{"record_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}
	rec, err := h.Records.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "record not found")
	}
	if err != nil {
		applog.Error(c, "record.get.error", err, nil)
		return serverError(c)
	}
	return c.JSON(rec)
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		if _, ok := validate.Status(status); !ok {
			return badRequest(c, "invalid status filter")
		}
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query, ok := validate.Q(q)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q"})
			return badRequest(c, "enter a valid search keyword")
		}
		recs, err := h.Records.Search(query, c.QueryInt("page", 1), validate.Limit(c.Query("limit")))
		if err != nil {
			applog.Error(c, "record.search.error", err, nil)
			return serverError(c)
		}
		return c.JSON(fiber.Map{"records": recs, "count": len(recs)})
	}
	recs, err := h.Records.List(status, c.QueryInt("page", 1), validate.Limit(c.Query("limit")))
	if err != nil {
		applog.Error(c, "record.list.error", err, nil)
		return serverError(c)
	}
	return c.JSON(fiber.Map{"records": recs, "count": len(recs)})
}

func (h *RecordHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}
	var f recordForm
	if err := c.BodyParser(&f); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	rec, msg := f.validate()
	if msg != "" {
		return badRequest(c, msg)
	}
	rec.ID = id
	updated, err := h.Records.Update(rec)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "record not found")
	}
	if err != nil {
		applog.Error(c, "record.update.error", err, nil)
		return serverError(c)
	}
	return c.JSON(updated)
}

// Sell marks a record sold at its posted store price.
func (h *RecordHandler) Sell(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}
	rec, err := h.Records.Sell(id)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(c, "record not found")
	}
	if err != nil {
		applog.Error(c, "record.sell.error", err, nil)
		return serverError(c)
	}
	applog.Info(c, "record.sold", map[string]any{"record_id": id, "store_price": rec.StorePrice})
	return c.JSON(rec)
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid record id")
	}
	if err := h.Records.Delete(id); err != nil {
		applog.Error(c, "record.delete.error", err, nil)
		return serverError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
