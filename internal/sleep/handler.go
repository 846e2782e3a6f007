package sleep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arjunsachdeva/lifetrack-backend/internal/audit"
	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
	"github.com/arjunsachdeva/lifetrack-backend/internal/daterange"
	"github.com/arjunsachdeva/lifetrack-backend/internal/export"
	"github.com/arjunsachdeva/lifetrack-backend/internal/validate"
)

type Handler struct {
	Store     Store
	AuditDB   audit.Execer
	ExportDir string
}

func NewHandler(store Store, exportDir string) *Handler {
	return &Handler{Store: store, ExportDir: exportDir}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return validate.Reply(c, fields)
	}

	day, err := daterange.ParseDate(req.Day)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "day must be YYYY-MM-DD")
	}

	quality := req.Quality
	if quality == "" {
		quality = "fair"
	}

	l, err := h.Store.Insert(userContext(c), Log{
		UserID:   userID,
		Day:      day,
		Duration: req.Duration,
		Quality:  quality,
		Notes:    req.Notes,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add sleep log")
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items, err := h.Store.List(userContext(c), userID, Filter{Range: dr})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list sleep logs")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := logID(c)
	if err != nil {
		return err
	}

	l, err := h.Store.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "sleep log not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch sleep log")
	}
	return c.JSON(l)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := logID(c)
	if err != nil {
		return err
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if fields := validate.Struct(req); len(fields) > 0 {
		return validate.Reply(c, fields)
	}

	p := Patch{
		Duration: req.Duration,
		Quality:  req.Quality,
		Notes:    req.Notes,
	}
	if req.Day != nil {
		day, err := daterange.ParseDate(*req.Day)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be YYYY-MM-DD")
		}
		p.Day = &day
	}

	l, err := h.Store.Update(userContext(c), userID, id, p)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "sleep log not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update sleep log")
	}
	return c.JSON(l)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := logID(c)
	if err != nil {
		return err
	}

	err = h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "sleep log not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete sleep log")
	}

	ip := c.IP()
	_ = audit.Write(userContext(c), h.AuditDB, audit.Entry{
		UserID:     &userID,
		Action:     "delete",
		EntityType: "sleep_log",
		EntityID:   &id,
		IP:         &ip,
	})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) Export(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	items, err := h.Store.List(userContext(c), userID, Filter{Range: dr.ExtendToDayEnd()})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export sleep logs")
	}

	lines := make([]string, 0, len(items))
	for _, l := range items {
		lines = append(lines, export.Line(
			export.Field{Name: "day", Value: l.Day.Format("2006-01-02")},
			export.Field{Name: "duration", Value: fmt.Sprintf("%.1fh", l.Duration)},
			export.Field{Name: "quality", Value: l.Quality},
			export.Field{Name: "notes", Value: l.Notes},
		))
	}

	filename := "sleep-" + time.Now().Format("20060102-150405") + ".txt"
	return export.Send(c, h.ExportDir, filename, export.Render(lines), len(lines))
}

func logID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid log id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
