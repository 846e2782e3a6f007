package target

import (
	"context"
	"errors"
	"strconv"
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

	date, err := daterange.ParseDate(req.TargetDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	t, err := h.Store.Insert(userContext(c), Target{
		UserID:     userID,
		Title:      req.Title,
		Priority:   priority,
		Notes:      req.Notes,
		TargetDate: date,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add target")
	}
	return c.Status(fiber.StatusCreated).JSON(t)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list targets")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := targetID(c)
	if err != nil {
		return err
	}

	t, err := h.Store.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "target not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch target")
	}
	return c.JSON(t)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := targetID(c)
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
		Title:      req.Title,
		Priority:   req.Priority,
		Notes:      req.Notes,
		IsAchieved: req.IsAchieved,
	}
	if req.TargetDate != nil {
		date, err := daterange.ParseDate(*req.TargetDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
		}
		p.TargetDate = &date
	}

	t, err := h.Store.Update(userContext(c), userID, id, p)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "target not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update target")
	}
	return c.JSON(t)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := targetID(c)
	if err != nil {
		return err
	}

	err = h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "target not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete target")
	}

	ip := c.IP()
	_ = audit.Write(userContext(c), h.AuditDB, audit.Entry{
		UserID:     &userID,
		Action:     "delete",
		EntityType: "target",
		EntityID:   &id,
		IP:         &ip,
	})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) Achieve(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := targetID(c)
	if err != nil {
		return err
	}

	t, err := h.Store.Achieve(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "target not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to achieve target")
	}
	return c.JSON(t)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export targets")
	}

	lines := make([]string, 0, len(items))
	for _, t := range items {
		lines = append(lines, export.Line(
			export.Field{Name: "target_date", Value: t.TargetDate.Format("2006-01-02")},
			export.Field{Name: "title", Value: t.Title},
			export.Field{Name: "priority", Value: t.Priority},
			export.Field{Name: "achieved", Value: strconv.FormatBool(t.IsAchieved)},
			export.Field{Name: "notes", Value: t.Notes},
		))
	}

	filename := "targets-" + time.Now().Format("20060102-150405") + ".txt"
	return export.Send(c, h.ExportDir, filename, export.Render(lines), len(lines))
}

func targetID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid target id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
