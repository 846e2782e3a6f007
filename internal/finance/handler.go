package finance

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/arjunsachdeva/lifetrack-backend/internal/audit"
	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
	"github.com/arjunsachdeva/lifetrack-backend/internal/daterange"
	"github.com/arjunsachdeva/lifetrack-backend/internal/export"
	"github.com/arjunsachdeva/lifetrack-backend/internal/money"
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

	date, err := daterange.ParseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	typ, amount := req.Resolve()
	if err := money.Check(amount); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be a non-negative number")
	}

	rec, err := h.Store.Insert(userContext(c), Record{
		UserID:      userID,
		Type:        typ,
		Amount:      amount,
		Label:       req.Label,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add finance record")
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	f, err := listFilter(c)
	if err != nil {
		return err
	}

	items, err := h.Store.List(userContext(c), userID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list finance records")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := recordID(c)
	if err != nil {
		return err
	}

	rec, err := h.Store.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "finance record not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch finance record")
	}
	return c.JSON(rec)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := recordID(c)
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
		Type:        req.Type,
		Amount:      req.Amount,
		Label:       req.Label,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := daterange.ParseDate(*req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		p.Date = &date
	}

	rec, err := h.Store.Update(userContext(c), userID, id, p)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "finance record not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update finance record")
	}
	return c.JSON(rec)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := recordID(c)
	if err != nil {
		return err
	}

	err = h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "finance record not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete finance record")
	}

	ip := c.IP()
	_ = audit.Write(userContext(c), h.AuditDB, audit.Entry{
		UserID:     &userID,
		Action:     "delete",
		EntityType: "finance_record",
		EntityID:   &id,
		IP:         &ip,
	})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) Totals(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	totals, err := h.Store.Totals(userContext(c), userID, dr)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute totals")
	}
	return c.JSON(totals)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export finance records")
	}

	lines := make([]string, 0, len(items))
	for _, rec := range items {
		lines = append(lines, export.Line(
			export.Field{Name: "date", Value: rec.Date.Format("2006-01-02")},
			export.Field{Name: "type", Value: rec.Type},
			export.Field{Name: "amount", Value: money.Format(rec.Amount)},
			export.Field{Name: "label", Value: rec.Label},
			export.Field{Name: "description", Value: rec.Description},
		))
	}

	filename := "finance-" + time.Now().Format("20060102-150405") + ".txt"
	return export.Send(c, h.ExportDir, filename, export.Render(lines), len(lines))
}

func listFilter(c *fiber.Ctx) (Filter, error) {
	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return Filter{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	typ := c.Query("type")
	switch typ {
	case "", TypeExpense, TypeGain, TypeAssetsBuy:
	default:
		return Filter{}, fiber.NewError(fiber.StatusBadRequest, "type must be expense, gain or assets_buy")
	}
	return Filter{Range: dr, Type: typ}, nil
}

func recordID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid record id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
