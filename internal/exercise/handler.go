package exercise

import (
	"context"
	"errors"
	"fmt"
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

	date, err := daterange.ParseDate(req.Date)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	category := req.Category
	if category == "" {
		category = "other"
	}

	e, err := h.Store.Insert(userContext(c), Exercise{
		UserID:   userID,
		Name:     req.Name,
		Category: category,
		Duration: req.Duration,
		Done:     req.Done,
		Date:     date,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add exercise")
	}
	return c.Status(fiber.StatusCreated).JSON(e)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list exercises")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := exerciseID(c)
	if err != nil {
		return err
	}

	e, err := h.Store.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch exercise")
	}
	return c.JSON(e)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := exerciseID(c)
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
		Name:     req.Name,
		Category: req.Category,
		Duration: req.Duration,
		Done:     req.Done,
	}
	if req.Date != nil {
		date, err := daterange.ParseDate(*req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		p.Date = &date
	}

	e, err := h.Store.Update(userContext(c), userID, id, p)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update exercise")
	}
	return c.JSON(e)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := exerciseID(c)
	if err != nil {
		return err
	}

	err = h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete exercise")
	}

	ip := c.IP()
	_ = audit.Write(userContext(c), h.AuditDB, audit.Entry{
		UserID:     &userID,
		Action:     "delete",
		EntityType: "exercise",
		EntityID:   &id,
		IP:         &ip,
	})
	return c.JSON(fiber.Map{"ok": true})
}

// Toggle flips the done flag.
func (h *Handler) Toggle(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := exerciseID(c)
	if err != nil {
		return err
	}

	e, err := h.Store.Toggle(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "exercise not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to toggle exercise")
	}
	return c.JSON(e)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export exercises")
	}

	lines := make([]string, 0, len(items))
	for _, e := range items {
		lines = append(lines, export.Line(
			export.Field{Name: "date", Value: e.Date.Format("2006-01-02")},
			export.Field{Name: "name", Value: e.Name},
			export.Field{Name: "category", Value: e.Category},
			export.Field{Name: "duration", Value: fmt.Sprintf("%.0fm", e.Duration)},
			export.Field{Name: "done", Value: strconv.FormatBool(e.Done)},
		))
	}

	filename := "exercises-" + time.Now().Format("20060102-150405") + ".txt"
	return export.Send(c, h.ExportDir, filename, export.Render(lines), len(lines))
}

func listFilter(c *fiber.Ctx) (Filter, error) {
	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return Filter{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f := Filter{Range: dr}
	if v := c.Query("done"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, fiber.NewError(fiber.StatusBadRequest, "done must be true or false")
		}
		f.Done = &done
	}
	return f, nil
}

func exerciseID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid exercise id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
