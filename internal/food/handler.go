package food

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
	"github.com/arjunsachdeva/lifetrack-backend/internal/finance"
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
	if err := money.Check(req.Price); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "price must be a non-negative number")
	}

	date, err := daterange.ParseDate(req.PurchaseDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
	}

	category := req.Category
	if category == "" {
		category = CategoryOther
	}

	item := Item{
		UserID:       userID,
		Name:         req.Name,
		Category:     category,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Notes:        req.Notes,
		PurchaseDate: date,
	}

	// A priced purchase also books a finance expense, committed atomically
	// with the food row.
	var derived *finance.Record
	if req.Price > 0 {
		derived = &finance.Record{
			UserID:      userID,
			Type:        finance.TypeExpense,
			Amount:      req.Price,
			Label:       req.Name,
			Description: req.Notes,
			Date:        date,
		}
	}

	stored, err := h.Store.Insert(userContext(c), item, derived)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add food item")
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list food items")
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := h.Store.Get(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "food item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch food item")
	}
	return c.JSON(item)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
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
		Price:    req.Price,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	}
	if req.PurchaseDate != nil {
		date, err := daterange.ParseDate(*req.PurchaseDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
		}
		p.PurchaseDate = &date
	}

	item, err := h.Store.Update(userContext(c), userID, id, p)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "food item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update food item")
	}
	return c.JSON(item)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	id, err := itemID(c)
	if err != nil {
		return err
	}

	err = h.Store.Delete(userContext(c), userID, id)
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "food item not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete food item")
	}

	ip := c.IP()
	_ = audit.Write(userContext(c), h.AuditDB, audit.Entry{
		UserID:     &userID,
		Action:     "delete",
		EntityType: "food_item",
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to export food items")
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, export.Line(
			export.Field{Name: "date", Value: item.PurchaseDate.Format("2006-01-02")},
			export.Field{Name: "name", Value: item.Name},
			export.Field{Name: "category", Value: item.Category},
			export.Field{Name: "price", Value: money.Format(item.Price)},
			export.Field{Name: "quantity", Value: strconv.FormatFloat(item.Quantity, 'f', -1, 64)},
			export.Field{Name: "notes", Value: item.Notes},
		))
	}

	filename := "food-" + time.Now().Format("20060102-150405") + ".txt"
	return export.Send(c, h.ExportDir, filename, export.Render(lines), len(lines))
}

func listFilter(c *fiber.Ctx) (Filter, error) {
	dr, err := daterange.Parse(c.Query("start"), c.Query("end"))
	if err != nil {
		return Filter{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	category := c.Query("category")
	switch category {
	case "", CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnacks, CategoryGrocery, CategoryOther:
	default:
		return Filter{}, fiber.NewError(fiber.StatusBadRequest, "unknown category")
	}
	return Filter{Range: dr, Category: category}, nil
}

func itemID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}
	return id, nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
