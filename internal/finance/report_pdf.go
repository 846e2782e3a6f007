package finance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/phpdave11/gofpdf"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
	"github.com/arjunsachdeva/lifetrack-backend/internal/daterange"
	"github.com/arjunsachdeva/lifetrack-backend/internal/money"
)

// MonthlyReport renders the month's finance statement as a PDF.
// GET /report?month=YYYY-MM (defaults to the current month).
func (h *Handler) MonthlyReport(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)

	dr := daterange.Range{Start: first, End: last, HasStart: true, HasEnd: true}
	items, err := h.Store.List(userContext(c), userID, Filter{Range: dr})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build report")
	}

	byType := map[string]float64{}
	for _, rec := range items {
		byType[rec.Type] += rec.Amount
	}
	totals := BuildTotals(byType)

	pdfBytes, err := buildMonthlyPDF(month, items, totals)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="finance-%s.pdf"`, month))
	return c.Send(pdfBytes)
}

func buildMonthlyPDF(month string, items []Record, totals Totals) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Lifetrack Finance Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Lifetrack Finance Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", month))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Records: %d", len(items)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Income: %s   Expense: %s   Net: %s",
		money.Format(totals.Income), money.Format(totals.Expense), money.Format(totals.Net)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(30, 7, "Date")
	pdf.Cell(30, 7, "Type")
	pdf.Cell(35, 7, "Amount")
	pdf.Cell(60, 7, "Label")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for _, rec := range items {
		pdf.Cell(30, 7, rec.Date.Format("2006-01-02"))
		pdf.Cell(30, 7, rec.Type)
		pdf.Cell(35, 7, money.Format(rec.Amount))
		pdf.Cell(60, 7, rec.Label)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
