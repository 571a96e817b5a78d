package handler

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"go-sales-inventory/internal/export"
	"go-sales-inventory/internal/repository"
	"go-sales-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("invalid date, use YYYY-MM-DD")

type SaleHandler struct {
	service service.SaleService
	loc     *time.Location
	log     *zap.Logger
}

// NewSaleHandler reads date filters in loc.
func NewSaleHandler(s service.SaleService, loc *time.Location, log *zap.Logger) *SaleHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleHandler{service: s, loc: loc, log: namedLogger(log, "sale")}
}

// CreateSale records a sale.
// POST /sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	sale, err := h.service.RecordSale(&req, currentActor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale saved", "saleId": sale.ID})
}

// GetSales lists sales newest first.
// GET /sales?start=YYYY-MM-DD&end=YYYY-MM-DD&salesmanId=
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	sales, err := h.service.GetAllSales(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"sales": sales})
}

// GET /sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.service.GetSaleByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"sale": sale})
}

// GET /sales/summary
func (h *SaleHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	summary, err := h.service.GetSummary(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}

// ExportSales streams the filtered sales as a spreadsheet.
// GET /sales/export
func (h *SaleHandler) ExportSales(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	sales, err := h.service.GetAllSales(filter)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var buf bytes.Buffer
	if err := export.WriteSales(&buf, sales, h.loc); err != nil {
		return respondError(c, h.log, err)
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().In(h.loc).Format("20060102"))
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, export.ContentTypeXLSX)
	return c.Send(buf.Bytes())
}

// parseFilter reads start/end as calendar days in the business zone. The end
// day is inclusive.
func (h *SaleHandler) parseFilter(c *fiber.Ctx) (repository.SaleFilter, error) {
	filter := repository.SaleFilter{SalesmanID: c.Query("salesmanId")}

	if start := c.Query("start"); start != "" {
		from, err := time.ParseInLocation(dateLayout, start, h.loc)
		if err != nil {
			return filter, errInvalidDate
		}
		filter.From = &from
	}
	if end := c.Query("end"); end != "" {
		day, err := time.ParseInLocation(dateLayout, end, h.loc)
		if err != nil {
			return filter, errInvalidDate
		}
		to := day.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &to
	}
	return filter, nil
}
