package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/report"
)

// StockHandler maneja stock actual, registro de salidas, ajustes y reportes.
type StockHandler struct {
	uc        *inventory.StockUseCase
	xlsx      *report.XLSXExporter
	pdf       *report.PDFGenerator
	threshold decimal.Decimal
}

// NewStockHandler construye el handler. threshold marca las líneas con stock bajo.
func NewStockHandler(uc *inventory.StockUseCase, xlsx *report.XLSXExporter, pdf *report.PDFGenerator, threshold decimal.Decimal) *StockHandler {
	return &StockHandler{uc: uc, xlsx: xlsx, pdf: pdf, threshold: threshold}
}

// List godoc
// @Summary      Stock actual
// @Description  Recalcula el stock a partir de entradas recibidas y movimientos.
// @Tags         stock
// @Produce      json
// @Param        q    query     string  false  "Filtro por nombre (sin distinguir mayúsculas)"
// @Success      200  {object}  dto.StockListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.Search(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(inventory.ToStockListResponse(entries, h.threshold))
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         stock
// @Produce      json
// @Param        threshold  query     number  false  "Umbral (por defecto LOW_STOCK_THRESHOLD)"
// @Success      200        {object}  dto.StockListResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      503        {object}  dto.ErrorResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	threshold := h.threshold
	if raw := c.Query("threshold"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
		}
		threshold = v
	}
	entries, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(inventory.ToStockListResponse(entries, threshold))
}

// OutboundLog godoc
// @Summary      Registro diario de salidas
// @Description  Salidas agrupadas por producto, unidad y día; más reciente primero.
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.OutboundLogEntryResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/outbound-log [get]
func (h *StockHandler) OutboundLog(c *fiber.Ctx) error {
	log, err := h.uc.GetDailyOutboundLog(c.Context())
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(inventory.ToOutboundLogResponse(log))
}

// RecordAdjustment godoc
// @Summary      Registrar salida o devolución
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordAdjustmentRequest  true  "product_name, unit, quantity, type (OUT | RETURN)"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) RecordAdjustment(c *fiber.Ctx) error {
	var in dto.RecordAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordAdjustmentFromRequest(c.Context(), in)
	if err != nil {
		unit := in.Unit
		if u, perr := entity.ParseUnit(in.Unit); perr == nil {
			unit = string(u)
		}
		return writeError(c, err, unit)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ExportXLSX godoc
// @Summary      Exportar stock y salidas a Excel
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/export.xlsx [get]
func (h *StockHandler) ExportXLSX(c *fiber.Ctx) error {
	r, err := h.buildReport(c)
	if err != nil {
		return writeError(c, err, "")
	}
	data, err := h.xlsx.Export(r)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment("stock", r.GeneratedAt, "xlsx"))
	return c.Send(data)
}

// ReportPDF godoc
// @Summary      Reporte imprimible de stock
// @Tags         stock
// @Produce      application/pdf
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) ReportPDF(c *fiber.Ctx) error {
	r, err := h.buildReport(c)
	if err != nil {
		return writeError(c, err, "")
	}
	data, err := h.pdf.Generate(r)
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("stock", r.GeneratedAt, "pdf"))
	return c.Send(data)
}

func (h *StockHandler) buildReport(c *fiber.Ctx) (report.StockReport, error) {
	snap, err := h.uc.GetSnapshot(c.Context())
	if err != nil {
		return report.StockReport{}, err
	}
	log, err := h.uc.GetDailyOutboundLog(c.Context())
	if err != nil {
		return report.StockReport{}, err
	}
	return report.StockReport{
		GeneratedAt:  time.Now(),
		Stock:        snap.Entries(),
		Outbound:     log,
		LowThreshold: h.threshold,
	}, nil
}

func attachment(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s_%s.%s"`, prefix, at.Format("20060102_150405"), ext)
}
