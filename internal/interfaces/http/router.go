package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/intake"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC      *inventory.StockUseCase
	RequestUC    *intake.RequestUseCase
	XLSX         *report.XLSXExporter
	PDF          *report.PDFGenerator
	LowThreshold decimal.Decimal
	Metrics      nethttp.Handler // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.XLSX, deps.PDF, deps.LowThreshold)
	stock.Get("/", stockHandler.List)
	stock.Get("/low", stockHandler.LowStock)
	stock.Get("/outbound-log", stockHandler.OutboundLog)
	stock.Post("/adjustments", stockHandler.RecordAdjustment)
	stock.Get("/export.xlsx", stockHandler.ExportXLSX)
	stock.Get("/report.pdf", stockHandler.ReportPDF)

	requests := api.Group("/requests")
	intakeHandler := NewIntakeHandler(deps.RequestUC)
	requests.Post("/", intakeHandler.Create)
	requests.Get("/", intakeHandler.List)
	requests.Patch("/:id/status", intakeHandler.ChangeStatus)
}
