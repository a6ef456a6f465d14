package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/application/dto"
	"github.com/jhoicas/inventario-cocina/internal/application/intake"
	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/report"
	apphttp "github.com/jhoicas/inventario-cocina/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type unavailableStore struct{}

func (unavailableStore) ListReceivedIntake(context.Context) ([]entity.ReceivedIntakeEvent, error) {
	return nil, fmt.Errorf("list received intake: %w", domain.ErrStoreUnavailable)
}

func (unavailableStore) ListStockMovements(context.Context) ([]entity.StockMovementEvent, error) {
	return nil, fmt.Errorf("list stock movements: %w", domain.ErrStoreUnavailable)
}

func (unavailableStore) AppendStockMovement(context.Context, *entity.StockMovementEvent) error {
	return fmt.Errorf("append stock movement: %w", domain.ErrStoreUnavailable)
}

func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	stockUC := inventory.NewStockUseCase(store, store, metrics.NewStockMetrics(reg), zerolog.Nop())

	pdf, err := report.NewPDFGenerator(report.PDFFonts{})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		StockUC:      stockUC,
		RequestUC:    intake.NewRequestUseCase(store, zerolog.Nop()),
		XLSX:         report.NewXLSXExporter(),
		PDF:          pdf,
		LowThreshold: decimal.NewFromInt(5),
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// receive crea una solicitud y la marca como recibida.
func receive(t *testing.T, app *fiber.App, name, unit string, qty int64) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"product_name": name, "unit": unit, "quantity": qty,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.IntakeRequestResponse](t, resp)

	resp = doJSON(t, app, http.MethodPatch, "/api/requests/"+created.ID+"/status", map[string]string{"status": "RECEIVED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_EntradaRecibidaApareceEnSnapshot(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "kola", "ADET", 10)

	resp := doJSON(t, app, http.MethodGet, "/api/stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.StockListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "KOLA", list.Items[0].ProductName)
	assert.Equal(t, "10", list.Items[0].Quantity.String())
	assert.False(t, list.Items[0].Low)
}

func TestStock_AjusteSalidaYDevolucion(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "KOLA", "ADET", 10)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": " kola ", "unit": "adet", "quantity": "3", "type": "OUT",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mov := decode[dto.StockMovementResponse](t, resp)
	assert.Equal(t, "KOLA", mov.ProductName)
	assert.Equal(t, "OUT", mov.Type)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": 1, "type": "RETURN",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	list := decode[dto.StockListResponse](t, doJSON(t, app, http.MethodGet, "/api/stock?q=kol", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "8", list.Items[0].Quantity.String())

	log := decode[[]dto.OutboundLogEntryResponse](t, doJSON(t, app, http.MethodGet, "/api/stock/outbound-log", nil))
	require.Len(t, log, 1)
	assert.Equal(t, "3", log[0].Quantity.String())
}

func TestStock_SalidaMayorAlStock409(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "KOLA", "ADET", 10)

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": 15, "type": "OUT",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decode[dto.InsufficientStockResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "10", body.CurrentQuantity.String())
	assert.Equal(t, "ADET", body.Unit)
}

func TestStock_CantidadInvalida400(t *testing.T) {
	app := buildTestApp(t)
	for _, qty := range []any{0, -2, "abc"} {
		resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
			"product_name": "KOLA", "unit": "ADET", "quantity": qty, "type": "OUT",
		})
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "quantity=%v", qty)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": 0, "type": "OUT",
	})
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": "0.0004", "type": "RETURN",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "TON", "quantity": 1, "type": "OUT",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestStock_AlmacenNoDisponible503(t *testing.T) {
	store := unavailableStore{}
	uc := inventory.NewStockUseCase(store, inventory.NewDirectRunner(store), nil, zerolog.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{StockUC: uc, LowThreshold: decimal.NewFromInt(5)})

	resp := doJSON(t, app, http.MethodGet, "/api/stock", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "STORE_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": 1, "type": "OUT",
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestStock_LowStock(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "SÜT", "LİTRE", 2)
	receive(t, app, "UN", "KG", 30)

	list := decode[dto.StockListResponse](t, doJSON(t, app, http.MethodGet, "/api/stock/low", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "SÜT", list.Items[0].ProductName)
	assert.True(t, list.Items[0].Low)

	list = decode[dto.StockListResponse](t, doJSON(t, app, http.MethodGet, "/api/stock/low?threshold=100", nil))
	assert.Len(t, list.Items, 2)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/low?threshold=mucho", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRequests_TransicionInvalida409(t *testing.T) {
	app := buildTestApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/requests", map[string]any{
		"product_name": "UN", "unit": "KG", "quantity": 5,
	})
	created := decode[dto.IntakeRequestResponse](t, resp)

	resp = doJSON(t, app, http.MethodPatch, "/api/requests/"+created.ID+"/status", map[string]string{"status": "CANCELLED"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPatch, "/api/requests/"+created.ID+"/status", map[string]string{"status": "RECEIVED"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPatch, "/api/requests/no-existe/status", map[string]string{"status": "RECEIVED"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	list := decode[dto.IntakeRequestListResponse](t, doJSON(t, app, http.MethodGet, "/api/requests?limit=500", nil))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 100, list.Page.Limit)
}

func TestStock_ExportYReporte(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "KOLA", "ADET", 10)

	resp := doJSON(t, app, http.MethodGet, "/api/stock/export.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	resp = doJSON(t, app, http.MethodGet, "/api/stock/report.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestMetrics_ExponeContadores(t *testing.T) {
	app := buildTestApp(t)
	receive(t, app, "KOLA", "ADET", 1)
	doJSON(t, app, http.MethodPost, "/api/stock/adjustments", map[string]any{
		"product_name": "KOLA", "unit": "ADET", "quantity": 5, "type": "OUT",
	})

	resp := doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `inventario_adjustments_rejected_total{reason="insufficient_stock"} 1`))
}
