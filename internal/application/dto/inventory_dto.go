package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordAdjustmentRequest body para POST /api/stock/adjustments.
type RecordAdjustmentRequest struct {
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Type        string          `json:"type"` // OUT | RETURN
}

// StockMovementResponse movimiento registrado.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Type        string          `json:"type"`
	Date        string          `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time       `json:"created_at"`
}

// StockEntryResponse línea del snapshot de stock.
type StockEntryResponse struct {
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Low         bool            `json:"low"` // stock <= umbral configurado
}

// StockListResponse snapshot completo (o filtrado por búsqueda).
type StockListResponse struct {
	Total int                  `json:"total"`
	Items []StockEntryResponse `json:"items"`
}

// OutboundLogEntryResponse total diario de salidas por producto.
type OutboundLogEntryResponse struct {
	ProductName string          `json:"product_name"`
	Unit        string          `json:"unit"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Quantity    decimal.Decimal `json:"quantity"`
}

// InsufficientStockResponse cuerpo 409 cuando la salida supera el stock.
type InsufficientStockResponse struct {
	ErrorResponse
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Unit            string          `json:"unit"`
}
