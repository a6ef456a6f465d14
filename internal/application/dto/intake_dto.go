package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIntakeRequest body para POST /api/requests.
type CreateIntakeRequest struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	RequestDate string          `json:"request_date,omitempty"` // YYYY-MM-DD, vacío = hoy
}

// ChangeIntakeStatusRequest body para PATCH /api/requests/:id/status.
type ChangeIntakeStatusRequest struct {
	Status string `json:"status"`
}

// IntakeRequestResponse salida de una solicitud de cocina.
type IntakeRequestResponse struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Status      string          `json:"status"`
	RequestDate string          `json:"request_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IntakeRequestListResponse lista paginada de solicitudes.
type IntakeRequestListResponse struct {
	Items []IntakeRequestResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
