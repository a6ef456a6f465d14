package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
)

// RequestStatus estado de una solicitud de cocina. Valores tal como se almacenan.
type RequestStatus string

const (
	RequestPending   RequestStatus = "BEKLEMEDE"
	RequestApproved  RequestStatus = "ONAYLANDI"
	RequestReceived  RequestStatus = "TESLİM ALINDI"
	RequestCancelled RequestStatus = "İPTAL"
)

var requestStatusAliases = map[string]RequestStatus{
	string(RequestPending):   RequestPending,
	string(RequestApproved):  RequestApproved,
	string(RequestReceived):  RequestReceived,
	string(RequestCancelled): RequestCancelled,
	"PENDING":                RequestPending,
	"APPROVED":               RequestApproved,
	"RECEIVED":               RequestReceived,
	"CANCELLED":              RequestCancelled,
}

// ParseRequestStatus acepta la etiqueta almacenada o su nombre en inglés.
func ParseRequestStatus(s string) (RequestStatus, error) {
	if st, ok := requestStatusAliases[s]; ok {
		return st, nil
	}
	return "", domain.ErrInvalidStatus
}

// IntakeRequest solicitud de abastecimiento de la cocina.
type IntakeRequest struct {
	ID          string
	ProductName string
	Quantity    decimal.Decimal
	Unit        UnitType
	Status      RequestStatus
	RequestDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo indica si el cambio de estado está permitido.
// RECEIVED y CANCELLED son terminales: una entrada recibida no se revierte.
func (r *IntakeRequest) CanTransitionTo(next RequestStatus) bool {
	switch r.Status {
	case RequestPending:
		return next == RequestApproved || next == RequestReceived || next == RequestCancelled
	case RequestApproved:
		return next == RequestReceived || next == RequestCancelled
	}
	return false
}

// AsReceivedIntake convierte la solicitud recibida en evento de entrada.
func (r *IntakeRequest) AsReceivedIntake() (ReceivedIntakeEvent, bool) {
	if r.Status != RequestReceived {
		return ReceivedIntakeEvent{}, false
	}
	return ReceivedIntakeEvent{
		ID:          r.ID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		ReceivedAt:  r.RequestDate,
	}, true
}
