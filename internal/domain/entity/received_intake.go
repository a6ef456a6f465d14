package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivedIntakeEvent entrada confirmada de mercadería al inventario.
// Se deriva de una IntakeRequest en estado RECEIVED; el motor nunca la modifica.
type ReceivedIntakeEvent struct {
	ID          string
	ProductName string
	Quantity    decimal.Decimal
	Unit        UnitType
	ReceivedAt  time.Time // fecha de la solicitud; define el orden cronológico
}
