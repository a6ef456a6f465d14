package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
)

// MovementKind tipo de movimiento manual de stock.
type MovementKind string

const (
	MovementOut    MovementKind = "OUT"    // salida / consumo
	MovementReturn MovementKind = "RETURN" // devolución al stock
)

// ParseMovementKind valida el tipo recibido desde el exterior.
func ParseMovementKind(s string) (MovementKind, error) {
	switch MovementKind(s) {
	case MovementOut, MovementReturn:
		return MovementKind(s), nil
	}
	return "", domain.ErrInvalidKind
}

// StockMovementEvent movimiento manual de stock (salida o devolución).
// Inmutable una vez persistido; la colección solo crece.
type StockMovementEvent struct {
	ID          string
	ProductName string // tal como lo escribió el usuario; se normaliza al agrupar
	Unit        UnitType
	Quantity    decimal.Decimal // siempre > 0; el signo lo da Kind
	Kind        MovementKind
	Date        time.Time // día calendario (00:00 UTC)
	CreatedAt   time.Time
}

// Day convierte t a UTC y lo trunca al día calendario, granularidad de StockMovementEvent.Date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
