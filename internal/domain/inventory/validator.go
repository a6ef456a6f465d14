package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// Rango de cantidades que se pueden guardar sin redondeo (columnas NUMERIC(14,3)).
const MaxQuantityScale int32 = 3

var maxQuantity = decimal.New(1, 11) // exclusivo

// ValidateQuantity exige una cantidad positiva, con a lo sumo MaxQuantityScale decimales
// significativos y menor que 10^11. Fuera de ese rango: domain.ErrInvalidQuantity.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() || q.GreaterThanOrEqual(maxQuantity) {
		return domain.ErrInvalidQuantity
	}
	if !q.Equal(q.Truncate(MaxQuantityScale)) {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Adjustment movimiento propuesto, aún no persistido.
type Adjustment struct {
	ProductName string
	Unit        entity.UnitType
	Quantity    decimal.Decimal
	Kind        entity.MovementKind
}

// Key clave de stock afectada por el ajuste.
func (a Adjustment) Key() Key { return MakeKey(a.ProductName, a.Unit) }

// ValidateAdjustment decide si el ajuste puede registrarse contra el snapshot dado.
// Devuelve nil si se acepta. El snapshot debe provenir de una lectura inmediatamente anterior.
//
//   - Cantidad no positiva o fuera de rango (ValidateQuantity): domain.ErrInvalidQuantity.
//   - OUT mayor que el stock actual (clave ausente = 0): *domain.InsufficientStockError.
//   - RETURN: siempre se acepta, no hay stock máximo.
func ValidateAdjustment(a Adjustment, snap Snapshot) error {
	if err := ValidateQuantity(a.Quantity); err != nil {
		return err
	}
	switch a.Kind {
	case entity.MovementOut:
		current := snap.Quantity(a.Key())
		if a.Quantity.GreaterThan(current) {
			return &domain.InsufficientStockError{Current: current}
		}
		return nil
	case entity.MovementReturn:
		return nil
	}
	return domain.ErrInvalidKind
}
