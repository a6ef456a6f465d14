package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser un número positivo")
	ErrInvalidUnit        = errors.New("unidad desconocida")
	ErrInvalidKind        = errors.New("tipo de movimiento desconocido")
	ErrInvalidProductName = errors.New("nombre de producto inválido")
	ErrInvalidStatus      = errors.New("estado de solicitud desconocido")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStoreUnavailable   = errors.New("almacén de eventos no disponible")
)

// InsufficientStockError rechazo de una salida que supera el stock actual.
// Lleva la cantidad vigente para mostrarla al usuario.
type InsufficientStockError struct {
	Current decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: stock actual %s", ErrInsufficientStock.Error(), e.Current.String())
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
