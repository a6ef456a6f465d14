package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// SnapshotEntry stock actual derivado para una clave. Se recalcula, nunca se persiste.
type SnapshotEntry struct {
	Key         Key
	DisplayName string
	Unit        entity.UnitType
	Quantity    decimal.Decimal // puede ser 0 o negativo por datos históricos
}

// Snapshot stock actual por clave.
type Snapshot map[Key]SnapshotEntry

// Quantity devuelve el stock de la clave; una clave ausente vale 0.
func (s Snapshot) Quantity(k Key) decimal.Decimal {
	if e, ok := s[k]; ok {
		return e.Quantity
	}
	return decimal.Zero
}

// Entries devuelve las entradas ordenadas por nombre y unidad.
func (s Snapshot) Entries() []SnapshotEntry {
	out := make([]SnapshotEntry, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

// ComputeSnapshot pliega entradas recibidas y movimientos en el stock actual.
//
// Las entradas crean líneas y suman. Un movimiento cuya clave no tiene ninguna
// entrada recibida se ignora: no se puede consumir ni devolver lo que nunca
// ingresó. OUT resta y RETURN suma. Ninguna línea se elimina aunque quede en
// cero o negativa; los eventos ya registrados se reproducen tal cual.
// Los slices de entrada no se modifican.
func ComputeSnapshot(intakes []entity.ReceivedIntakeEvent, movements []entity.StockMovementEvent) Snapshot {
	snap := make(Snapshot, len(intakes))

	for _, in := range chronological(intakes) {
		k := MakeKey(in.ProductName, in.Unit)
		e, ok := snap[k]
		if !ok {
			e = SnapshotEntry{Key: k, DisplayName: Normalize(in.ProductName), Unit: in.Unit, Quantity: decimal.Zero}
		}
		e.Quantity = e.Quantity.Add(in.Quantity)
		snap[k] = e
	}

	for _, m := range movements {
		k := MakeKey(m.ProductName, m.Unit)
		e, ok := snap[k]
		if !ok {
			continue
		}
		switch m.Kind {
		case entity.MovementOut:
			e.Quantity = e.Quantity.Sub(m.Quantity)
		case entity.MovementReturn:
			e.Quantity = e.Quantity.Add(m.Quantity)
		}
		snap[k] = e
	}
	return snap
}

// chronological copia las entradas en orden estable por fecha e ID.
func chronological(intakes []entity.ReceivedIntakeEvent) []entity.ReceivedIntakeEvent {
	sorted := make([]entity.ReceivedIntakeEvent, len(intakes))
	copy(sorted, intakes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].ReceivedAt.Equal(sorted[j].ReceivedAt) {
			return sorted[i].ReceivedAt.Before(sorted[j].ReceivedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
