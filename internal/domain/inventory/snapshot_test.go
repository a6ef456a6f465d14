package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
	"github.com/jhoicas/inventario-cocina/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var day0 = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func intake(id, name string, qty int64, unit entity.UnitType, daysAfter int) entity.ReceivedIntakeEvent {
	return entity.ReceivedIntakeEvent{
		ID:          id,
		ProductName: name,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        unit,
		ReceivedAt:  day0.AddDate(0, 0, daysAfter),
	}
}

func movement(name string, qty int64, unit entity.UnitType, kind entity.MovementKind, daysAfter int) entity.StockMovementEvent {
	return entity.StockMovementEvent{
		ProductName: name,
		Unit:        unit,
		Quantity:    decimal.NewFromInt(qty),
		Kind:        kind,
		Date:        day0.AddDate(0, 0, daysAfter),
	}
}

// quantities reduce el snapshot a clave → cantidad en texto, comparable con assert.Equal.
func quantities(s inventory.Snapshot) map[inventory.Key]string {
	out := make(map[inventory.Key]string, len(s))
	for k, e := range s {
		out[k] = e.DisplayName + "|" + string(e.Unit) + "|" + e.Quantity.String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplos
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeSnapshot_SoloEntradas(t *testing.T) {
	snap := inventory.ComputeSnapshot(
		[]entity.ReceivedIntakeEvent{intake("r1", "KOLA", 10, entity.UnitAdet, 0)},
		nil,
	)
	require.Len(t, snap, 1)
	assert.Equal(t, "10", snap.Quantity(inventory.MakeKey("KOLA", entity.UnitAdet)).String())
}

func TestComputeSnapshot_SalidaYDevolucion(t *testing.T) {
	snap := inventory.ComputeSnapshot(
		[]entity.ReceivedIntakeEvent{intake("r1", "KOLA", 10, entity.UnitAdet, 0)},
		[]entity.StockMovementEvent{
			movement("KOLA", 4, entity.UnitAdet, entity.MovementOut, 1),
			movement("KOLA", 1, entity.UnitAdet, entity.MovementReturn, 2),
		},
	)
	assert.Equal(t, "7", snap.Quantity(inventory.MakeKey("KOLA", entity.UnitAdet)).String())
}

func TestComputeSnapshot_NombreNormalizadoUneLineas(t *testing.T) {
	snap := inventory.ComputeSnapshot(
		[]entity.ReceivedIntakeEvent{intake("r1", " kola ", 10, entity.UnitAdet, 0)},
		[]entity.StockMovementEvent{movement("KOLA", 3, entity.UnitAdet, entity.MovementOut, 1)},
	)
	require.Len(t, snap, 1)
	e := snap[inventory.MakeKey("KOLA", entity.UnitAdet)]
	assert.Equal(t, "KOLA", e.DisplayName)
	assert.Equal(t, "7", e.Quantity.String())
}

func TestComputeSnapshot_MovimientoSinEntradaSeIgnora(t *testing.T) {
	snap := inventory.ComputeSnapshot(
		[]entity.ReceivedIntakeEvent{intake("r1", "UN", 5, entity.UnitKG, 0)},
		[]entity.StockMovementEvent{
			movement("ŞEKER", 2, entity.UnitKG, entity.MovementReturn, 0),
			movement("UN", 1, entity.UnitPaket, entity.MovementOut, 0),
		},
	)
	require.Len(t, snap, 1, "un movimiento nunca crea una línea de stock")
	assert.Equal(t, "5", snap.Quantity(inventory.MakeKey("UN", entity.UnitKG)).String())
	assert.True(t, snap.Quantity(inventory.MakeKey("ŞEKER", entity.UnitKG)).IsZero())
}

func TestComputeSnapshot_HistoricoNegativoSeConserva(t *testing.T) {
	snap := inventory.ComputeSnapshot(
		[]entity.ReceivedIntakeEvent{intake("r1", "SÜT", 2, entity.UnitLitre, 0)},
		[]entity.StockMovementEvent{
			movement("süt", 2, entity.UnitLitre, entity.MovementOut, 1),
			movement("süt", 3, entity.UnitLitre, entity.MovementOut, 1),
		},
	)
	require.Len(t, snap, 1, "la línea no se elimina al llegar a cero o menos")
	assert.Equal(t, "-3", snap.Quantity(inventory.MakeKey("SÜT", entity.UnitLitre)).String())
}

func TestComputeSnapshot_Decimales(t *testing.T) {
	in := intake("r1", "PEYNİR", 0, entity.UnitKG, 0)
	in.Quantity = decimal.RequireFromString("2.5")
	out := movement("peynir", 0, entity.UnitKG, entity.MovementOut, 1)
	out.Quantity = decimal.RequireFromString("0.75")

	snap := inventory.ComputeSnapshot([]entity.ReceivedIntakeEvent{in}, []entity.StockMovementEvent{out})
	assert.Equal(t, "1.75", snap.Quantity(inventory.MakeKey("PEYNİR", entity.UnitKG)).String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func sampleHistory() ([]entity.ReceivedIntakeEvent, []entity.StockMovementEvent) {
	intakes := []entity.ReceivedIntakeEvent{
		intake("r1", "kola", 10, entity.UnitAdet, 0),
		intake("r2", "SİMİT", 40, entity.UnitAdet, 1),
		intake("r3", " Kola", 6, entity.UnitAdet, 2),
		intake("r4", "domates", 12, entity.UnitKG, 2),
		intake("r5", "kola", 2, entity.UnitKoli, 3),
	}
	movements := []entity.StockMovementEvent{
		movement("KOLA", 4, entity.UnitAdet, entity.MovementOut, 1),
		movement("simit", 15, entity.UnitAdet, entity.MovementOut, 1),
		movement("KOLA", 1, entity.UnitAdet, entity.MovementReturn, 2),
		movement("DOMATES", 3, entity.UnitKG, entity.MovementOut, 3),
		movement("AYRAN", 9, entity.UnitAdet, entity.MovementOut, 3),
		movement("kola", 1, entity.UnitKoli, entity.MovementOut, 4),
	}
	return intakes, movements
}

func TestComputeSnapshot_IndependienteDelOrden(t *testing.T) {
	intakes, movements := sampleHistory()
	want := quantities(inventory.ComputeSnapshot(intakes, movements))

	reversedIn := make([]entity.ReceivedIntakeEvent, len(intakes))
	for i := range intakes {
		reversedIn[len(intakes)-1-i] = intakes[i]
	}
	reversedMov := make([]entity.StockMovementEvent, len(movements))
	for i := range movements {
		reversedMov[len(movements)-1-i] = movements[i]
	}
	assert.Equal(t, want, quantities(inventory.ComputeSnapshot(reversedIn, reversedMov)))

	for shift := 1; shift < len(movements); shift++ {
		rotated := append(append([]entity.StockMovementEvent{}, movements[shift:]...), movements[:shift]...)
		assert.Equal(t, want, quantities(inventory.ComputeSnapshot(intakes, rotated)), "rotación %d", shift)
	}
}

func TestComputeSnapshot_Idempotente(t *testing.T) {
	intakes, movements := sampleHistory()
	first := quantities(inventory.ComputeSnapshot(intakes, movements))
	second := quantities(inventory.ComputeSnapshot(intakes, movements))
	assert.Equal(t, first, second)

	assert.Equal(t, "r1", intakes[0].ID, "las entradas no deben reordenarse in situ")
	assert.Equal(t, "kola", intakes[0].ProductName, "las entradas no deben modificarse")
}

func TestComputeSnapshot_ValoresEsperados(t *testing.T) {
	intakes, movements := sampleHistory()
	snap := inventory.ComputeSnapshot(intakes, movements)

	assert.Len(t, snap, 4)
	assert.Equal(t, "13", snap.Quantity(inventory.MakeKey("KOLA", entity.UnitAdet)).String())
	assert.Equal(t, "25", snap.Quantity(inventory.MakeKey("SİMİT", entity.UnitAdet)).String())
	assert.Equal(t, "9", snap.Quantity(inventory.MakeKey("DOMATES", entity.UnitKG)).String())
	assert.Equal(t, "1", snap.Quantity(inventory.MakeKey("KOLA", entity.UnitKoli)).String())
}

func TestSnapshotEntries_Ordenadas(t *testing.T) {
	intakes, movements := sampleHistory()
	entries := inventory.ComputeSnapshot(intakes, movements).Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "DOMATES", entries[0].DisplayName)
	assert.Equal(t, "KOLA", entries[1].DisplayName)
	assert.Equal(t, entity.UnitAdet, entries[1].Unit)
	assert.Equal(t, entity.UnitKoli, entries[2].Unit)
	assert.Equal(t, "SİMİT", entries[3].DisplayName)
}

// Reproducir el historial evento a evento desde vacío debe coincidir con el cálculo completo.
func TestComputeSnapshot_ReproduccionIncremental(t *testing.T) {
	intakes, movements := sampleHistory()
	want := quantities(inventory.ComputeSnapshot(intakes, movements))

	var seenIn []entity.ReceivedIntakeEvent
	var seenMov []entity.StockMovementEvent
	var last inventory.Snapshot
	for _, in := range intakes {
		seenIn = append(seenIn, in)
		last = inventory.ComputeSnapshot(seenIn, seenMov)
	}
	for _, m := range movements {
		seenMov = append(seenMov, m)
		last = inventory.ComputeSnapshot(seenIn, seenMov)
	}
	assert.Equal(t, want, quantities(last))
}
