package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// OutboundLogEntry total de salidas de una clave en un día.
type OutboundLogEntry struct {
	Key         Key
	ProductName string
	Unit        entity.UnitType
	Date        time.Time
	Quantity    decimal.Decimal
}

type dayKey struct {
	key Key
	day string
}

// ComputeDailyOutbound agrupa las salidas (OUT) por clave y día y suma cantidades.
// Resultado ordenado por fecha descendente; dentro del mismo día se respeta
// el orden de primera aparición.
func ComputeDailyOutbound(movements []entity.StockMovementEvent) []OutboundLogEntry {
	index := make(map[dayKey]int)
	out := make([]OutboundLogEntry, 0)

	for _, m := range movements {
		if m.Kind != entity.MovementOut {
			continue
		}
		day := entity.Day(m.Date)
		k := MakeKey(m.ProductName, m.Unit)
		dk := dayKey{key: k, day: day.Format(time.DateOnly)}
		if i, ok := index[dk]; ok {
			out[i].Quantity = out[i].Quantity.Add(m.Quantity)
			continue
		}
		name, unit := k.Split()
		index[dk] = len(out)
		out = append(out, OutboundLogEntry{
			Key:         k,
			ProductName: name,
			Unit:        unit,
			Date:        day,
			Quantity:    m.Quantity,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
