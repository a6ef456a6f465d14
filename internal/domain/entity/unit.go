package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-cocina/internal/domain"
)

// UnitType unidad de medida de un producto de cocina.
// Los valores son las etiquetas tal como se almacenan (mayúsculas turcas con İ).
type UnitType string

const (
	UnitAdet  UnitType = "ADET"
	UnitKG    UnitType = "KG"
	UnitLitre UnitType = "LİTRE"
	UnitPaket UnitType = "PAKET"
	UnitKoli  UnitType = "KOLİ"
)

// Units lista las unidades válidas en orden de presentación.
var Units = []UnitType{UnitAdet, UnitKG, UnitLitre, UnitPaket, UnitKoli}

var unitAliases = map[string]UnitType{
	"ADET":  UnitAdet,
	"KG":    UnitKG,
	"LİTRE": UnitLitre,
	"LITRE": UnitLitre,
	"PAKET": UnitPaket,
	"KOLİ":  UnitKoli,
	"KOLI":  UnitKoli,
}

// ParseUnit convierte una etiqueta externa en UnitType.
// Acepta la etiqueta almacenada, la grafía ASCII (LITRE, KOLI) y minúsculas.
func ParseUnit(s string) (UnitType, error) {
	s = strings.TrimSpace(s)
	if u, ok := unitAliases[s]; ok {
		return u, nil
	}
	if u, ok := unitAliases[cases.Upper(language.Turkish).String(s)]; ok {
		return u, nil
	}
	if u, ok := unitAliases[strings.ToUpper(s)]; ok {
		return u, nil
	}
	return "", domain.ErrInvalidUnit
}

// Valid indica si la unidad es una de las conocidas.
func (u UnitType) Valid() bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

func (u UnitType) String() string { return string(u) }
