package inventory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/inventario-cocina/internal/domain"
	"github.com/jhoicas/inventario-cocina/internal/domain/entity"
)

// keySeparator separa nombre y unidad dentro de Key. Es un carácter de control,
// por eso ValidateProductName rechaza nombres que los contengan.
const keySeparator = "\x1f"

// Key identidad canónica de una línea de stock: nombre normalizado + unidad.
type Key string

// Normalize recorta espacios y pasa a mayúsculas con reglas del turco (i → İ, ı → I).
func Normalize(name string) string {
	// cases.Caser guarda estado; se crea uno por llamada.
	return cases.Upper(language.Turkish).String(strings.TrimSpace(name))
}

// MakeKey construye la clave de agrupación. Nunca usar el nombre crudo para agrupar.
func MakeKey(name string, unit entity.UnitType) Key {
	return Key(Normalize(name) + keySeparator + string(unit))
}

// Split devuelve el nombre normalizado y la unidad que componen la clave.
func (k Key) Split() (string, entity.UnitType) {
	name, unit, _ := strings.Cut(string(k), keySeparator)
	return name, entity.UnitType(unit)
}

// ValidateProductName exige un nombre no vacío y sin caracteres de control.
func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrInvalidProductName
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return domain.ErrInvalidProductName
		}
	}
	return nil
}
