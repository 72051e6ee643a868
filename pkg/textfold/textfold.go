// Package textfold normaliza texto para búsquedas: minúsculas y sin marcas
// diacríticas, de modo que "Pêche" y "peche" comparen igual. El catálogo de
// la tienda mezcla nombres con y sin acentos.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas y sin diacríticos (NFD, quitar Mn, NFC).
func Fold(s string) string {
	// El transformer lleva estado interno, se construye por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
