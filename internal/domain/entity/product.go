package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category clasifica los productos del catálogo. Se modela como string
// abierto validado contra knownCategories: agregar una categoría nueva es
// un cambio de datos, no toca el motor de ventas.
type Category string

const (
	CategoryFish Category = "fish"
	CategoryMeat Category = "meat"
)

var knownCategories = []Category{CategoryFish, CategoryMeat}

// Valid indica si la categoría está registrada.
func (c Category) Valid() bool {
	for _, k := range knownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Unit unidad de medida de un producto (congelados se venden por peso o pieza).
type Unit string

const (
	UnitKilogram Unit = "kg"
	UnitPiece    Unit = "piece"
	UnitTray     Unit = "tray"
)

// Valid indica si la unidad está soportada.
func (u Unit) Valid() bool {
	switch u {
	case UnitKilogram, UnitPiece, UnitTray:
		return true
	}
	return false
}

// Product representa un producto del catálogo de la tienda.
// Stock es decimal para soportar cantidades fraccionarias (ej. 1.5 kg);
// nunca queda negativo después de una venta confirmada.
type Product struct {
	ID        string
	Name      string
	Category  Category
	Price     decimal.Decimal // precio de venta unitario, > 0
	Stock     decimal.Decimal // existencias, >= 0
	Unit      Unit
	CreatedAt time.Time
	UpdatedAt time.Time
}
