package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

// ProductRepository puerto de persistencia del catálogo de productos.
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción en
	// curso (SELECT FOR UPDATE). Fuera de una transacción equivale a GetByID.
	GetForUpdate(id string) (*entity.Product, error)
	// List devuelve los productos en orden de inserción.
	List() ([]*entity.Product, error)
	// SearchByName busca por subcadena del nombre, sin distinguir mayúsculas
	// ni acentos. query llega ya normalizada por el caso de uso.
	SearchByName(query string, limit int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija las existencias del producto. Solo lo usa el motor de
	// ventas dentro de su transacción.
	UpdateStock(id string, stock decimal.Decimal, now time.Time) error
	Delete(id string) error
}
