package repository

import "github.com/tu-usuario/congelados-pos/internal/domain/entity"

// SaleRepository puerto de persistencia de ventas. Las ventas son
// append-only: solo creación y lectura.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// GetByID devuelve (nil, nil) si la venta no existe.
	GetByID(id string) (*entity.Sale, error)
	// List devuelve las ventas más recientes primero.
	List() ([]*entity.Sale, error)
}
