package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

// ClientRepository puerto de persistencia del libro de clientes.
// Los métodos Get* devuelven (nil, nil) cuando el cliente no existe.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	// GetForUpdate bloquea la fila del cliente dentro de la transacción en
	// curso. Fuera de una transacción equivale a GetByID.
	GetForUpdate(id string) (*entity.Client, error)
	// GetByName devuelve el primer cliente con ese nombre exacto (la unicidad
	// de nombres no se garantiza).
	GetByName(name string) (*entity.Client, error)
	List() ([]*entity.Client, error)
	Update(client *entity.Client) error
	// AdjustDebt aplica delta a la deuda actual (positivo la aumenta). El
	// tope de crédito es política del motor de ventas, no del libro.
	AdjustDebt(id string, delta decimal.Decimal, now time.Time) error
	Delete(id string) error
}
