package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente de la tienda con su cuenta de crédito.
// CurrentDebt solo se modifica a través de ventas a crédito confirmadas o
// ajustes explícitos del libro de clientes, nunca desde la capa HTTP.
type Client struct {
	ID          string
	Name        string
	Phone       string
	Email       string
	Address     string
	CreditLimit decimal.Decimal // >= 0
	CurrentDebt decimal.Decimal // inicia en 0
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
