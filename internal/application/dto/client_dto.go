package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateClientRequest entrada para actualizar un cliente (campos opcionales).
// La deuda no se actualiza por aquí; ver AdjustDebtRequest.
type UpdateClientRequest struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// AdjustDebtRequest ajuste explícito del libro (pago recibido o corrección).
// Delta positivo aumenta la deuda, negativo la reduce.
type AdjustDebtRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
