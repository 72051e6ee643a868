package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod forma de pago de una venta.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentCredit PaymentMethod = "credit" // difiere el pago y aumenta la deuda del cliente
)

// Valid indica si la forma de pago está soportada.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentCredit:
		return true
	}
	return false
}

// AnonymousClientName nombre usado cuando la venta no referencia a ningún
// cliente del libro. Las ventas anónimas no pueden ser a crédito.
const AnonymousClientName = "Anonymous Client"

// SaleItem línea de una venta. Congela nombre y precio unitario del producto
// al momento de la venta, de modo que las facturas históricas no cambian si
// el catálogo se edita o se borra el producto después.
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal // > 0
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal // UnitPrice * Quantity
}

// Sale representa una venta confirmada. Es inmutable: no existe operación
// de actualización ni borrado; una corrección requiere un asiento
// compensatorio.
type Sale struct {
	ID            string
	InvoiceNumber string // único, secuencial sin huecos
	ClientID      string // vacío = venta anónima
	ClientName    string // snapshot del nombre al momento de la venta
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal // >= 0
	Total         decimal.Decimal // max(Subtotal - Discount, 0)
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}
