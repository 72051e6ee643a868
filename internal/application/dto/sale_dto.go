package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea solicitada: producto y cantidad. El precio unitario
// se toma del catálogo al momento de la venta, nunca del request.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateSaleRequest entrada para registrar una venta.
// ClientID referencia a un cliente existente; si está vacío y ClientName trae
// un nombre, el cliente se resuelve por nombre o se crea; si ambos están
// vacíos la venta es anónima.
type CreateSaleRequest struct {
	ClientID      string            `json:"client_id"`
	ClientName    string            `json:"client_name"`
	Items         []SaleItemRequest `json:"items"`
	Discount      decimal.Decimal   `json:"discount"`
	PaymentMethod string            `json:"payment_method"`
}

// SaleItemResponse línea de venta con el snapshot de producto y precio.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// SaleResponse salida de una venta confirmada.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	ClientID      *string            `json:"client_id"` // null = venta anónima
	ClientName    string             `json:"client_name"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CreatedAt     time.Time          `json:"created_at"`
}
