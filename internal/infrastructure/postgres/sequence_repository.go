package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/congelados-pos/internal/application/sales"
)

var _ sales.InvoiceSequencer = (*InvoiceSequencer)(nil)

// Nombre de la secuencia de facturas en invoice_sequences. Una sola tienda,
// una sola secuencia.
const invoiceSequenceName = "sales_invoice"

// InvoiceSequencer numeración estricta de facturas: cada número sale de un
// UPDATE ... RETURNING sobre la fila de la secuencia, dentro de la
// transacción de la venta. La fila queda bloqueada hasta el commit, lo que
// ordena totalmente las ventas y garantiza números únicos y sin huecos
// (una venta que revierte también revierte su incremento).
type InvoiceSequencer struct {
	q      Querier
	prefix string
}

// NewInvoiceSequencer construye el secuenciador atado a q (normalmente la
// transacción de la venta).
func NewInvoiceSequencer(q Querier, prefix string) *InvoiceSequencer {
	return &InvoiceSequencer{q: q, prefix: prefix}
}

// Next devuelve el siguiente número con formato PREFIX-NNNNNN.
func (s *InvoiceSequencer) Next() (string, error) {
	var n int64
	err := s.q.QueryRow(context.Background(), `
		INSERT INTO invoice_sequences (name, last_number) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`, invoiceSequenceName,
	).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s-%06d", s.prefix, n), nil
}
