package sales

import (
	"context"

	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// SaleRepos repositorios atados a la transacción de una venta. Todo lo que
// el motor lee o escribe durante el commit pasa por estos, de modo que un
// error en cualquier paso revierte la venta completa.
type SaleRepos struct {
	Products repository.ProductRepository
	Clients  repository.ClientRepository
	Sales    repository.SaleRepository
}

// InvoiceSequencer entrega números de factura únicos y estrictamente
// crecientes. Next se invoca dentro de la transacción de la venta
// (reserva-en-commit): una venta rechazada nunca consume un número, por lo
// que la secuencia confirmada no tiene huecos.
type InvoiceSequencer interface {
	Next() (string, error)
}

// SaleTxRunner ejecuta fn dentro de una transacción serializable respecto a
// los productos y clientes que toque. Si el commit no puede serializarse
// contra un escritor concurrente devuelve domain.ErrConflict y ningún cambio
// queda aplicado.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(repos SaleRepos, seq InvoiceSequencer) error) error
}

// ReceiptPDFGenerator genera el recibo imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale) ([]byte, error)
}
