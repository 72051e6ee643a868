package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain"
)

var _ sales.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el commit de una venta dentro de una transacción
// PostgreSQL. Los repos que recibe el callback están atados a la tx; el
// bloqueo fila a fila (SELECT FOR UPDATE sobre productos y cliente, más la
// fila de la secuencia) serializa las ventas que comparten registros.
type TxRunner struct {
	pool          *pgxpool.Pool
	invoicePrefix string
}

// NewTxRunner construye el runner con el pool y el prefijo de factura.
func NewTxRunner(pool *pgxpool.Pool, invoicePrefix string) *TxRunner {
	return &TxRunner{pool: pool, invoicePrefix: invoicePrefix}
}

// RunSale inicia la transacción, ejecuta fn y hace Commit o Rollback. Un
// fallo de serialización o deadlock se devuelve como domain.ErrConflict: la
// transacción revirtió completa y el motor puede reintentarla.
func (r *TxRunner) RunSale(ctx context.Context, fn func(repos sales.SaleRepos, seq sales.InvoiceSequencer) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := sales.SaleRepos{
		Products: NewProductRepository(tx),
		Clients:  NewClientRepository(tx),
		Sales:    NewSaleRepository(tx),
	}
	seq := NewInvoiceSequencer(tx, r.invoicePrefix)

	if err := fn(repos, seq); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("commit de venta: %w", domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("commit de venta: %w", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
