package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con
// pool o tx). Cabecera en sales, líneas en sale_items; ambas son
// append-only: no hay UPDATE ni DELETE de ventas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera y las líneas de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	var clientID *string
	if sale.ClientID != "" {
		clientID = &sale.ClientID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, invoice_number, client_id, client_name, subtotal, discount, total, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sale.ID, sale.InvoiceNumber, clientID, sale.ClientName,
		sale.Subtotal, sale.Discount, sale.Total, string(sale.PaymentMethod), sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, item := range sale.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (sale_id, line_no, product_id, product_name, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID, i+1, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

const saleColumns = `id, invoice_number, client_id, client_name, subtotal, discount, total, payment_method, created_at`

// GetByID obtiene una venta con sus líneas, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	sale, err := r.scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor(ctx, []string{sale.ID})
	if err != nil {
		return nil, err
	}
	sale.Items = items[sale.ID]
	return sale, nil
}

// List devuelve las ventas más recientes primero, con sus líneas.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC, invoice_number DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		sale, err := r.scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, sale)
		ids = append(ids, sale.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, sale := range list {
		sale.Items = items[sale.ID]
	}
	return list, nil
}

func (r *SaleRepo) scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var clientID *string
	if err := row.Scan(&s.ID, &s.InvoiceNumber, &clientID, &s.ClientName,
		&s.Subtotal, &s.Discount, &s.Total, &s.PaymentMethod, &s.CreatedAt); err != nil {
		return nil, err
	}
	if clientID != nil {
		s.ClientID = *clientID
	}
	return &s, nil
}

// itemsFor carga las líneas de un conjunto de ventas en una sola consulta.
func (r *SaleRepo) itemsFor(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_id, product_id, product_name, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, line_no`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleItem, len(saleIDs))
	for rows.Next() {
		var saleID string
		var item entity.SaleItem
		if err := rows.Scan(&saleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[saleID] = append(out[saleID], item)
	}
	return out, rows.Err()
}
