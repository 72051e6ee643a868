package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el dashboard.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// CountProducts total de productos del catálogo.
func (r *StatsRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, "products")
}

// CountClients total de clientes del libro.
func (r *StatsRepo) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, "clients")
}

// CountSales total histórico de ventas.
func (r *StatsRepo) CountSales(ctx context.Context) (int64, error) {
	return r.count(ctx, "sales")
}

// SalesMetricsBetween cantidad e ingresos de las ventas de [start, end).
func (r *StatsRepo) SalesMetricsBetween(ctx context.Context, start, end time.Time) (int64, decimal.Decimal, error) {
	var count int64
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM sales WHERE created_at >= $1 AND created_at < $2`, start, end,
	).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sales metrics: %w", err)
	}
	return count, revenue, nil
}

// LowStockProducts productos con stock <= threshold, de menor a mayor stock.
func (r *StatsRepo) LowStockProducts(ctx context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE stock <= $1 ORDER BY stock, created_at LIMIT $2`, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock, &p.Unit, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CountLowStock total de productos con stock <= threshold, sin límite.
func (r *StatsRepo) CountLowStock(ctx context.Context, threshold decimal.Decimal) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE stock <= $1`, threshold,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
