package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

// StatsRepository consultas de solo lectura para el dashboard. Todo es
// derivado del estado actual de productos, clientes y ventas; no existe
// ningún contador incremental que pueda desfasarse del libro.
type StatsRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountSales(ctx context.Context) (int64, error)
	// SalesMetricsBetween devuelve cantidad de ventas e ingresos del período
	// [start, end) según created_at.
	SalesMetricsBetween(ctx context.Context, start, end time.Time) (count int64, revenue decimal.Decimal, err error)
	// LowStockProducts devuelve los productos con stock <= threshold,
	// ordenados de menor a mayor stock.
	LowStockProducts(ctx context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error)
	// CountLowStock devuelve cuántos productos tienen stock <= threshold,
	// sin el límite de listado de LowStockProducts.
	CountLowStock(ctx context.Context, threshold decimal.Decimal) (int64, error)
}
