package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
// Todos los valores se recalculan en cada llamada a partir del estado
// actual de productos, clientes y ventas.
type DashboardStatsResponse struct {
	TotalProducts    int64             `json:"total_products"`
	TotalClients     int64             `json:"total_clients"`
	TotalSales       int64             `json:"total_sales"`
	TodaySalesCount  int64             `json:"today_sales_count"`
	TodayRevenue     decimal.Decimal   `json:"today_revenue"`
	LowStockCount    int               `json:"low_stock_count"`
	LowStockProducts []ProductResponse `json:"low_stock_products"`
}
