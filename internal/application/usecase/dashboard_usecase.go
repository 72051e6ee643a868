package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/dto"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// lowStockLimit acota solo el listado de productos; low_stock_count sale de
// un conteo aparte sin truncar.
const lowStockLimit = 100

// DashboardUseCase genera las estadísticas del panel: conteos, ventas del
// día y stock bajo. Todo es derivado; se recalcula en cada llamada a partir
// del estado confirmado de los repositorios.
type DashboardUseCase struct {
	statsRepo         repository.StatsRepository
	lowStockThreshold decimal.Decimal
}

// NewDashboardUseCase construye el caso de uso. threshold marca el stock a
// partir del cual un producto se considera "bajo" (<= threshold).
func NewDashboardUseCase(statsRepo repository.StatsRepository, threshold decimal.Decimal) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, lowStockThreshold: threshold}
}

// GetStats construye el DashboardStatsResponse.
//
// "Hoy" es la fecha calendario en la zona horaria local del servidor:
// [00:00 de hoy, 00:00 de mañana). Las seis consultas van en paralelo.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)

	type countResult struct {
		n   int64
		err error
	}
	type metricsResult struct {
		count   int64
		revenue decimal.Decimal
		err     error
	}
	type lowStockResult struct {
		products []dto.ProductResponse
		err      error
	}

	productsCh := make(chan countResult, 1)
	clientsCh := make(chan countResult, 1)
	salesCh := make(chan countResult, 1)
	todayCh := make(chan metricsResult, 1)
	lowCh := make(chan lowStockResult, 1)
	lowCountCh := make(chan countResult, 1)

	go func() {
		n, err := uc.statsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountClients(ctx)
		clientsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.statsRepo.CountSales(ctx)
		salesCh <- countResult{n, err}
	}()
	go func() {
		count, revenue, err := uc.statsRepo.SalesMetricsBetween(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{count, revenue, err}
	}()
	go func() {
		list, err := uc.statsRepo.LowStockProducts(ctx, uc.lowStockThreshold, lowStockLimit)
		if err != nil {
			lowCh <- lowStockResult{nil, err}
			return
		}
		products := make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			products = append(products, *toProductResponse(p))
		}
		lowCh <- lowStockResult{products, nil}
	}()
	go func() {
		n, err := uc.statsRepo.CountLowStock(ctx, uc.lowStockThreshold)
		lowCountCh <- countResult{n, err}
	}()

	products := <-productsCh
	clients := <-clientsCh
	sales := <-salesCh
	today := <-todayCh
	low := <-lowCh
	lowCount := <-lowCountCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de clientes: %w", clients.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de ventas: %w", sales.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if lowCount.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de stock bajo: %w", lowCount.err)
	}

	return &dto.DashboardStatsResponse{
		TotalProducts:    products.n,
		TotalClients:     clients.n,
		TotalSales:       sales.n,
		TodaySalesCount:  today.count,
		TodayRevenue:     today.revenue.Round(2),
		LowStockCount:    int(lowCount.n),
		LowStockProducts: low.products,
	}, nil
}
