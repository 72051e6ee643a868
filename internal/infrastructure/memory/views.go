package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// Vistas tipadas sobre el Store: cada método toma el lock por operación.
// Dentro de RunSale se usan las variantes tx* que asumen el lock tomado.

var (
	_ repository.ProductRepository = ProductStore{}
	_ repository.ClientRepository  = ClientStore{}
	_ repository.SaleRepository    = SaleStore{}
	_ repository.StatsRepository   = StatsStore{}
	_ sales.SaleTxRunner           = (*Store)(nil)
)

// Products devuelve la vista ProductRepository del Store.
func (s *Store) Products() ProductStore { return ProductStore{s} }

// Clients devuelve la vista ClientRepository del Store.
func (s *Store) Clients() ClientStore { return ClientStore{s} }

// Sales devuelve la vista SaleRepository del Store.
func (s *Store) Sales() SaleStore { return SaleStore{s} }

// Stats devuelve la vista StatsRepository del Store.
func (s *Store) Stats() StatsStore { return StatsStore{s} }

// ── ProductStore ──────────────────────────────────────────────────────────────

// ProductStore vista ProductRepository.
type ProductStore struct{ s *Store }

func (v ProductStore) Create(product *entity.Product) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.createProductLocked(product)
}

func (v ProductStore) GetByID(id string) (*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.getProductLocked(id), nil
}

// GetForUpdate fuera de transacción equivale a GetByID.
func (v ProductStore) GetForUpdate(id string) (*entity.Product, error) {
	return v.GetByID(id)
}

func (v ProductStore) List() ([]*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.listProductsLocked(), nil
}

func (v ProductStore) SearchByName(query string, limit int) ([]*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.searchProductsLocked(query, limit), nil
}

func (v ProductStore) Update(product *entity.Product) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.updateProductLocked(product)
}

func (v ProductStore) UpdateStock(id string, stock decimal.Decimal, now time.Time) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.updateStockLocked(id, stock, now)
}

func (v ProductStore) Delete(id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.deleteProductLocked(id)
}

// ── ClientStore ───────────────────────────────────────────────────────────────

// ClientStore vista ClientRepository.
type ClientStore struct{ s *Store }

func (v ClientStore) Create(client *entity.Client) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.createClientLocked(client)
}

func (v ClientStore) GetByID(id string) (*entity.Client, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.getClientLocked(id), nil
}

func (v ClientStore) GetForUpdate(id string) (*entity.Client, error) {
	return v.GetByID(id)
}

func (v ClientStore) GetByName(name string) (*entity.Client, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.getClientByNameLocked(name), nil
}

func (v ClientStore) List() ([]*entity.Client, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.listClientsLocked(), nil
}

func (v ClientStore) Update(client *entity.Client) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.updateClientLocked(client)
}

func (v ClientStore) AdjustDebt(id string, delta decimal.Decimal, now time.Time) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.adjustDebtLocked(id, delta, now)
}

func (v ClientStore) Delete(id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.deleteClientLocked(id)
}

// ── SaleStore ─────────────────────────────────────────────────────────────────

// SaleStore vista SaleRepository.
type SaleStore struct{ s *Store }

func (v SaleStore) Create(sale *entity.Sale) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return v.s.createSaleLocked(sale)
}

func (v SaleStore) GetByID(id string) (*entity.Sale, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.getSaleLocked(id), nil
}

func (v SaleStore) List() ([]*entity.Sale, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.s.listSalesLocked(), nil
}

// ── StatsStore ────────────────────────────────────────────────────────────────

// StatsStore vista StatsRepository (consultas del dashboard).
type StatsStore struct{ s *Store }

func (v StatsStore) CountProducts(_ context.Context) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return int64(len(v.s.products)), nil
}

func (v StatsStore) CountClients(_ context.Context) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return int64(len(v.s.clients)), nil
}

func (v StatsStore) CountSales(_ context.Context) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return int64(len(v.s.sales)), nil
}

func (v StatsStore) SalesMetricsBetween(_ context.Context, start, end time.Time) (int64, decimal.Decimal, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var count int64
	revenue := decimal.Zero
	for i := range v.s.sales {
		at := v.s.sales[i].CreatedAt
		if !at.Before(start) && at.Before(end) {
			count++
			revenue = revenue.Add(v.s.sales[i].Total)
		}
	}
	return count, revenue, nil
}

func (v StatsStore) LowStockProducts(_ context.Context, threshold decimal.Decimal, limit int) ([]*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*entity.Product
	for _, id := range v.s.productOrder {
		p := v.s.products[id]
		if p.Stock.LessThanOrEqual(threshold) {
			c := p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock.LessThan(out[j].Stock) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v StatsStore) CountLowStock(_ context.Context, threshold decimal.Decimal) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var n int64
	for _, p := range v.s.products {
		if p.Stock.LessThanOrEqual(threshold) {
			n++
		}
	}
	return n, nil
}
