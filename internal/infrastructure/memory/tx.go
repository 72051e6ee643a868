package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

// RunSale ejecuta fn bajo el lock exclusivo del Store. Antes de ejecutar se
// toma un snapshot profundo del estado; si fn devuelve error, el snapshot se
// restaura y ningún cambio queda visible. Con el Store entero bloqueado no
// hay escritores concurrentes, así que nunca se produce domain.ErrConflict.
func (s *Store) RunSale(_ context.Context, fn func(repos sales.SaleRepos, seq sales.InvoiceSequencer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshotLocked()
	tx := txView{s}
	err := fn(sales.SaleRepos{
		Products: txProducts{tx},
		Clients:  txClients{tx},
		Sales:    txSales{tx},
	}, tx)
	if err != nil {
		s.restoreLocked(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	invoiceCounter int64
	products       map[string]entity.Product
	productOrder   []string
	clients        map[string]entity.Client
	clientOrder    []string
	sales          []entity.Sale
	saleIndex      map[string]int
}

func (s *Store) snapshotLocked() storeSnapshot {
	snap := storeSnapshot{
		invoiceCounter: s.invoiceCounter,
		products:       make(map[string]entity.Product, len(s.products)),
		productOrder:   append([]string(nil), s.productOrder...),
		clients:        make(map[string]entity.Client, len(s.clients)),
		clientOrder:    append([]string(nil), s.clientOrder...),
		sales:          make([]entity.Sale, 0, len(s.sales)),
		saleIndex:      make(map[string]int, len(s.saleIndex)),
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, c := range s.clients {
		snap.clients[id] = c
	}
	for i := range s.sales {
		snap.sales = append(snap.sales, cloneSale(s.sales[i]))
	}
	for id, i := range s.saleIndex {
		snap.saleIndex[id] = i
	}
	return snap
}

func (s *Store) restoreLocked(snap storeSnapshot) {
	s.invoiceCounter = snap.invoiceCounter
	s.products = snap.products
	s.productOrder = snap.productOrder
	s.clients = snap.clients
	s.clientOrder = snap.clientOrder
	s.sales = snap.sales
	s.saleIndex = snap.saleIndex
}

// txView repos ligados a un RunSale en curso: el lock ya está tomado, por lo
// que llaman a los internos *Locked directamente.
type txView struct{ s *Store }

// Next implementa sales.InvoiceSequencer dentro de la transacción.
func (t txView) Next() (string, error) { return t.s.nextInvoiceLocked() }

type txProducts struct{ t txView }

func (v txProducts) Create(p *entity.Product) error         { return v.t.s.createProductLocked(p) }
func (v txProducts) GetByID(id string) (*entity.Product, error) { return v.t.s.getProductLocked(id), nil }
func (v txProducts) GetForUpdate(id string) (*entity.Product, error) {
	return v.t.s.getProductLocked(id), nil
}
func (v txProducts) List() ([]*entity.Product, error) { return v.t.s.listProductsLocked(), nil }
func (v txProducts) SearchByName(query string, limit int) ([]*entity.Product, error) {
	return v.t.s.searchProductsLocked(query, limit), nil
}
func (v txProducts) Update(p *entity.Product) error { return v.t.s.updateProductLocked(p) }
func (v txProducts) UpdateStock(id string, stock decimal.Decimal, now time.Time) error {
	return v.t.s.updateStockLocked(id, stock, now)
}
func (v txProducts) Delete(id string) error { return v.t.s.deleteProductLocked(id) }

type txClients struct{ t txView }

func (v txClients) Create(c *entity.Client) error { return v.t.s.createClientLocked(c) }
func (v txClients) GetByID(id string) (*entity.Client, error) { return v.t.s.getClientLocked(id), nil }
func (v txClients) GetForUpdate(id string) (*entity.Client, error) {
	return v.t.s.getClientLocked(id), nil
}
func (v txClients) GetByName(name string) (*entity.Client, error) {
	return v.t.s.getClientByNameLocked(name), nil
}
func (v txClients) List() ([]*entity.Client, error) { return v.t.s.listClientsLocked(), nil }
func (v txClients) Update(c *entity.Client) error   { return v.t.s.updateClientLocked(c) }
func (v txClients) AdjustDebt(id string, delta decimal.Decimal, now time.Time) error {
	return v.t.s.adjustDebtLocked(id, delta, now)
}
func (v txClients) Delete(id string) error { return v.t.s.deleteClientLocked(id) }

type txSales struct{ t txView }

func (v txSales) Create(sale *entity.Sale) error         { return v.t.s.createSaleLocked(sale) }
func (v txSales) GetByID(id string) (*entity.Sale, error) { return v.t.s.getSaleLocked(id), nil }
func (v txSales) List() ([]*entity.Sale, error)           { return v.t.s.listSalesLocked(), nil }
