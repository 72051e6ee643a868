// Package memory implementa todos los puertos de persistencia sobre mapas en
// memoria protegidos por un mutex. Es el backend cuando no hay DATABASE_URL
// (modo demo/desarrollo) y el sustrato de los tests unitarios.
//
// El Store es el núcleo compartido; Products(), Clients(), Sales() y Stats()
// devuelven vistas tipadas que toman el lock por operación. RunSale toma el
// lock exclusivo durante todo el commit, así que las ventas quedan
// serializadas por construcción y nunca producen ErrConflict; si el callback
// falla, el estado se restaura desde un snapshot (todo-o-nada).
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/pkg/textfold"
)

// Store almacén en memoria. Un único Store respalda todos los repositorios.
type Store struct {
	mu             sync.RWMutex
	invoicePrefix  string
	invoiceCounter int64
	products       map[string]entity.Product
	productOrder   []string
	clients        map[string]entity.Client
	clientOrder    []string
	sales          []entity.Sale
	saleIndex      map[string]int
}

// New crea un Store vacío. prefix es el prefijo de los números de factura
// (ej. "INV" produce INV-000001).
func New(prefix string) *Store {
	return &Store{
		invoicePrefix: prefix,
		products:      make(map[string]entity.Product),
		clients:       make(map[string]entity.Client),
		saleIndex:     make(map[string]int),
	}
}

// ── Núcleo sin lock (los callers toman s.mu) ─────────────────────────────────

func (s *Store) createProductLocked(product *entity.Product) error {
	s.products[product.ID] = *product
	s.productOrder = append(s.productOrder, product.ID)
	return nil
}

func (s *Store) getProductLocked(id string) *entity.Product {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	return &p
}

func (s *Store) listProductsLocked() []*entity.Product {
	out := make([]*entity.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.getProductLocked(id))
	}
	return out
}

func (s *Store) searchProductsLocked(query string, limit int) []*entity.Product {
	var out []*entity.Product
	for _, id := range s.productOrder {
		p := s.products[id]
		if strings.Contains(textfold.Fold(p.Name), query) {
			c := p
			out = append(out, &c)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

func (s *Store) updateProductLocked(product *entity.Product) error {
	if _, ok := s.products[product.ID]; !ok {
		return fmt.Errorf("producto %s: %w", product.ID, domain.ErrNotFound)
	}
	s.products[product.ID] = *product
	return nil
}

func (s *Store) updateStockLocked(id string, stock decimal.Decimal, now time.Time) error {
	p, ok := s.products[id]
	if !ok {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	p.Stock = stock
	p.UpdatedAt = now
	s.products[id] = p
	return nil
}

func (s *Store) deleteProductLocked(id string) error {
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) createClientLocked(client *entity.Client) error {
	s.clients[client.ID] = *client
	s.clientOrder = append(s.clientOrder, client.ID)
	return nil
}

func (s *Store) getClientLocked(id string) *entity.Client {
	c, ok := s.clients[id]
	if !ok {
		return nil
	}
	return &c
}

func (s *Store) getClientByNameLocked(name string) *entity.Client {
	for _, id := range s.clientOrder {
		c := s.clients[id]
		if c.Name == name {
			return &c
		}
	}
	return nil
}

func (s *Store) listClientsLocked() []*entity.Client {
	out := make([]*entity.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		out = append(out, s.getClientLocked(id))
	}
	return out
}

func (s *Store) updateClientLocked(client *entity.Client) error {
	if _, ok := s.clients[client.ID]; !ok {
		return fmt.Errorf("cliente %s: %w", client.ID, domain.ErrNotFound)
	}
	s.clients[client.ID] = *client
	return nil
}

func (s *Store) adjustDebtLocked(id string, delta decimal.Decimal, now time.Time) error {
	c, ok := s.clients[id]
	if !ok {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	c.CurrentDebt = c.CurrentDebt.Add(delta)
	c.UpdatedAt = now
	s.clients[id] = c
	return nil
}

func (s *Store) deleteClientLocked(id string) error {
	if _, ok := s.clients[id]; !ok {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	delete(s.clients, id)
	for i, cid := range s.clientOrder {
		if cid == id {
			s.clientOrder = append(s.clientOrder[:i], s.clientOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) createSaleLocked(sale *entity.Sale) error {
	s.saleIndex[sale.ID] = len(s.sales)
	s.sales = append(s.sales, cloneSale(*sale))
	return nil
}

func (s *Store) getSaleLocked(id string) *entity.Sale {
	i, ok := s.saleIndex[id]
	if !ok {
		return nil
	}
	c := cloneSale(s.sales[i])
	return &c
}

func (s *Store) listSalesLocked() []*entity.Sale {
	// Más recientes primero: orden inverso de inserción.
	out := make([]*entity.Sale, 0, len(s.sales))
	for i := len(s.sales) - 1; i >= 0; i-- {
		c := cloneSale(s.sales[i])
		out = append(out, &c)
	}
	return out
}

func (s *Store) nextInvoiceLocked() (string, error) {
	s.invoiceCounter++
	return fmt.Sprintf("%s-%06d", s.invoicePrefix, s.invoiceCounter), nil
}

func cloneSale(s entity.Sale) entity.Sale {
	c := s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return c
}
