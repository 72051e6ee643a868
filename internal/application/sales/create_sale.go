package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/dto"
	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// Reintentos ante domain.ErrConflict. El conflicto garantiza que nada quedó
// escrito, así que repetir la transacción completa es seguro.
const maxCommitRetries = 3

// CreateSaleUseCase motor de transacciones de venta: resuelve el cliente,
// valida líneas y crédito, calcula totales y confirma de forma atómica el
// descuento de stock, el ajuste de deuda, el número de factura y la venta.
type CreateSaleUseCase struct {
	txRunner SaleTxRunner
	saleRepo repository.SaleRepository
}

// NewCreateSaleUseCase construye el motor. saleRepo atiende las lecturas
// fuera de transacción (listados y consulta por ID).
func NewCreateSaleUseCase(txRunner SaleTxRunner, saleRepo repository.SaleRepository) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// CreateSale registra una venta. Toda la validación ocurre antes de mutar
// nada; si algún paso falla, productos y clientes quedan exactamente como
// estaban (la transacción revierte, incluido un cliente creado al vuelo).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	payment := entity.PaymentMethod(in.PaymentMethod)
	if in.PaymentMethod == "" {
		payment = entity.PaymentCash
	}
	if !payment.Valid() {
		return nil, fmt.Errorf("forma de pago %q desconocida: %w", in.PaymentMethod, domain.ErrInvalidInput)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("descuento no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("la venta no tiene líneas: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("línea sin producto: %w", domain.ErrInvalidInput)
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("cantidad debe ser mayor que 0: %w", domain.ErrInvalidInput)
		}
	}

	var sale *entity.Sale
	var err error
	for attempt := 0; attempt < maxCommitRetries; attempt++ {
		sale, err = uc.commit(ctx, in, payment)
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// commit ejecuta una tentativa completa de la venta dentro de una transacción.
func (uc *CreateSaleUseCase) commit(ctx context.Context, in dto.CreateSaleRequest, payment entity.PaymentMethod) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(repos SaleRepos, seq InvoiceSequencer) error {
		now := time.Now()

		// 1) Resolver cliente: ID existente, nombre (buscar o crear) o anónimo.
		client, err := resolveClient(repos, in, now)
		if err != nil {
			return err
		}
		if payment == entity.PaymentCredit && client == nil {
			return fmt.Errorf("venta anónima no puede ser a crédito: %w", domain.ErrInvalidInput)
		}

		// 2) Bloquear productos en orden de ID (evita deadlocks entre ventas
		// concurrentes) y validar stock acumulado por producto.
		productIDs := make([]string, 0, len(in.Items))
		seen := make(map[string]bool, len(in.Items))
		for _, item := range in.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
		sort.Strings(productIDs)

		products := make(map[string]*entity.Product, len(productIDs))
		remaining := make(map[string]decimal.Decimal, len(productIDs))
		for _, id := range productIDs {
			p, err := repos.Products.GetForUpdate(id)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
			}
			products[id] = p
			remaining[id] = p.Stock
		}

		// 3) Calcular líneas con el precio del catálogo al momento de la venta.
		items := make([]entity.SaleItem, 0, len(in.Items))
		subtotal := decimal.Zero
		for _, item := range in.Items {
			p := products[item.ProductID]
			if remaining[p.ID].LessThan(item.Quantity) {
				return fmt.Errorf("%w para %s", domain.ErrInsufficientStock, p.Name)
			}
			remaining[p.ID] = remaining[p.ID].Sub(item.Quantity)
			lineTotal := p.Price.Mul(item.Quantity)
			items = append(items, entity.SaleItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				UnitPrice:   p.Price,
				TotalPrice:  lineTotal,
			})
			subtotal = subtotal.Add(lineTotal)
		}
		total := subtotal.Sub(in.Discount)
		if total.IsNegative() {
			total = decimal.Zero // el descuento nunca produce un total negativo
		}

		// 4) Tope de crédito: deuda actual + total <= límite.
		if payment == entity.PaymentCredit {
			if client.CurrentDebt.Add(total).GreaterThan(client.CreditLimit) {
				return fmt.Errorf("%w para %s", domain.ErrCreditLimitExceeded, client.Name)
			}
		}

		// 5) Confirmar: stock, deuda, número de factura y venta. A partir de
		// aquí ya no hay validaciones, solo mutaciones dentro de la tx.
		for _, id := range productIDs {
			if err := repos.Products.UpdateStock(id, remaining[id], now); err != nil {
				return err
			}
		}
		clientID := ""
		clientName := entity.AnonymousClientName
		if client != nil {
			clientID = client.ID
			clientName = client.Name
			if payment == entity.PaymentCredit {
				if err := repos.Clients.AdjustDebt(client.ID, total, now); err != nil {
					return err
				}
			}
		}
		invoiceNumber, err := seq.Next()
		if err != nil {
			return err
		}
		sale = &entity.Sale{
			ID:            uuid.New().String(),
			InvoiceNumber: invoiceNumber,
			ClientID:      clientID,
			ClientName:    clientName,
			Items:         items,
			Subtotal:      subtotal,
			Discount:      in.Discount,
			Total:         total,
			PaymentMethod: payment,
			CreatedAt:     now,
		}
		return repos.Sales.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// resolveClient implementa el paso resolver-o-crear: toda venta referencia a
// un cliente real del libro o al centinela anónimo, nunca a un ID adivinado.
// El cliente creado al vuelo nace sin crédito; si la venta luego falla, la
// transacción también revierte su creación.
func resolveClient(repos SaleRepos, in dto.CreateSaleRequest, now time.Time) (*entity.Client, error) {
	clientID := strings.TrimSpace(in.ClientID)
	clientName := strings.TrimSpace(in.ClientName)

	if clientID != "" {
		client, err := repos.Clients.GetForUpdate(clientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("cliente %s: %w", clientID, domain.ErrNotFound)
		}
		return client, nil
	}
	if clientName == "" || clientName == entity.AnonymousClientName {
		return nil, nil // venta anónima
	}
	existing, err := repos.Clients.GetByName(clientName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return repos.Clients.GetForUpdate(existing.ID)
	}
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        clientName,
		CreditLimit: decimal.Zero,
		CurrentDebt: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repos.Clients.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetSale obtiene una venta por ID.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return toSaleResponse(sale), nil
}

// ListSales lista las ventas más recientes primero.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		ClientName:    s.ClientName,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		CreatedAt:     s.CreatedAt,
	}
	if s.ClientID != "" {
		id := s.ClientID
		resp.ClientID = &id
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}
