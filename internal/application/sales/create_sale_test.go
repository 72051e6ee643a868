package sales_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/congelados-pos/internal/application/dto"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: el sustrato es el Store en memoria, que implementa los
// mismos puertos que PostgreSQL (repos, sequencer y tx con rollback).
// ──────────────────────────────────────────────────────────────────────────────

func newEngine(t *testing.T) (*sales.CreateSaleUseCase, *memory.Store) {
	t.Helper()
	store := memory.New("INV")
	return sales.NewCreateSaleUseCase(store, store.Sales()), store
}

func addProduct(t *testing.T, store *memory.Store, name, price, stock string) string {
	t.Helper()
	p := &entity.Product{
		ID:       name + "-id",
		Name:     name,
		Category: entity.CategoryFish,
		Price:    decimal.RequireFromString(price),
		Stock:    decimal.RequireFromString(stock),
		Unit:     entity.UnitKilogram,
	}
	require.NoError(t, store.Products().Create(p))
	return p.ID
}

func addClient(t *testing.T, store *memory.Store, name, creditLimit, debt string) string {
	t.Helper()
	c := &entity.Client{
		ID:          name + "-id",
		Name:        name,
		CreditLimit: decimal.RequireFromString(creditLimit),
		CurrentDebt: decimal.RequireFromString(debt),
	}
	require.NoError(t, store.Clients().Create(c))
	return c.ID
}

func mustDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []any{"esperado %s, obtenido %s", want, got}
	}
	require.True(t, got.Equal(decimal.RequireFromString(want)), msgAndArgs...)
}

func productStock(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func clientDebt(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	c, err := store.Clients().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.CurrentDebt
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta al contado
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_ContadoDescuentaStockYNumera(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Filet de saumon", "5.00", "10")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", out.InvoiceNumber)
	assert.Equal(t, "cash", out.PaymentMethod, "sin forma de pago explícita se asume efectivo")
	assert.Nil(t, out.ClientID, "sin cliente la venta es anónima")
	assert.Equal(t, entity.AnonymousClientName, out.ClientName)
	mustDecimal(t, "15.00", out.Subtotal)
	mustDecimal(t, "15.00", out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Filet de saumon", out.Items[0].ProductName)
	mustDecimal(t, "5.00", out.Items[0].UnitPrice)
	mustDecimal(t, "15.00", out.Items[0].TotalPrice)

	mustDecimal(t, "7", productStock(t, store, productID))
}

func TestCreateSale_PrecioDelCatalogoConCantidadFraccionaria(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Crevettes", "9.90", "5")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.RequireFromString("1.5")}},
	})
	require.NoError(t, err)

	mustDecimal(t, "14.85", out.Total)
	mustDecimal(t, "3.5", productStock(t, store, productID))
}

func TestCreateSale_DescuentoSeResta(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Merlu", "10.00", "4")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:    []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
		Discount: decimal.RequireFromString("3.50"),
	})
	require.NoError(t, err)

	mustDecimal(t, "20.00", out.Subtotal)
	mustDecimal(t, "3.50", out.Discount)
	mustDecimal(t, "16.50", out.Total)
}

func TestCreateSale_DescuentoMayorQueSubtotalDaTotalCero(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Poulet", "5.00", "4")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items:    []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
		Discount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	mustDecimal(t, "0", out.Total)
	mustDecimal(t, "3", productStock(t, store, productID), "el stock sí se descuenta aunque el total sea cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_EntradaInvalida(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Ailes", "4.80", "10")

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin líneas", dto.CreateSaleRequest{}},
		{"línea sin producto", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{Quantity: decimal.NewFromInt(1)}},
		}},
		{"cantidad cero", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.Zero}},
		}},
		{"cantidad negativa", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(-2)}},
		}},
		{"descuento negativo", dto.CreateSaleRequest{
			Items:    []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
			Discount: decimal.NewFromInt(-5),
		}},
		{"forma de pago desconocida", dto.CreateSaleRequest{
			Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
			PaymentMethod: "bitcoin",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateSale(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	mustDecimal(t, "10", productStock(t, store, productID), "ninguna venta rechazada toca el stock")
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Viande", "7.40", "10")

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID: "no-existe",
		Items:    []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	mustDecimal(t, "10", productStock(t, store, productID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_StockInsuficienteNoMutaNada(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Filet", "5.00", "2")

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	mustDecimal(t, "2", productStock(t, store, productID))
	salesList, err := store.Sales().List()
	require.NoError(t, err)
	assert.Empty(t, salesList, "la venta rechazada no se registra")

	// El número de factura no se quemó: la siguiente venta válida recibe el primero.
	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", out.InvoiceNumber)
}

func TestCreateSale_LineasDuplicadasSumanContraElMismoStock(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Merlu", "6.75", "5")

	// 3 + 3 del mismo producto supera el stock de 5 aunque cada línea quepa sola.
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(3)},
			{ProductID: productID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	mustDecimal(t, "5", productStock(t, store, productID))
}

func TestCreateSale_VentaMultilinea(t *testing.T) {
	uc, store := newEngine(t)
	salmonID := addProduct(t, store, "Saumon", "12.50", "10")
	pouletID := addProduct(t, store, "Poulet", "5.20", "8")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: salmonID, Quantity: decimal.NewFromInt(2)},
			{ProductID: pouletID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	mustDecimal(t, "40.60", out.Total) // 25.00 + 15.60
	mustDecimal(t, "8", productStock(t, store, salmonID))
	mustDecimal(t, "5", productStock(t, store, pouletID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Crédito y deuda
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_CreditoAumentaDeuda(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")
	clientID := addClient(t, store, "Awa Diallo", "100", "40")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:      clientID,
		PaymentMethod: "credit",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(3)}},
	})
	require.NoError(t, err)

	mustDecimal(t, "30.00", out.Total)
	mustDecimal(t, "70.00", clientDebt(t, store, clientID))
}

func TestCreateSale_CreditoJustoEnElLimite(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "60.00", "10")
	clientID := addClient(t, store, "Moussa", "100", "40")

	// 40 + 60 = 100, exactamente el límite: se acepta.
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:      clientID,
		PaymentMethod: "credit",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	mustDecimal(t, "100.00", clientDebt(t, store, clientID))
}

func TestCreateSale_CreditoExcedidoNoMutaNada(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "70.00", "10")
	clientID := addClient(t, store, "Moussa", "100", "40")

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:      clientID,
		PaymentMethod: "credit",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	mustDecimal(t, "40", clientDebt(t, store, clientID))
	mustDecimal(t, "10", productStock(t, store, productID))
}

func TestCreateSale_ContadoNoTocaLaDeuda(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")
	clientID := addClient(t, store, "Awa", "100", "40")

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientID:      clientID,
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	mustDecimal(t, "40", clientDebt(t, store, clientID))
}

func TestCreateSale_AnonimaACreditoSeRechaza(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: "credit",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de cliente por nombre
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_ClienteNuevoPorNombre(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName: "Fatou Sow",
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.NotNil(t, out.ClientID)
	assert.Equal(t, "Fatou Sow", out.ClientName)

	created, err := store.Clients().GetByName("Fatou Sow")
	require.NoError(t, err)
	require.NotNil(t, created, "el cliente creado al vuelo queda en el libro")
	mustDecimal(t, "0", created.CreditLimit, "el cliente nuevo nace sin crédito")
	mustDecimal(t, "0", created.CurrentDebt)
}

func TestCreateSale_ClienteExistentePorNombreNoSeDuplica(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")
	clientID := addClient(t, store, "Awa Diallo", "100", "0")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName: "Awa Diallo",
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.NotNil(t, out.ClientID)
	assert.Equal(t, clientID, *out.ClientID)

	clients, err := store.Clients().List()
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestCreateSale_CreditoAClienteNuevoRevierteSuCreacion(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")

	// El cliente recién creado tiene límite 0, así que cualquier total a
	// crédito lo excede. El rollback también elimina al cliente.
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:    "Cliente Nuevo",
		PaymentMethod: "credit",
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	ghost, err := store.Clients().GetByName("Cliente Nuevo")
	require.NoError(t, err)
	assert.Nil(t, ghost, "la venta rechazada no deja clientes fantasma")
	mustDecimal(t, "10", productStock(t, store, productID))
}

func TestCreateSale_NombreAnonimoExplicito(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "10.00", "10")

	out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName: entity.AnonymousClientName,
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	assert.Nil(t, out.ClientID)
	clients, err := store.Clients().List()
	require.NoError(t, err)
	assert.Empty(t, clients, "el nombre centinela no crea ningún cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración de facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_FacturasSecuencialesSinHuecos(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "1.00", "100")

	for i := 1; i <= 3; i++ {
		out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("INV-%06d", i), out.InvoiceNumber)
	}

	list, err := uc.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "INV-000003", list[0].InvoiceNumber, "las ventas se listan de la más reciente a la más antigua")
}

func TestCreateSale_FacturasUnicasBajoConcurrencia(t *testing.T) {
	uc, store := newEngine(t)
	const n = 20
	productID := addProduct(t, store, "Saumon", "1.00", fmt.Sprintf("%d", n))

	var wg sync.WaitGroup
	invoices := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
				Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
			})
			if err == nil {
				invoices <- out.InvoiceNumber
			}
		}()
	}
	wg.Wait()
	close(invoices)

	// Las n ventas caben en el stock: todas deben confirmarse, cada una con
	// un número distinto y sin dejar huecos en la secuencia.
	seen := make(map[string]bool, n)
	for inv := range invoices {
		assert.False(t, seen[inv], "número de factura repetido: %s", inv)
		seen[inv] = true
	}
	require.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[fmt.Sprintf("INV-%06d", i)], "falta INV-%06d", i)
	}
	mustDecimal(t, "0", productStock(t, store, productID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "5.00", "10")

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.InvoiceNumber, got.InvoiceNumber)
	mustDecimal(t, "10.00", got.Total)

	_, err = uc.GetSale(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_VentaInmutableTrasEditarProducto(t *testing.T) {
	uc, store := newEngine(t)
	productID := addProduct(t, store, "Saumon", "5.00", "10")

	created, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	// Subir el precio del catálogo no altera el snapshot de la venta.
	p, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	p.Price = decimal.RequireFromString("99.00")
	require.NoError(t, store.Products().Update(p))

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	mustDecimal(t, "5.00", got.Items[0].UnitPrice)
	mustDecimal(t, "5.00", got.Total)
}
