package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/congelados-pos/internal/application/dto"
	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/application/usecase"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/memory"
)

func TestDashboardGetStats_Vacio(t *testing.T) {
	store := memory.New("INV")
	uc := usecase.NewDashboardUseCase(store.Stats(), decimal.NewFromInt(5))

	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.TotalProducts)
	assert.Zero(t, out.TotalClients)
	assert.Zero(t, out.TotalSales)
	assert.Zero(t, out.TodaySalesCount)
	assert.True(t, out.TodayRevenue.IsZero())
	assert.Zero(t, out.LowStockCount)
	assert.Empty(t, out.LowStockProducts)
}

func TestDashboardGetStats_Derivado(t *testing.T) {
	store := memory.New("INV")
	productUC := usecase.NewProductUseCase(store.Products())
	clientUC := usecase.NewClientUseCase(store.Clients())
	saleUC := sales.NewCreateSaleUseCase(store, store.Sales())
	uc := usecase.NewDashboardUseCase(store.Stats(), decimal.NewFromInt(5))

	// Catálogo: dos con stock bajo (<= 5), uno holgado.
	low1 := createProduct(t, productUC, "Ailes de poulet", "meat", "4.80", "3.5", "kg")
	low2 := createProduct(t, productUC, "Crevettes", "fish", "9.90", "5", "kg")
	createProduct(t, productUC, "Merlu", "fish", "6.75", "22", "kg")

	_, err := clientUC.Create(dto.CreateClientRequest{Name: "Awa"})
	require.NoError(t, err)

	// Dos ventas de hoy: 9.90 + 4.80 = 14.70.
	for _, productID := range []string{low2.ID, low1.ID} {
		_, err := saleUC.CreateSale(context.Background(), dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
	}

	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.TotalProducts)
	assert.EqualValues(t, 1, out.TotalClients)
	assert.EqualValues(t, 2, out.TotalSales)
	assert.EqualValues(t, 2, out.TodaySalesCount)
	assert.True(t, out.TodayRevenue.Equal(decimal.RequireFromString("14.70")),
		"ingresos de hoy: 9.90 + 4.80, obtenido %s", out.TodayRevenue)

	// low1 quedó en 2.5 y low2 en 4 tras las ventas; ambos <= 5.
	require.Equal(t, 2, out.LowStockCount)
	names := []string{out.LowStockProducts[0].Name, out.LowStockProducts[1].Name}
	assert.Contains(t, names, "Ailes de poulet")
	assert.Contains(t, names, "Crevettes")
}

func TestDashboardGetStats_ConteoDeStockBajoNoSeTrunca(t *testing.T) {
	store := memory.New("INV")
	productUC := usecase.NewProductUseCase(store.Products())

	// Más productos con stock bajo que el tope del listado (100).
	for i := 0; i < 105; i++ {
		createProduct(t, productUC, fmt.Sprintf("Producto %03d", i), "fish", "1.00", "2", "kg")
	}

	uc := usecase.NewDashboardUseCase(store.Stats(), decimal.NewFromInt(5))
	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 105, out.LowStockCount, "el conteo cubre todos los productos bajos")
	assert.Len(t, out.LowStockProducts, 100, "el listado sí queda acotado")
}

func TestDashboardGetStats_UmbralConfigurable(t *testing.T) {
	store := memory.New("INV")
	productUC := usecase.NewProductUseCase(store.Products())
	createProduct(t, productUC, "Merlu", "fish", "6.75", "8", "kg")

	uc := usecase.NewDashboardUseCase(store.Stats(), decimal.NewFromInt(10))
	out, err := uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.LowStockCount, "con umbral 10 el stock de 8 cuenta como bajo")

	uc = usecase.NewDashboardUseCase(store.Stats(), decimal.NewFromInt(5))
	out, err = uc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.LowStockCount)
}
