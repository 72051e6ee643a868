package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, store *memory.Store, id, name, stock string) {
	t.Helper()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:       id,
		Name:     name,
		Category: entity.CategoryFish,
		Price:    decimal.NewFromInt(10),
		Stock:    decimal.RequireFromString(stock),
		Unit:     entity.UnitKilogram,
	}))
}

func TestRunSale_ErrorRestauraTodoElEstado(t *testing.T) {
	store := memory.New("INV")
	seedProduct(t, store, "p1", "Saumon", "10")
	require.NoError(t, store.Clients().Create(&entity.Client{ID: "c1", Name: "Awa"}))

	sentinel := errors.New("fallo a mitad de la transacción")
	err := store.RunSale(context.Background(), func(repos sales.SaleRepos, seq sales.InvoiceSequencer) error {
		// Mutaciones de todo tipo antes de fallar.
		require.NoError(t, repos.Products.UpdateStock("p1", decimal.Zero, time.Now()))
		require.NoError(t, repos.Clients.AdjustDebt("c1", decimal.NewFromInt(99), time.Now()))
		require.NoError(t, repos.Clients.Create(&entity.Client{ID: "c2", Name: "Fantasma"}))
		if _, err := seq.Next(); err != nil {
			return err
		}
		require.NoError(t, repos.Sales.Create(&entity.Sale{ID: "s1", InvoiceNumber: "INV-000001"}))
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(10)), "el stock vuelve a su valor previo")

	c, err := store.Clients().GetByID("c1")
	require.NoError(t, err)
	assert.True(t, c.CurrentDebt.IsZero(), "la deuda vuelve a su valor previo")

	ghost, err := store.Clients().GetByID("c2")
	require.NoError(t, err)
	assert.Nil(t, ghost, "el cliente creado dentro de la tx desaparece")

	salesList, err := store.Sales().List()
	require.NoError(t, err)
	assert.Empty(t, salesList)

	// El contador de facturas también revierte: la próxima tx exitosa recibe
	// el primer número.
	err = store.RunSale(context.Background(), func(repos sales.SaleRepos, seq sales.InvoiceSequencer) error {
		inv, err := seq.Next()
		require.NoError(t, err)
		assert.Equal(t, "INV-000001", inv)
		return nil
	})
	require.NoError(t, err)
}

func TestRunSale_ExitoConservaLosCambios(t *testing.T) {
	store := memory.New("FAC")
	seedProduct(t, store, "p1", "Saumon", "10")

	err := store.RunSale(context.Background(), func(repos sales.SaleRepos, seq sales.InvoiceSequencer) error {
		if err := repos.Products.UpdateStock("p1", decimal.NewFromInt(7), time.Now()); err != nil {
			return err
		}
		inv, err := seq.Next()
		if err != nil {
			return err
		}
		return repos.Sales.Create(&entity.Sale{ID: "s1", InvoiceNumber: inv})
	})
	require.NoError(t, err)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(7)))

	s, err := store.Sales().GetByID("s1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "FAC-000001", s.InvoiceNumber, "el prefijo de factura es configurable")
}

func TestSearchByName_PlegadoDeAcentos(t *testing.T) {
	store := memory.New("INV")
	seedProduct(t, store, "p1", "Crevettes entières", "5")
	seedProduct(t, store, "p2", "Viande hachée", "5")

	// La consulta llega ya plegada (así la envía el caso de uso).
	out, err := store.Products().SearchByName("entieres", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Crevettes entières", out[0].Name)

	out, err = store.Products().SearchByName("hachee", 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Viande hachée", out[0].Name)
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	store := memory.New("INV")
	seedProduct(t, store, "p1", "Saumon", "10")

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	p.Stock = decimal.Zero // mutar la copia no toca el almacén

	again, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.True(t, again.Stock.Equal(decimal.NewFromInt(10)))
}

func TestSeedDemo(t *testing.T) {
	store := memory.New("INV")
	store.SeedDemo()

	products, err := store.Products().List()
	require.NoError(t, err)
	assert.Len(t, products, 6)

	clients, err := store.Clients().List()
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	for _, c := range clients {
		assert.True(t, c.CurrentDebt.IsZero())
	}
}
