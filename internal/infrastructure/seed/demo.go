// Package seed define el catálogo y los clientes de demostración que
// comparten el almacén en memoria y el comando cmd/seed.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

// DemoProducts devuelve el catálogo de demostración con IDs nuevos.
func DemoProducts(now time.Time) []*entity.Product {
	products := []entity.Product{
		{Name: "Filet de saumon", Category: entity.CategoryFish, Price: decimal.NewFromFloat(12.50), Stock: decimal.NewFromFloat(18.5), Unit: entity.UnitKilogram},
		{Name: "Crevettes entières", Category: entity.CategoryFish, Price: decimal.NewFromFloat(9.90), Stock: decimal.NewFromFloat(7), Unit: entity.UnitKilogram},
		{Name: "Merlu en tranches", Category: entity.CategoryFish, Price: decimal.NewFromFloat(6.75), Stock: decimal.NewFromFloat(22), Unit: entity.UnitKilogram},
		{Name: "Poulet entier", Category: entity.CategoryMeat, Price: decimal.NewFromFloat(5.20), Stock: decimal.NewFromInt(14), Unit: entity.UnitPiece},
		{Name: "Ailes de poulet", Category: entity.CategoryMeat, Price: decimal.NewFromFloat(4.80), Stock: decimal.NewFromFloat(3.5), Unit: entity.UnitKilogram},
		{Name: "Viande hachée", Category: entity.CategoryMeat, Price: decimal.NewFromFloat(7.40), Stock: decimal.NewFromInt(9), Unit: entity.UnitTray},
	}
	out := make([]*entity.Product, 0, len(products))
	for i := range products {
		p := products[i]
		p.ID = uuid.New().String()
		p.CreatedAt = now
		p.UpdatedAt = now
		out = append(out, &p)
	}
	return out
}

// DemoClients devuelve los clientes de demostración con IDs nuevos y deuda cero.
func DemoClients(now time.Time) []*entity.Client {
	clients := []entity.Client{
		{Name: "Awa Diallo", Phone: "+221 77 123 45 67", CreditLimit: decimal.NewFromInt(100)},
		{Name: "Moussa Ndiaye", Phone: "+221 76 987 65 43", CreditLimit: decimal.NewFromInt(50)},
	}
	out := make([]*entity.Client, 0, len(clients))
	for i := range clients {
		c := clients[i]
		c.ID = uuid.New().String()
		c.CurrentDebt = decimal.Zero
		c.CreatedAt = now
		c.UpdatedAt = now
		out = append(out, &c)
	}
	return out
}
