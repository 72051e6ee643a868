// seed carga el catálogo y los clientes de demostración en PostgreSQL.
//
// Uso: go run ./cmd/seed
// Requiere DATABASE_URL (o DB_HOST y compañía) apuntando a una base con el
// esquema de migrations/ ya aplicado. El comando es aditivo: no borra datos
// existentes.
package main

import (
	"context"
	"time"

	"github.com/tu-usuario/congelados-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/congelados-pos/internal/infrastructure/seed"
	"github.com/tu-usuario/congelados-pos/pkg/config"
	"github.com/tu-usuario/congelados-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if !cfg.DB.Enabled() {
		log.Fatal().Msg("DATABASE_URL o DB_HOST requerido para sembrar PostgreSQL")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)

	now := time.Now()
	products := seed.DemoProducts(now)
	for _, p := range products {
		if err := productRepo.Create(p); err != nil {
			log.Fatal().Err(err).Str("product", p.Name).Msg("insertar producto")
		}
	}
	clients := seed.DemoClients(now)
	for _, c := range clients {
		if err := clientRepo.Create(c); err != nil {
			log.Fatal().Err(err).Str("client", c.Name).Msg("insertar cliente")
		}
	}

	log.Info().
		Int("products", len(products)).
		Int("clients", len(clients)).
		Msg("datos de demostración cargados")
}
