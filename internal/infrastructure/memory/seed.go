package memory

import (
	"time"

	"github.com/tu-usuario/congelados-pos/internal/infrastructure/seed"
)

// SeedDemo carga un catálogo y clientes de demostración (modo memoria sin
// base de datos, los datos viven lo que el proceso).
func (s *Store) SeedDemo() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, p := range seed.DemoProducts(now) {
		_ = s.createProductLocked(p)
	}
	for _, c := range seed.DemoClients(now) {
		_ = s.createClientLocked(c)
	}
}
