package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/congelados-pos/internal/application/usecase"
)

// DashboardHandler expone las métricas derivadas del punto de venta.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Métricas del dashboard
// @Description  Totales de catálogo, clientes y ventas, actividad de hoy y
// @Description  productos con stock bajo. Todo recalculado en cada llamada.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
