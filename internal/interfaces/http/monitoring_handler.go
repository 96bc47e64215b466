package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/navbahor-erp/internal/application/monitoring"
)

// MonitoringHandler tablero general.
type MonitoringHandler struct {
	uc *monitoring.DashboardUseCase
}

// NewMonitoringHandler construye el handler.
func NewMonitoringHandler(uc *monitoring.DashboardUseCase) *MonitoringHandler {
	return &MonitoringHandler{uc: uc}
}

// Summary godoc
// @Summary      Tablero de monitoreo
// @Tags         monitoring
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonitoringDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/monitoring [get]
func (h *MonitoringHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
