package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fardsis/fsis-api/internal/application/analytics"
	"github.com/fardsis/fsis-api/internal/application/dto"
)

// DashboardHandler resumen de actividad (protegido, cualquier autenticado).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary métricas de los últimos 30 días.
// GET /api/dashboard
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
