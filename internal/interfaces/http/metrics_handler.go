package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Directorio-api/internal/application/dto"
	"github.com/jhoicas/Directorio-api/internal/application/metrics"
)

// MetricsHandler expone los contadores de población completa.
type MetricsHandler struct {
	svc *metrics.Service
}

// NewMetricsHandler construye el handler de métricas.
func NewMetricsHandler(svc *metrics.Service) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

// Global godoc
// @Summary      Métricas poblacionales del directorio
// @Tags         metrics
// @Produce      json
// @Success      200  {object}  dto.MetricsResponse
// @Router       /api/directory/metrics [get]
func (h *MetricsHandler) Global(c *fiber.Ctx) error {
	m := h.svc.ComputeGlobalMetrics(c.Context())
	return c.JSON(dto.MetricsResponse{
		ActiveIndividuals: m.ActiveIndividuals,
		ActiveClients:     m.ActiveClients,
		DeletedClients:    m.DeletedClients,
		NewWithin30Days:   m.NewWithin30Days,
	})
}
