package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optimal-price/internal/application/dto"
)

// PricingProbe comprueba la disponibilidad del servicio de precios.
type PricingProbe interface {
	Ping(ctx context.Context) error
	BaseURL() string
}

// HealthHandler GET /health.
type HealthHandler struct {
	service string
	probe   PricingProbe
}

// NewHealthHandler construye el handler.
func NewHealthHandler(service string, probe PricingProbe) *HealthHandler {
	return &HealthHandler{service: service, probe: probe}
}

// Check godoc
// @Summary      Estado del servicio
// @Description  Con deep=true consulta además GET / del servicio de precios (timeout 3 s).
// @Tags         health
// @Produce      json
// @Param        deep  query  bool  false  "consultar el servicio de precios"
// @Success      200   {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok", Service: h.service}
	if h.probe != nil {
		resp.PricingAPI = h.probe.BaseURL()
		if c.QueryBool("deep", false) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			reachable := h.probe.Ping(ctx) == nil
			resp.PricingAPIReachable = &reachable
		}
	}
	return c.JSON(resp)
}
