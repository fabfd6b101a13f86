package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optimal-price/internal/application/dto"
	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// ReportHandler descarga de la recomendación vigente en PDF.
type ReportHandler struct {
	gen ports.ReportGenerator
	now func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(gen ports.ReportGenerator) *ReportHandler {
	return &ReportHandler{gen: gen, now: time.Now}
}

// Download godoc
// @Summary      Descargar recomendación en PDF
// @Tags         session
// @Produce      application/pdf
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/session/report.pdf [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return noSession(c)
	}
	state := s.State()
	if state.Status != entity.StatusResolved || state.Result == nil || state.Input == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NO_RESULT", Message: domain.ErrNoResult.Error(),
		})
	}

	now := h.now()
	pdf, err := h.gen.GenerateRecommendationPDF(c.Context(), *state.Input, *state.Result, now)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="pricing-recommendation-%s.pdf"`, now.Format("20060102-150405")))
	return c.Send(pdf)
}
