package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/optimal-price/internal/application/dto"
	"github.com/jhoicas/optimal-price/internal/domain"
)

// DashboardHandler sirve la página HTML y procesa los formularios del dashboard.
type DashboardHandler struct {
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

// Page renderiza el dashboard de la sesión.
// GET /
//
// Mientras hay una petición en vuelo la página se recarga sola cada segundo y el
// botón de envío queda deshabilitado.
func (h *DashboardHandler) Page(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "NO_SESSION", Message: "sesión no inicializada",
		})
	}
	html, err := renderDashboard(s.Form(), s.State())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Send(html)
}

// EditForm aplica las ediciones enviadas (form-urlencoded) y vuelve al dashboard.
// POST /form
func (h *DashboardHandler) EditForm(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if _, rejected := s.EditAll(postedValues(c)); len(rejected) > 0 {
		h.log.Debug().Str("session", s.ID).Interface("rejected", rejected).Msg("valores conservados")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Submit aplica las ediciones enviadas y lanza la petición de recomendación.
// POST /submit
//
// Un envío mientras hay otro en vuelo se ignora; la respuesta es siempre 303 a "/".
func (h *DashboardHandler) Submit(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if _, rejected := s.EditAll(postedValues(c)); len(rejected) > 0 {
		h.log.Debug().Str("session", s.ID).Interface("rejected", rejected).Msg("valores conservados")
	}
	if _, err := s.Submit(); err != nil && !errors.Is(err, domain.ErrRequestInFlight) {
		h.log.Error().Err(err).Str("session", s.ID).Msg("envío")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// postedValues devuelve los campos form-urlencoded del cuerpo.
func postedValues(c *fiber.Ctx) map[string]string {
	values := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values[string(key)] = string(value)
	})
	return values
}
