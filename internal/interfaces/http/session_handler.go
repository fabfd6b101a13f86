package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optimal-price/internal/application/dto"
	"github.com/jhoicas/optimal-price/internal/domain"
)

// SessionHandler API JSON de la sesión del dashboard.
type SessionHandler struct{}

// NewSessionHandler construye el handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Get godoc
// @Summary      Estado de la sesión
// @Description  Formulario actual, variante del ciclo de petición y vista renderizada.
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return noSession(c)
	}
	return c.JSON(dto.NewSessionResponse(s.Form(), s.State()))
}

// EditField godoc
// @Summary      Editar un campo del formulario
// @Description  value se interpreta según el tipo del campo. Si no es válido se conserva
// @Description  el valor anterior y accepted=false.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FieldEditRequest  true  "field y value"
// @Success      200   {object}  dto.FieldEditResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/session/form [patch]
func (h *SessionHandler) EditField(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return noSession(c)
	}
	var req dto.FieldEditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	f, err := s.Edit(req.Field, req.Value)
	if errors.Is(err, domain.ErrUnknownField) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "UNKNOWN_FIELD", Message: err.Error(),
		})
	}
	return c.JSON(dto.FieldEditResponse{
		Form:     f.ToRequest(),
		Accepted: err == nil,
	})
}

// Submit godoc
// @Summary      Solicitar recomendación
// @Description  Envía la instantánea actual del formulario. Con wait=true espera el
// @Description  resultado; sin él responde 202 con el estado pending.
// @Tags         session
// @Produce      json
// @Param        wait  query  bool  false  "esperar el resultado"
// @Success      200   {object}  dto.SessionResponse
// @Success      202   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/session/submit [post]
func (h *SessionHandler) Submit(c *fiber.Ctx) error {
	s := GetSession(c)
	if s == nil {
		return noSession(c)
	}
	if _, err := s.Submit(); err != nil {
		if errors.Is(err, domain.ErrRequestInFlight) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "IN_FLIGHT", Message: "ya hay una petición en curso",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	if !c.QueryBool("wait", false) {
		return c.Status(fiber.StatusAccepted).JSON(dto.NewSessionResponse(s.Form(), s.State()))
	}

	state, err := s.Wait(c.Context())
	if err != nil {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Code: "TIMEOUT", Message: "la espera del resultado fue cancelada",
		})
	}
	return c.JSON(dto.NewSessionResponse(s.Form(), state))
}

func noSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "NO_SESSION", Message: "sesión no inicializada",
	})
}
