package dto

import (
	"github.com/jhoicas/optimal-price/internal/application/form"
	"github.com/jhoicas/optimal-price/internal/application/view"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// FieldEditRequest cuerpo de PATCH /api/session/form.
// Value llega como texto, igual que desde un control del formulario.
type FieldEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// FieldEditResponse formulario tras la edición. Accepted=false indica que el valor
// no se pudo interpretar y se conservó el anterior.
type FieldEditResponse struct {
	Form     entity.PricingInput `json:"form"`
	Accepted bool                `json:"accepted"`
}

// RequestStateDTO variante activa del ciclo de petición.
type RequestStateDTO struct {
	Status string                `json:"status"` // idle | pending | resolved | failed
	Input  *entity.PricingInput  `json:"input,omitempty"`
	Result *entity.PricingResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// SessionResponse respuesta de GET /api/session y POST /api/session/submit.
type SessionResponse struct {
	Form  entity.PricingInput `json:"form"`
	State RequestStateDTO     `json:"state"`
	View  view.ResultView     `json:"view"`
}

// NewRequestStateDTO convierte el estado de dominio.
func NewRequestStateDTO(s entity.RequestState) RequestStateDTO {
	return RequestStateDTO{
		Status: string(s.Status),
		Input:  s.Input,
		Result: s.Result,
		Error:  s.Message,
	}
}

// NewSessionResponse arma la respuesta completa de una sesión.
func NewSessionResponse(f form.State, s entity.RequestState) SessionResponse {
	return SessionResponse{
		Form:  f.ToRequest(),
		State: NewRequestStateDTO(s),
		View:  view.Render(s),
	}
}
