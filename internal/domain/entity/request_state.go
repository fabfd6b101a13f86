package entity

// RequestStatus variante activa del ciclo de vida de una petición.
type RequestStatus string

const (
	StatusIdle     RequestStatus = "idle"
	StatusPending  RequestStatus = "pending"
	StatusResolved RequestStatus = "resolved"
	StatusFailed   RequestStatus = "failed"
)

// RequestState variante etiquetada: exactamente uno de Idle, Pending, Resolved(Result) o Failed(Message).
// Result solo está presente en Resolved y Message solo en Failed; se construye con los helpers.
type RequestState struct {
	Status  RequestStatus
	Result  *PricingResult
	Message string
	// Input es la instantánea enviada en el ciclo actual (nil en Idle).
	Input *PricingInput
}

// IdleState estado inicial de una sesión.
func IdleState() RequestState {
	return RequestState{Status: StatusIdle}
}

// PendingState petición en vuelo; no conserva resultado ni error previos.
func PendingState(in PricingInput) RequestState {
	return RequestState{Status: StatusPending, Input: &in}
}

// ResolvedState respuesta válida del servicio.
func ResolvedState(in PricingInput, res PricingResult) RequestState {
	return RequestState{Status: StatusResolved, Input: &in, Result: &res}
}

// FailedState fallo de red o de servicio con el mensaje para el usuario.
func FailedState(in PricingInput, msg string) RequestState {
	return RequestState{Status: StatusFailed, Input: &in, Message: msg}
}

// IsPending indica si hay una petición en vuelo.
func (s RequestState) IsPending() bool { return s.Status == StatusPending }
