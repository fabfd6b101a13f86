package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnknownField      = errors.New("campo desconocido")
	ErrRequestInFlight   = errors.New("ya hay una petición en curso")
	ErrTransport         = errors.New("servicio de precios inalcanzable")
	ErrServiceStatus     = errors.New("el servicio de precios respondió con error")
	ErrMalformedResponse = errors.New("respuesta del servicio de precios mal formada")
	ErrSessionNotFound   = errors.New("sesión no encontrada")
	ErrNoResult          = errors.New("no hay recomendación disponible")
)
