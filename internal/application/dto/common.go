package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse respuesta de GET /health.
type HealthResponse struct {
	Status              string `json:"status"`
	Service             string `json:"service"`
	PricingAPI          string `json:"pricing_api"`
	PricingAPIReachable *bool  `json:"pricing_api_reachable,omitempty"` // solo con ?deep=true
}
