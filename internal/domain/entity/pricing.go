package entity

// Seasonality temporada comercial enviada al servicio de recomendación.
type Seasonality int

const (
	OffSeason  Seasonality = 0 // temporada baja
	PeakSeason Seasonality = 1 // temporada alta
)

// Valid indica si el valor corresponde a una de las dos temporadas conocidas.
func (s Seasonality) Valid() bool {
	return s == OffSeason || s == PeakSeason
}

// Label devuelve la etiqueta mostrada en el selector del formulario.
func (s Seasonality) Label() string {
	if s == PeakSeason {
		return "Peak Season"
	}
	return "Off-Season"
}

// PricingInput entradas de negocio para una recomendación de precio.
// Los tags json definen exactamente el cuerpo de POST /predict-price.
type PricingInput struct {
	Cost            float64     `json:"cost"`             // costo unitario (> 0)
	Demand          float64     `json:"demand"`           // demanda esperada (>= 0)
	Inventory       int         `json:"inventory"`        // unidades en stock (>= 0)
	CompetitorPrice float64     `json:"competitor_price"` // precio de la competencia (> 0)
	Seasonality     Seasonality `json:"seasonality"`      // 0 = baja, 1 = alta
}

// Strategy etiqueta de posicionamiento devuelta por el servicio.
// Se conserva el texto original; valores desconocidos se muestran como estándar.
type Strategy string

const (
	StrategyPremium  Strategy = "premium"
	StrategyDiscount Strategy = "discount"
	StrategyStandard Strategy = "standard"
)

// PricingResult recomendación devuelta por el servicio. El cliente no la recalcula.
type PricingResult struct {
	RecommendedPrice float64  `json:"recommended_price"`
	PredictedDemand  float64  `json:"predicted_demand"`
	PricingStrategy  Strategy `json:"pricing_strategy"`
}
