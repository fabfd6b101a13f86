// Package view proyecta el RequestState de una sesión en el contenido a mostrar.
// No guarda estado propio: el mismo estado produce siempre la misma vista.
package view

import (
	"fmt"
	"strings"

	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// Kind qué bloque muestra la tarjeta de resultados.
type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindBusy        Kind = "busy"
	KindError       Kind = "error"
	KindResult      Kind = "result"
)

// PlaceholderText mensaje de la tarjeta antes del primer envío.
const PlaceholderText = `Enter your parameters and click "Get Optimal Price" to see recommendations`

// ResultView contenido de la tarjeta "Pricing Recommendation".
type ResultView struct {
	Kind        Kind            `json:"kind"`
	Placeholder string          `json:"placeholder,omitempty"`
	Error       string          `json:"error,omitempty"`
	Result      *RenderedResult `json:"result,omitempty"`
}

// RenderedResult los tres campos de una recomendación ya formateados.
type RenderedResult struct {
	RecommendedPrice string `json:"recommended_price"` // "₹265.99"
	PredictedDemand  string `json:"predicted_demand"`  // "118 units"
	Strategy         string `json:"strategy"`          // "↑ PREMIUM"
	StrategyGlyph    string `json:"strategy_glyph"`
	StrategyName     string `json:"strategy_name"`
}

// Render construye la vista para el estado dado.
func Render(state entity.RequestState) ResultView {
	switch state.Status {
	case entity.StatusPending:
		return ResultView{Kind: KindBusy}
	case entity.StatusFailed:
		return ResultView{Kind: KindError, Error: state.Message}
	case entity.StatusResolved:
		if state.Result == nil {
			return ResultView{Kind: KindPlaceholder, Placeholder: PlaceholderText}
		}
		r := state.Result
		return ResultView{Kind: KindResult, Result: &RenderedResult{
			RecommendedPrice: FormatINR(r.RecommendedPrice),
			PredictedDemand:  FormatDemand(r.PredictedDemand),
			Strategy:         FormatStrategy(r.PricingStrategy),
			StrategyGlyph:    StrategyGlyph(r.PricingStrategy),
			StrategyName:     StrategyName(r.PricingStrategy),
		}}
	default:
		return ResultView{Kind: KindPlaceholder, Placeholder: PlaceholderText}
	}
}

// Text representación en texto plano (CLI y logs).
func (v ResultView) Text() string {
	switch v.Kind {
	case KindBusy:
		return "Calculating..."
	case KindError:
		return "! " + v.Error
	case KindResult:
		var b strings.Builder
		fmt.Fprintf(&b, "Recommended Price  %s\n", v.Result.RecommendedPrice)
		fmt.Fprintf(&b, "Predicted Demand   %s\n", v.Result.PredictedDemand)
		fmt.Fprintf(&b, "Pricing Strategy   %s", v.Result.Strategy)
		return b.String()
	default:
		return v.Placeholder
	}
}
