package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// Locale fija de presentación: inglés de India con rupias.
var displayLocale = language.MustParse("en-IN")

const (
	rupeeSymbol = "₹"
	unitSuffix  = " units"
)

// Glifos direccionales de la estrategia.
const (
	GlyphUp      = "↑"
	GlyphDown    = "↓"
	GlyphNeutral = "→"
)

// FormatINR formatea un monto en rupias con dos decimales fijos y la agrupación de
// en-IN (1,23,45,678.90). FormatINR(1234.5) == "₹1,234.50".
func FormatINR(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	amount, _ := d.Float64()
	p := message.NewPrinter(displayLocale)
	return sign + rupeeSymbol + p.Sprint(number.Decimal(amount, number.Scale(2)))
}

// FormatDemand redondea la demanda a unidades enteras: 118.4 → "118 units".
func FormatDemand(v float64) string {
	return decimal.NewFromFloat(v).Round(0).StringFixed(0) + unitSuffix
}

// StrategyGlyph ↑ para premium, ↓ para discount y → para cualquier otro valor.
func StrategyGlyph(s entity.Strategy) string {
	switch s {
	case entity.StrategyPremium:
		return GlyphUp
	case entity.StrategyDiscount:
		return GlyphDown
	default:
		return GlyphNeutral
	}
}

// StrategyName nombre de la estrategia en mayúsculas.
func StrategyName(s entity.Strategy) string {
	return cases.Upper(displayLocale).String(string(s))
}

// FormatStrategy glifo + nombre: "premium" → "↑ PREMIUM".
func FormatStrategy(s entity.Strategy) string {
	return StrategyGlyph(s) + " " + StrategyName(s)
}
