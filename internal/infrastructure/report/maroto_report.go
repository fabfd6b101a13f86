// Package report genera el PDF descargable de la recomendación vigente de una sesión.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Optimal Price            │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARÁMETROS: costo / demanda / inventario / competencia /   │
//	│              temporada                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECOMENDACIÓN: precio / demanda prevista / estrategia      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/application/view"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

var _ ports.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateRecommendationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateRecommendationPDF(
	_ context.Context,
	in entity.PricingInput,
	res entity.PricingResult,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Pricing Recommendation", true).
		WithAuthor("Optimal Price", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("INPUT PARAMETERS"))
	for _, r := range inputRows(in) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(sectionTitle("PRICING RECOMMENDATION"))
	for _, r := range resultRows(res) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("report: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Optimal Price", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New("Dynamic Pricing Strategy Dashboard", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3,
		}),
	))
}

func inputRows(in entity.PricingInput) []core.Row {
	return []core.Row{
		pairRow("Cost Price", pdfMoney(in.Cost)),
		pairRow("Expected Demand", strconv.FormatFloat(in.Demand, 'f', -1, 64)),
		pairRow("Inventory Level", strconv.Itoa(in.Inventory)),
		pairRow("Competitor Price", pdfMoney(in.CompetitorPrice)),
		pairRow("Seasonality", in.Seasonality.Label()),
	}
}

func resultRows(res entity.PricingResult) []core.Row {
	return []core.Row{
		pairRow("Recommended Price", pdfMoney(res.RecommendedPrice)),
		pairRow("Predicted Demand", view.FormatDemand(res.PredictedDemand)),
		pairRow("Pricing Strategy", view.StrategyName(res.PricingStrategy)+" ("+direction(res.PricingStrategy)+")"),
	}
}

func pairRow(label, value string) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(label, props.Text{Size: 9, Color: colorGray, Top: 1})),
		col.New(7).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Recommendation produced by the ML-based pricing service. "+
				"Values are reported as returned by the service.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// pdfMoney usa "INR" en lugar de "₹": las fuentes base del PDF no incluyen el símbolo.
func pdfMoney(v float64) string {
	return strings.Replace(view.FormatINR(v), "₹", "INR ", 1)
}

func direction(s entity.Strategy) string {
	switch view.StrategyGlyph(s) {
	case view.GlyphUp:
		return "up"
	case view.GlyphDown:
		return "down"
	default:
		return "steady"
	}
}
