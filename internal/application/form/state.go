// Package form mantiene los cinco campos editables del dashboard de precios.
//
// State es un valor inmutable: cada edición devuelve una nueva instantánea y deja
// intacta la anterior. Una edición que no se puede interpretar conserva el valor previo.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// Field nombre de un campo del formulario (coincide con la clave JSON del request).
type Field string

const (
	FieldCost            Field = "cost"
	FieldDemand          Field = "demand"
	FieldInventory       Field = "inventory"
	FieldCompetitorPrice Field = "competitor_price"
	FieldSeasonality     Field = "seasonality"
)

// Fields orden de presentación de los campos.
var Fields = []Field{FieldCost, FieldDemand, FieldInventory, FieldCompetitorPrice, FieldSeasonality}

// ParseField valida el nombre de un campo recibido desde la UI.
func ParseField(name string) (Field, error) {
	f := Field(strings.TrimSpace(name))
	for _, known := range Fields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
}

// State instantánea de los valores del formulario.
type State struct {
	input entity.PricingInput
}

// Default devuelve el ejemplo válido con el que arranca cada sesión.
func Default() State {
	return State{input: entity.PricingInput{
		Cost:            200,
		Demand:          120,
		Inventory:       50,
		CompetitorPrice: 280,
		Seasonality:     entity.PeakSeason,
	}}
}

// FromInput construye un State a partir de una entrada ya validada.
func FromInput(in entity.PricingInput) State {
	return State{input: in}
}

// Update interpreta raw según el tipo del campo y devuelve una nueva instantánea.
//
// Si el campo no existe devuelve ErrUnknownField. Si raw no es un número finito dentro
// del rango del campo devuelve el mismo State junto con un error ErrInvalidInput; el
// llamador puede ignorarlo porque el valor anterior se conserva.
func (s State) Update(name, raw string) (State, error) {
	field, err := ParseField(name)
	if err != nil {
		return s, err
	}
	next := s
	raw = strings.TrimSpace(raw)

	switch field {
	case FieldSeasonality:
		n, err := strconv.Atoi(raw)
		if err != nil || !entity.Seasonality(n).Valid() {
			return s, invalid(field, raw)
		}
		next.input.Seasonality = entity.Seasonality(n)
	case FieldInventory:
		v, ok := parseFinite(raw)
		if !ok || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
			return s, invalid(field, raw)
		}
		next.input.Inventory = int(v)
	case FieldCost, FieldCompetitorPrice:
		v, ok := parseFinite(raw)
		if !ok || v <= 0 {
			return s, invalid(field, raw)
		}
		if field == FieldCost {
			next.input.Cost = v
		} else {
			next.input.CompetitorPrice = v
		}
	case FieldDemand:
		v, ok := parseFinite(raw)
		if !ok || v < 0 {
			return s, invalid(field, raw)
		}
		next.input.Demand = v
	}
	return next, nil
}

// ApplyAll aplica varias ediciones en el orden de Fields. Los campos ausentes en values
// no se tocan. Devuelve la nueva instantánea y los campos cuyo valor fue rechazado.
func (s State) ApplyAll(values map[string]string) (State, []Field) {
	var rejected []Field
	next := s
	for _, f := range Fields {
		raw, ok := values[string(f)]
		if !ok {
			continue
		}
		updated, err := next.Update(string(f), raw)
		if err != nil {
			rejected = append(rejected, f)
			continue
		}
		next = updated
	}
	return next, rejected
}

// ToRequest devuelve la instantánea que se enviará al servicio.
func (s State) ToRequest() entity.PricingInput {
	return s.input
}

// Value devuelve el valor actual del campo como texto para el control de la UI.
func (s State) Value(f Field) string {
	switch f {
	case FieldCost:
		return formatFloat(s.input.Cost)
	case FieldDemand:
		return formatFloat(s.input.Demand)
	case FieldInventory:
		return strconv.Itoa(s.input.Inventory)
	case FieldCompetitorPrice:
		return formatFloat(s.input.CompetitorPrice)
	case FieldSeasonality:
		return strconv.Itoa(int(s.input.Seasonality))
	}
	return ""
}

// Values devuelve todos los campos como texto, indexados por nombre.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(Fields))
	for _, f := range Fields {
		out[string(f)] = s.Value(f)
	}
	return out
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func invalid(f Field, raw string) error {
	return fmt.Errorf("%w: %s=%q", domain.ErrInvalidInput, f, raw)
}
