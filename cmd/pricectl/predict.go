package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/optimal-price/internal/application/dto"
	"github.com/jhoicas/optimal-price/internal/application/form"
	"github.com/jhoicas/optimal-price/internal/application/pricing"
	"github.com/jhoicas/optimal-price/internal/application/view"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
	"github.com/jhoicas/optimal-price/internal/infrastructure/pricingapi"
	"github.com/jhoicas/optimal-price/pkg/logger"
)

// flagFields relaciona cada flag con el campo del formulario que edita.
var flagFields = []struct {
	flag  string
	field form.Field
	usage string
}{
	{"cost", form.FieldCost, "costo unitario"},
	{"demand", form.FieldDemand, "demanda esperada"},
	{"inventory", form.FieldInventory, "unidades en inventario"},
	{"competitor-price", form.FieldCompetitorPrice, "precio de la competencia"},
	{"seasonality", form.FieldSeasonality, "0 = temporada baja, 1 = temporada alta"},
}

// predictOptions parámetros ya leídos de la línea de comandos.
type predictOptions struct {
	APIURL  string
	Timeout time.Duration
	Output  string            // text | json
	Edits   map[string]string // campo → texto crudo, solo los flags indicados
}

func predictCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Usage:   "URL base del servicio de recomendación",
			EnvVars: []string{"PRICING_API_URL"},
			Value:   "http://127.0.0.1:8000",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "límite de la petición (0 = sin límite)",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "formato de salida: text o json",
			Value: "text",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "nivel de log en stderr",
			Value: "warn",
		},
	}
	for _, ff := range flagFields {
		flags = append(flags, &cli.StringFlag{Name: ff.flag, Usage: ff.usage})
	}

	return &cli.Command{
		Name:  "predict",
		Usage: "solicita una recomendación (los campos omitidos usan el ejemplo por defecto)",
		Flags: flags,
		Action: func(c *cli.Context) error {
			opts := predictOptions{
				APIURL:  c.String("api-url"),
				Timeout: c.Duration("timeout"),
				Output:  c.String("output"),
				Edits:   make(map[string]string),
			}
			for _, ff := range flagFields {
				if c.IsSet(ff.flag) {
					opts.Edits[string(ff.field)] = c.String(ff.flag)
				}
			}
			log := logger.New(logger.Config{Env: "development", Level: c.String("log-level"), Out: os.Stderr})

			state, err := runPredict(c.Context, opts, c.App.Writer, log)
			if err != nil {
				return err
			}
			if state.Status == entity.StatusFailed {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// runPredict aplica las ediciones sobre el formulario por defecto, envía una petición,
// espera el estado terminal y lo imprime en out.
func runPredict(ctx context.Context, opts predictOptions, out io.Writer, log *logger.Logger) (entity.RequestState, error) {
	if opts.Output != "text" && opts.Output != "json" {
		return entity.RequestState{}, fmt.Errorf("formato de salida desconocido: %q", opts.Output)
	}

	f := form.Default()
	for _, ff := range flagFields {
		raw, ok := opts.Edits[string(ff.field)]
		if !ok {
			continue
		}
		next, err := f.Update(string(ff.field), raw)
		if errors.Is(err, domain.ErrInvalidInput) {
			log.Warn().Str("field", ff.flag).Str("value", raw).Msg("valor no válido, se conserva " + f.Value(ff.field))
		}
		f = next
	}

	client := pricingapi.NewClient(opts.APIURL, opts.Timeout)
	coord := pricing.NewCoordinator(client,
		pricing.WithLogger(log.Component("coordinator")),
		pricing.WithTimeout(opts.Timeout),
	)
	defer coord.Close()

	done, err := coord.Submit(f.ToRequest())
	if err != nil {
		return entity.RequestState{}, err
	}

	var final entity.RequestState
	select {
	case final = <-done:
	case <-ctx.Done():
		return coord.State(), ctx.Err()
	}

	if opts.Output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return final, enc.Encode(dto.NewSessionResponse(f, final))
	}
	_, err = fmt.Fprintln(out, view.Render(final).Text())
	return final, err
}
