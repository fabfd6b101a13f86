// Package pricingapi implementa ports.PricingService contra el servicio HTTP de
// recomendación de precios (POST {base}/predict-price).
package pricingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa PricingService.
var _ ports.PricingService = (*Client)(nil)

const (
	predictPath      = "/predict-price"
	maxResponseBytes = 64 * 1024
)

// resultSchemaJSON forma mínima que debe cumplir la respuesta antes de pasar a Resolved.
// Solo se validan presencia y tipos; los valores se aceptan tal como los envía el servicio.
const resultSchemaJSON = `{
  "type": "object",
  "required": ["recommended_price", "predicted_demand", "pricing_strategy"],
  "properties": {
    "recommended_price": {"type": "number"},
    "predicted_demand":  {"type": "number"},
    "pricing_strategy":  {"type": "string"}
  }
}`

var resultSchema = mustSchema(resultSchemaJSON)

// Client adaptador HTTP del servicio de recomendación.
// La URL base se inyecta en el constructor; no hay estado global.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el adaptador. timeout = 0 deja la petición sin límite propio
// (se aplica el del transporte o el del contexto del llamador).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL devuelve la URL base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// PredictPrice serializa la entrada, la envía y valida la forma de la respuesta.
// Cualquier estado distinto de 2xx es un fallo, sin importar el cuerpo.
func (c *Client) PredictPrice(ctx context.Context, in entity.PricingInput) (*entity.PricingResult, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("pricing api: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pricing api: %w: crear HTTP request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("pricing api: %w: timeout o cancelación: %w", domain.ErrTransport, ctx.Err())
		}
		return nil, fmt.Errorf("pricing api: %w: llamada HTTP fallida: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("pricing api: %w: leer respuesta: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("pricing api: %w: HTTP %d", domain.ErrServiceStatus, resp.StatusCode)
	}

	return decodeResult(rawBody)
}

// Ping consulta GET {base}/ para saber si el servicio responde.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("pricing api: %w: crear HTTP request: %w", domain.ErrTransport, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pricing api: %w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pricing api: %w: HTTP %d", domain.ErrServiceStatus, resp.StatusCode)
	}
	return nil
}

// decodeResult valida el cuerpo contra resultSchema y lo convierte en PricingResult.
func decodeResult(raw []byte) (*entity.PricingResult, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("pricing api: %w: JSON inválido: %v", domain.ErrMalformedResponse, err)
	}

	result, err := resultSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("pricing api: %w: validar esquema: %v", domain.ErrMalformedResponse, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("pricing api: %w: %s", domain.ErrMalformedResponse, strings.Join(errs, "; "))
	}

	var out entity.PricingResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("pricing api: %w: %v", domain.ErrMalformedResponse, err)
	}
	return &out, nil
}

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic("pricing api: esquema de respuesta inválido: " + err.Error())
	}
	return s
}
