package pricingapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
	"github.com/jhoicas/optimal-price/internal/infrastructure/pricingapi"
)

func sample() entity.PricingInput {
	return entity.PricingInput{Cost: 200, Demand: 120, Inventory: 50, CompetitorPrice: 280, Seasonality: entity.PeakSeason}
}

// respond arma un servidor que contesta siempre con status y body.
func respond(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type captured struct {
	method string
	path   string
	ctype  string
	body   map[string]interface{}
}

func TestPredictPrice_EnviaElContratoExacto(t *testing.T) {
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := captured{method: r.Method, path: r.URL.Path, ctype: r.Header.Get("Content-Type")}
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		seen <- got
		_, _ = io.WriteString(w, `{"recommended_price":265.99,"predicted_demand":118.4,"pricing_strategy":"premium"}`)
	}))
	defer srv.Close()

	c := pricingapi.NewClient(srv.URL+"/", 0)
	res, err := c.PredictPrice(context.Background(), sample())
	require.NoError(t, err)

	got := <-seen
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/predict-price", got.path, "la barra final de la URL base no se duplica")
	assert.Equal(t, "application/json", got.ctype)
	assert.Equal(t, map[string]interface{}{
		"cost":             200.0,
		"demand":           120.0,
		"inventory":        50.0,
		"competitor_price": 280.0,
		"seasonality":      1.0,
	}, got.body)

	assert.Equal(t, entity.PricingResult{RecommendedPrice: 265.99, PredictedDemand: 118.4, PricingStrategy: "premium"}, *res)
}

func TestPredictPrice_CamposExtraSeIgnoran(t *testing.T) {
	srv := respond(t, http.StatusOK, `{"recommended_price":10,"predicted_demand":2,"pricing_strategy":"surge","model":"v3"}`)

	res, err := pricingapi.NewClient(srv.URL, 0).PredictPrice(context.Background(), sample())
	require.NoError(t, err)
	assert.Equal(t, entity.Strategy("surge"), res.PricingStrategy, "la estrategia se conserva tal cual")
}

func TestPredictPrice_EstadoNo2xxEsFallo(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable} {
		srv := respond(t, status, `{"recommended_price":1,"predicted_demand":1,"pricing_strategy":"premium"}`)

		res, err := pricingapi.NewClient(srv.URL, 0).PredictPrice(context.Background(), sample())
		require.ErrorIs(t, err, domain.ErrServiceStatus, "HTTP %d", status)
		assert.Nil(t, res)
	}
}

func TestPredictPrice_RespuestaMalformada(t *testing.T) {
	bodies := map[string]string{
		"no es JSON":        `<html>oops</html>`,
		"null":              `null`,
		"arreglo":           `[1,2,3]`,
		"falta un campo":    `{"recommended_price":1,"predicted_demand":1}`,
		"precio como texto": `{"recommended_price":"1","predicted_demand":1,"pricing_strategy":"premium"}`,
		"estrategia número": `{"recommended_price":1,"predicted_demand":1,"pricing_strategy":3}`,
		"vacío":             ``,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := respond(t, http.StatusOK, body)

			res, err := pricingapi.NewClient(srv.URL, 0).PredictPrice(context.Background(), sample())
			require.ErrorIs(t, err, domain.ErrMalformedResponse)
			assert.Nil(t, res)
		})
	}
}

func TestPredictPrice_ServicioInalcanzable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := pricingapi.NewClient(url, 0).PredictPrice(context.Background(), sample())
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestPredictPrice_TimeoutEsErrorDeTransporte(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := pricingapi.NewClient(srv.URL, 30*time.Millisecond).PredictPrice(context.Background(), sample())
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestPing(t *testing.T) {
	up := respond(t, http.StatusOK, `{"status":"ok"}`)
	require.NoError(t, pricingapi.NewClient(up.URL, time.Second).Ping(context.Background()))

	down := respond(t, http.StatusBadGateway, ``)
	require.ErrorIs(t, pricingapi.NewClient(down.URL, time.Second).Ping(context.Background()), domain.ErrServiceStatus)
}
