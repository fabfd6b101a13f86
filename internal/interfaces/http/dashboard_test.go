package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/optimal-price/internal/application/dto"
	"github.com/jhoicas/optimal-price/internal/application/pricing"
	"github.com/jhoicas/optimal-price/internal/application/session"
	"github.com/jhoicas/optimal-price/internal/domain"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
	"github.com/jhoicas/optimal-price/internal/infrastructure/metrics"
	"github.com/jhoicas/optimal-price/internal/infrastructure/report"
	apphttp "github.com/jhoicas/optimal-price/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCookie = "op_session_test"

// stubPricing devuelve siempre la misma recomendación. Con gate != nil cada llamada
// espera un valor antes de responder.
type stubPricing struct {
	mu   sync.Mutex
	gate chan struct{}
	fail bool
	last entity.PricingInput
}

func (s *stubPricing) PredictPrice(ctx context.Context, in entity.PricingInput) (*entity.PricingResult, error) {
	s.mu.Lock()
	s.last = in
	gate, fail := s.gate, s.fail
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, domain.ErrTransport
		}
	}
	if fail {
		return nil, errors.Join(domain.ErrTransport, errors.New("connection refused"))
	}
	return &entity.PricingResult{RecommendedPrice: 265.99, PredictedDemand: 118.4, PricingStrategy: "premium"}, nil
}

func (s *stubPricing) Last() entity.PricingInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type stubProbe struct{ err error }

func (p stubProbe) Ping(context.Context) error { return p.err }
func (p stubProbe) BaseURL() string            { return "http://pricing.test" }

type testApp struct {
	app   *fiber.App
	svc   *stubPricing
	store *session.Store
}

func buildTestApp(t *testing.T, svc *stubPricing, probe apphttp.PricingProbe, opts ...session.StoreOption) *testApp {
	t.Helper()
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	store := session.NewStore(func() *pricing.Coordinator {
		return pricing.NewCoordinator(svc, pricing.WithRecorder(rec))
	}, time.Hour, append([]session.StoreOption{session.WithObserver(rec)}, opts...)...)
	t.Cleanup(store.Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:  "optimal-price-test",
		Sessions: store,
		Session:  apphttp.SessionConfig{Secret: "test-secret", CookieName: testCookie, TTL: time.Hour},
		Reports:  report.NewMarotoReportGenerator(),
		Probe:    probe,
		Gatherer: reg,
		Log:      zerolog.Nop(),
	})
	return &testApp{app: app, svc: svc, store: store}
}

// do ejecuta la petición reenviando la cookie de sesión y devuelve la respuesta.
func (ta *testApp) do(t *testing.T, req *http.Request, cookie *http.Cookie) *http.Response {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// openSession abre una sesión con GET / y devuelve su cookie.
func (ta *testApp) openSession(t *testing.T) *http.Cookie {
	t.Helper()
	resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatal("la respuesta no emitió la cookie de sesión")
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Página HTML
// ──────────────────────────────────────────────────────────────────────────────

func TestPage_SesionNuevaMuestraElPlaceholder(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)

	resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

	body := readBody(t, resp)
	assert.Contains(t, body, "Get Optimal Price")
	assert.Contains(t, body, "to see recommendations")
	assert.Contains(t, body, `value="200"`, "valores por defecto en el formulario")
	assert.NotContains(t, body, `http-equiv="refresh"`)
}

func TestPage_MismaCookieMismaSesion(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)

	cookie := ta.openSession(t)
	ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie)

	assert.Equal(t, 1, ta.store.Len())
}

func TestPage_CookieAjenaAbreOtraSesion(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)

	ta.openSession(t)
	ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil), &http.Cookie{Name: testCookie, Value: "forjada"})

	assert.Equal(t, 2, ta.store.Len())
}

func TestPage_PeticionesSinCookieRespetanElTopeDeSesiones(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil, session.WithCapacity(20))

	for i := 0; i < 200; i++ {
		resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/session/", nil), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 20, ta.store.Len())
}

func TestSubmitForm_AplicaEdicionesYRedirige(t *testing.T) {
	svc := &stubPricing{gate: make(chan struct{})}
	ta := buildTestApp(t, svc, nil)
	cookie := ta.openSession(t)

	form := url.Values{"cost": {"300"}, "demand": {"x"}, "seasonality": {"0"}}
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp := ta.do(t, req, cookie)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	page := readBody(t, ta.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie))
	assert.Contains(t, page, `http-equiv="refresh"`, "la página se recarga mientras está Pending")
	assert.Contains(t, page, `class="submit-btn" disabled`)

	svc.gate <- struct{}{}
	st := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/session/", nil), cookie)
	got := decode[dto.SessionResponse](t, st)
	assert.Equal(t, 300.0, got.Form.Cost)
	assert.Equal(t, 120.0, got.Form.Demand, "el valor inválido conserva el anterior")
	assert.Equal(t, entity.OffSeason, got.Form.Seasonality)
	assert.Equal(t, 300.0, svc.Last().Cost, "la petición se envió con la instantánea editada")
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestAPISubmit_EsperaElResultado(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)
	cookie := ta.openSession(t)

	resp := ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit?wait=true", nil), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, "resolved", got.State.Status)
	require.NotNil(t, got.View.Result)
	assert.Equal(t, "₹265.99", got.View.Result.RecommendedPrice)
	assert.Equal(t, "118 units", got.View.Result.PredictedDemand)
	assert.Equal(t, "↑ PREMIUM", got.View.Result.Strategy)
}

func TestAPISubmit_FalloMuestraElMensajeGenerico(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{fail: true}, nil)
	cookie := ta.openSession(t)

	resp := ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit?wait=true", nil), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, "failed", got.State.Status)
	assert.Equal(t, pricing.UnreachableMessage, got.View.Error)
	assert.Nil(t, got.State.Result)
}

func TestAPISubmit_EnVueloDevuelve409(t *testing.T) {
	svc := &stubPricing{gate: make(chan struct{})}
	ta := buildTestApp(t, svc, nil)
	cookie := ta.openSession(t)

	first := ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit", nil), cookie)
	require.Equal(t, http.StatusAccepted, first.StatusCode)
	assert.Equal(t, "pending", decode[dto.SessionResponse](t, first).State.Status)

	second := ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit", nil), cookie)
	require.Equal(t, http.StatusConflict, second.StatusCode)
	assert.Equal(t, "IN_FLIGHT", decode[dto.ErrorResponse](t, second).Code)

	svc.gate <- struct{}{}
}

func TestAPIEditField(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)
	cookie := ta.openSession(t)

	patch := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPatch, "/api/session/form", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return ta.do(t, req, cookie)
	}

	resp := patch(`{"field":"inventory","value":"75"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ok := decode[dto.FieldEditResponse](t, resp)
	assert.True(t, ok.Accepted)
	assert.Equal(t, 75, ok.Form.Inventory)

	resp = patch(`{"field":"inventory","value":"abc"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	kept := decode[dto.FieldEditResponse](t, resp)
	assert.False(t, kept.Accepted)
	assert.Equal(t, 75, kept.Form.Inventory, "se conserva el valor anterior")

	resp = patch(`{"field":"margin","value":"1"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_FIELD", decode[dto.ErrorResponse](t, resp).Code)
}

func TestReport_SinResultadoDevuelve409(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)
	cookie := ta.openSession(t)

	resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/session/report.pdf", nil), cookie)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NO_RESULT", decode[dto.ErrorResponse](t, resp).Code)
}

func TestReport_DescargaElPDF(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)
	cookie := ta.openSession(t)
	ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit?wait=true", nil), cookie)

	resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/api/session/report.pdf", nil), cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, stubProbe{err: domain.ErrTransport})

	resp := ta.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shallow := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", shallow.Status)
	assert.Equal(t, "http://pricing.test", shallow.PricingAPI)
	assert.Nil(t, shallow.PricingAPIReachable)

	resp = ta.do(t, httptest.NewRequest(http.MethodGet, "/health?deep=true", nil), nil)
	deep := decode[dto.HealthResponse](t, resp)
	require.NotNil(t, deep.PricingAPIReachable)
	assert.False(t, *deep.PricingAPIReachable)
	assert.Zero(t, ta.store.Len(), "/health no abre sesiones")
}

func TestMetrics_ExponeLosColectores(t *testing.T) {
	ta := buildTestApp(t, &stubPricing{}, nil)
	cookie := ta.openSession(t)
	ta.do(t, httptest.NewRequest(http.MethodPost, "/api/session/submit?wait=true", nil), cookie)

	body := readBody(t, ta.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil), nil))
	assert.Contains(t, body, "optimal_price_sessions_active 1")
	assert.Contains(t, body, `optimal_price_submissions_total{outcome="resolved"} 1`)
}
