package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/optimal-price/internal/application/ports"
	"github.com/jhoicas/optimal-price/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	Sessions *session.Store
	Session  SessionConfig
	Reports  ports.ReportGenerator
	Probe    PricingProbe
	Gatherer prometheus.Gatherer // nil = no se expone /metrics
	Log      zerolog.Logger
}

// Router registra las rutas del dashboard y de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	// Público, sin sesión
	healthHandler := NewHealthHandler(deps.AppName, deps.Probe)
	app.Get("/health", healthHandler.Check)
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Todo lo demás trabaja sobre la sesión de la cookie
	withSession := SessionMiddleware(deps.Sessions, deps.Session)

	// Página HTML
	dashboardHandler := NewDashboardHandler(deps.Log)
	app.Get("/", withSession, dashboardHandler.Page)
	app.Post("/form", withSession, dashboardHandler.EditForm)
	app.Post("/submit", withSession, dashboardHandler.Submit)

	// API JSON
	api := app.Group("/api/session", withSession)
	sessionHandler := NewSessionHandler()
	api.Get("/", sessionHandler.Get)
	api.Patch("/form", sessionHandler.EditField)
	api.Post("/submit", sessionHandler.Submit)

	reportHandler := NewReportHandler(deps.Reports)
	api.Get("/report.pdf", reportHandler.Download)
}
