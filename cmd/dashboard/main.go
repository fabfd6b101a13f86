package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/jhoicas/optimal-price/docs"
	"github.com/jhoicas/optimal-price/internal/application/pricing"
	"github.com/jhoicas/optimal-price/internal/application/session"
	"github.com/jhoicas/optimal-price/internal/infrastructure/metrics"
	"github.com/jhoicas/optimal-price/internal/infrastructure/pricingapi"
	"github.com/jhoicas/optimal-price/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/optimal-price/internal/interfaces/http"
	"github.com/jhoicas/optimal-price/pkg/config"
	"github.com/jhoicas/optimal-price/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("pricing_api", cfg.Pricing.BaseURL).
		Msg("iniciando aplicación")

	// Servicio de recomendación: la URL base se inyecta aquí y en ningún otro sitio.
	pricingClient := pricingapi.NewClient(cfg.Pricing.BaseURL, cfg.Pricing.Timeout())

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	coordLog := log.Component("coordinator")

	// Cada sesión recibe su propio coordinador; comparten solo el cliente HTTP.
	sessions := session.NewStore(func() *pricing.Coordinator {
		return pricing.NewCoordinator(pricingClient,
			pricing.WithLogger(coordLog),
			pricing.WithRecorder(recorder),
			pricing.WithTimeout(cfg.Pricing.Timeout()),
		)
	}, cfg.Session.TTL(),
		session.WithObserver(recorder),
		session.WithCapacity(uint64(cfg.Session.MaxSessions)),
	)
	go sessions.Start()
	log.Debug().
		Dur("ttl", cfg.Session.TTL()).
		Int("max_sessions", cfg.Session.MaxSessions).
		Msg("registro de sesiones listo")

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Optimal Price API",
	}))

	sessionCfg := httpRouter.SessionConfig{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL(),
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		Sessions: sessions,
		Session:  sessionCfg,
		Reports:  report.NewMarotoReportGenerator(),
		Probe:    pricingClient,
		Gatherer: prometheus.DefaultGatherer,
		Log:      log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sessions.Close()

	log.Info().Msg("aplicación detenida")
}
