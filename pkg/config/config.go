package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Pricing PricingConfig
	Session SessionConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PricingConfig ubicación del servicio de recomendación de precios.
// Se fija al arrancar y se inyecta en el cliente; no hay constante global.
type PricingConfig struct {
	BaseURL        string // ej. http://127.0.0.1:8000 (sin barra final)
	TimeoutSeconds int    // 0 = sin timeout propio del cliente
}

// Timeout devuelve el timeout como time.Duration.
func (c PricingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig cookie firmada que identifica la sesión del dashboard.
type SessionConfig struct {
	Secret      string // vacío = se genera uno aleatorio por proceso
	TTLMinutes  int
	CookieName  string
	MaxSessions int // tope de sesiones vivas; al superarlo se descarta la menos reciente
}

// TTL devuelve la inactividad máxima de una sesión.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, PRICING_API_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "optimal-price"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Pricing: PricingConfig{
			BaseURL:        strings.TrimRight(getString(v, "PRICING_API_URL", "http://127.0.0.1:8000"), "/"),
			TimeoutSeconds: getInt(v, "PRICING_TIMEOUT_SECONDS", 0),
		},
		Session: SessionConfig{
			Secret:      getString(v, "SESSION_SECRET", ""),
			TTLMinutes:  getInt(v, "SESSION_TTL_MINUTES", 120),
			CookieName:  getString(v, "SESSION_COOKIE", "op_session"),
			MaxSessions: getInt(v, "SESSION_MAX", 10000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	}
	return cfg, nil
}

// Validate comprueba los valores que impedirían arrancar.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Pricing.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: PRICING_API_URL inválida: %q", c.Pricing.BaseURL)
	}
	if c.Pricing.TimeoutSeconds < 0 {
		return fmt.Errorf("config: PRICING_TIMEOUT_SECONDS no puede ser negativo")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("config: HTTP_PORT fuera de rango: %d", c.HTTP.Port)
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("config: SESSION_MAX debe ser mayor que cero: %d", c.Session.MaxSessions)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("config: SESSION_COOKIE vacío")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
