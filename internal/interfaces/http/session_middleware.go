package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optimal-price/internal/application/session"
	"github.com/jhoicas/optimal-price/pkg/jwt"
)

// LocalSession clave de c.Locals donde queda la sesión del dashboard.
const LocalSession = "session"

const sessionIssuer = "optimal-price"

// SessionConfig parámetros de la cookie de sesión.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

// SessionMiddleware resuelve la sesión a partir de la cookie firmada. Una cookie ausente,
// inválida o expirada, o una sesión ya destruida, abre una sesión nueva en Idle.
// La cookie se reemite en cada petición para renovar su expiración.
func SessionMiddleware(store *session.Store, cfg SessionConfig) fiber.Handler {
	ttlMinutes := int(cfg.TTL / time.Minute)
	if ttlMinutes <= 0 {
		ttlMinutes = 24 * 60
	}
	return func(c *fiber.Ctx) error {
		id := ""
		if raw := c.Cookies(cfg.CookieName); raw != "" {
			if sid, err := jwt.Parse(cfg.Secret, raw); err == nil {
				id = sid
			}
		}
		s, _ := store.GetOrCreate(id)

		token, err := jwt.Generate(cfg.Secret, s.ID, sessionIssuer, ttlMinutes)
		if err != nil {
			return err
		}
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(time.Duration(ttlMinutes) * time.Minute),
		})
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) *session.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
