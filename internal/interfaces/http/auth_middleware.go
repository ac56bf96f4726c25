package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/reservas-canchas/internal/application/dto"
	"github.com/jhoicas/reservas-canchas/internal/application/session"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID  = "user_id"
	LocalRole    = "role"
	LocalSession = "session"
)

// SessionLoader carga la sesión del servidor referida por el claim sid. Lo implementa *session.Manager.
type SessionLoader interface {
	Load(ctx context.Context, id string) (*session.Session, error)
}

// AuthMiddleware valida el Bearer Token JWT, carga la sesión y deja UserID, Role y Session en c.Locals.
// Un token cuya sesión fue cerrada (logout o re-login) se rechaza con SESSION_CLOSED.
func AuthMiddleware(jwtSecret string, sessions SessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, sid, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		s, err := sessions.Load(c.UserContext(), sid)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_CLOSED", Message: "la sesión fue cerrada, inicie sesión nuevamente"})
			}
			log.Error().Err(err).Str("session_id", sid).Msg("cargar sesión")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SESSION_UNAVAILABLE", Message: "no se pudo verificar la sesión, intente más tarde"})
		}
		if !s.IsAuthenticated() || s.User.ID != userID {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setSession(c, s)
		return c.Next()
	}
}

// OptionalAuth carga la sesión si el request trae un token válido con sesión activa; si no,
// continúa sin sesión. Lo usan login (para reemplazar la sesión actual) y logout.
func OptionalAuth(jwtSecret string, sessions SessionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get("Authorization"))
		if !ok || tokenString == "" {
			return c.Next()
		}
		userID, sid, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Next()
		}
		s, err := sessions.Load(c.UserContext(), sid)
		if err != nil || !s.IsAuthenticated() || s.User.ID != userID {
			return c.Next()
		}
		setSession(c, s)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setSession(c *fiber.Ctx, s *session.Session) {
	c.Locals(LocalUserID, s.User.ID)
	c.Locals(LocalRole, s.User.Role)
	c.Locals(LocalSession, s)
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del usuario de la sesión.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetSession devuelve la sesión del contexto, o nil si el request no trae una activa.
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}

// actor copia del usuario autenticado; vacía sin sesión.
func actor(c *fiber.Ctx) entity.AuthenticatedUser {
	if s := GetSession(c); s != nil {
		return s.User
	}
	return entity.AuthenticatedUser{}
}
