package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/internal/domain/entity"
	"github.com/jhoicas/categorias-api/internal/domain/repository"
	"github.com/jhoicas/categorias-api/pkg/jwt"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// Locals keys para UserID y Email en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

var (
	errNoToken      = fmt.Errorf("%w: sin token", domain.ErrUnauthorized)
	errInvalidToken = fmt.Errorf("%w: token inválido", domain.ErrUnauthorized)
)

// AuthMiddleware valida el Bearer Token JWT, confirma que el usuario sigue existiendo
// y carga UserID y Email en c.Locals. Las fallas de credencial responden 403; si el
// store no responde se trata como error interno.
func AuthMiddleware(jwtSecret string, users repository.UserRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authenticate(c, jwtSecret, users)
		switch {
		case errors.Is(err, errNoToken):
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(MsgNoToken))
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail(MsgInvalidToken))
		case err != nil:
			return failFromError(c, log, err)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, jwtSecret string, users repository.UserRepository) (*entity.User, error) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, errNoToken
	}
	userID, _, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errInvalidToken
	}
	user, err := users.FindByID(c.UserContext(), userID)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario del token %s: %w", userID, err)
	}
	if user == nil {
		return nil, errInvalidToken
	}
	return user, nil
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
