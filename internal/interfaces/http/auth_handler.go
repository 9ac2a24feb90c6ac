package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/auth"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	val *validation.Validator
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, val *validation.Validator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, val: val, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, confirm_password"
// @Success      200   {object}  dto.Envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindJSON(c, &in); err != nil {
		return failFromError(c, h.log, err)
	}
	if err := h.val.Validate(&in); err != nil {
		return failFromError(c, h.log, err)
	}
	if _, err := h.uc.RegisterUser(c.UserContext(), in); err != nil {
		return failFromError(c, h.log, err)
	}
	return ok(c, MsgUserRegistered, nil)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope{data=dto.LoginResponse}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, &in); err != nil {
		return failFromError(c, h.log, err)
	}
	if err := h.val.Validate(&in); err != nil {
		return failFromError(c, h.log, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return failFromError(c, h.log, err)
	}
	return ok(c, MsgLoggedIn, out)
}
