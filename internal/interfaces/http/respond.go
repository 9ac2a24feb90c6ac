package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	"github.com/jhoicas/categorias-api/internal/domain"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// Mensajes de la API (en inglés, son parte del contrato con los clientes).
const (
	MsgCategoryCreated    = "Category created successfully"
	MsgCategoriesFound    = "Categories found successfully"
	MsgCategoryUpdated    = "Category updated successfully"
	MsgCategoryCascaded   = "Category updated successfully and children status changed successfully"
	MsgCategoryDeleted    = "Category deleted and children reassigned"
	MsgNoCategory         = "No category found."
	MsgParentNotFound     = "Parent category not found."
	MsgDuplicateName      = "Name already exist. please use different name."
	MsgParentInactive     = "This category can't be activated while its parent category is inactive."
	MsgUserRegistered     = "User registered successfully"
	MsgUserExists         = "User already exists"
	MsgLoggedIn           = "Logged in successfully"
	MsgInvalidCredentials = "Invalid credentials"
	MsgNoToken            = "No token provided."
	MsgInvalidToken       = "Invalid token."
	MsgInvalidBody        = "The request body must be a valid JSON object."
	MsgInternal           = "Uh-oh! Something went wrong. Please try again later."
)

// ok responde HTTP 200 con status 1.
func ok(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.Success(message, data))
}

// fail responde HTTP 200 con status 0: los resultados de negocio no usan el código HTTP.
func fail(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(dto.Fail(message))
}

// failFromError traduce errores de dominio y validación a su mensaje.
// Lo no clasificado se registra y se responde con el mensaje genérico.
func failFromError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return fail(c, verr.Message)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, MsgNoCategory)
	case errors.Is(err, domain.ErrParentNotFound):
		return fail(c, MsgParentNotFound)
	case errors.Is(err, domain.ErrConflict):
		return fail(c, MsgDuplicateName)
	case errors.Is(err, domain.ErrInvalidState):
		return fail(c, MsgParentInactive)
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return fail(c, MsgUserExists)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, MsgInvalidCredentials)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, MsgInvalidBody)
	}
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("owner", GetUserID(c)).
		Str("email", GetEmail(c)).
		Msg("error interno")
	return fail(c, MsgInternal)
}

// bindJSON decodifica el cuerpo en dst. Un cuerpo vacío cuenta como objeto vacío
// para que la validación reporte el primer campo obligatorio.
func bindJSON(c *fiber.Ctx, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field := strings.ReplaceAll(typeErr.Field, "_", " ")
			return &validation.Error{
				Field:   typeErr.Field,
				Rule:    "type",
				Message: fmt.Sprintf("The %s must be a %s.", field, kindName(typeErr.Type)),
			}
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func kindName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "valid value"
	}
}
