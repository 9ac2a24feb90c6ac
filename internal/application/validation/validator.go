package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/categorias-api/internal/domain"
)

// Error primera regla incumplida de una entrada. Unwrap devuelve domain.ErrInvalidInput.
type Error struct {
	Field   string // nombre JSON del campo
	Rule    string // tag de la regla (required, email, min, ...)
	Message string // mensaje legible para el cliente
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Validator evalúa las reglas declaradas en los tags `validate` de los DTO.
// Por cada campo las reglas se evalúan en orden y se reporta solo la primera que falla.
type Validator struct {
	v *validator.Validate
}

// New construye el validador reportando los campos por su nombre JSON.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{v: v}
}

// Validate devuelve nil si s cumple sus reglas o un *Error con la primera falla.
func (val *Validator) Validate(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validar entrada: %w", err)
	}
	fe := verrs[0]
	return &Error{Field: fe.Field(), Rule: fe.Tag(), Message: message(s, fe)}
}

func message(s any, fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is mandatory.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters long.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s can not be greater than %s characters.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s and %s must match.", field, humanize(structFieldJSONName(s, fe.Param())))
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "uuid":
		return fmt.Sprintf("The %s must be a valid id.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// structFieldJSONName traduce el nombre Go de un campo (parámetro de eqfield) a su nombre JSON.
func structFieldJSONName(s any, goName string) string {
	t := reflect.TypeOf(s)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return goName
	}
	f, ok := t.FieldByName(goName)
	if !ok {
		return goName
	}
	return jsonName(f)
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
