package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrParentNotFound     = errors.New("categoría padre no encontrada")
	ErrConflict           = errors.New("el nombre ya existe para este usuario")
	ErrInvalidState       = errors.New("no se puede activar mientras el padre está inactivo")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrUserAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)
