package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrNotDraft        = errors.New("la reubicación ya no está en borrador")
	ErrInvalidLocation = errors.New("ubicación inválida para reubicar")
	ErrInvalidProduct  = errors.New("producto inválido para reubicar")
	ErrInvalidOrigin   = errors.New("origen de movimiento no permitido")
)
