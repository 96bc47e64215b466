package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente en el almacén")
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")

	// ErrBrigadierStockInsufficient la reserva del brigadier no cubre el consumo (o aún no existe).
	ErrBrigadierStockInsufficient = errors.New("stock insuficiente en su reserva: solicite primero el producto al almacén")

	ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
)
