package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrConstraintViolation = errors.New("violación de restricción en el almacén")
	ErrTransactionFailed   = errors.New("la transacción falló y fue revertida")
	ErrAlreadyReceived     = errors.New("la orden de compra ya fue recibida")
	ErrRestockInProgress   = errors.New("otra corrida de reposición tiene el lock")
)
