package domain

import "errors"

// Errores de dominio (sin dependencias externas). Las capas superiores los
// envuelven con fmt.Errorf("...: %w", err) para nombrar la entidad afectada.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrCreditLimitExceeded = errors.New("límite de crédito excedido")
	ErrConflict            = errors.New("conflicto de concurrencia")
)
