package services

import "errors"

// Common service errors
var (
	ErrNotFound        = errors.New("registro no encontrado")
	ErrInvalidPassword = errors.New("contraseña inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrInvalidState    = errors.New("transición de estado inválida")
	ErrDuplicate       = errors.New("registro duplicado")
	ErrDuplicatePeriod = errors.New("el miembro ya tiene un pago registrado para ese período")
	ErrMemberInactive  = errors.New("el miembro no está activo")
	ErrFeeClosed       = errors.New("la cuota extraordinaria no admite más pagos")
	ErrInvalidAmount   = errors.New("monto inválido")
	ErrInvalidImage    = errors.New("formato de imagen no soportado (solo JPG/PNG)")
	ErrInvalidRecovery = errors.New("código de recuperación inválido o expirado")
)
