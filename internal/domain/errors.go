package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se envuelven con fmt.Errorf("%w: ...") y se comparan con errors.Is.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrDuplicateID      = errors.New("id duplicado")
	ErrDuplicateCode    = errors.New("código duplicado")
	ErrPermissionDenied = errors.New("permiso denegado")
	ErrValidationFailed = errors.New("validación fallida")
	ErrUnauthorized     = errors.New("no autorizado")
)
