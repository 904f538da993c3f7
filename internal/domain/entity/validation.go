package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-admin/internal/domain"
)

// invalid construye un error de validación para el campo indicado.
func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrValidationFailed, field, reason)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "es obligatorio")
	}
	return nil
}

// NormalizeCode normaliza códigos de negocio (envío, promociones): sin espacios y en mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
