package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/domain"
)

// writeError traduce los errores de dominio a status HTTP con cuerpo dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrDuplicateCode):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrPermissionDenied):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrValidationFailed):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
