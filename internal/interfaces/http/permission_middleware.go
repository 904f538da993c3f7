package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// permissionChecker es el contrato mínimo que necesita el middleware. Lo implementa *admin.Store.
type permissionChecker interface {
	Can(actorID string, resource entity.Resource, action entity.Action) bool
}

// RequirePermission verifica contra el store vivo que el principal del token pueda ejecutar
// action sobre resource. Debe usarse DESPUÉS de AuthMiddleware.
//
// Se usa en las lecturas: las mutaciones ya pasan por el guard dentro del store.
//   - 401 si no hay principal en el contexto.
//   - 403 si el principal no existe, está inactivo o no tiene el permiso.
func RequirePermission(checker permissionChecker, resource entity.Resource, action entity.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principalID := GetPrincipalID(c)
		if principalID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "principal no encontrado en el token",
			})
		}
		if !checker.Can(principalID, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso " + string(resource) + "." + string(action),
			})
		}
		return c.Next()
	}
}
