package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// UserHandler clientes y administradores.
type UserHandler struct {
	store *admin.Store
}

// NewUserHandler construye el handler.
func NewUserHandler(s *admin.Store) *UserHandler {
	return &UserHandler{store: s}
}

// ─── Clientes ────────────────────────────────────────────────────────────────

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	return listQuery(h.store.QueryUsers)(c)
}

func (h *UserHandler) QueryUsers(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryUsers)(c)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	return getByID(h.store.Users(), "usuario")(c)
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var in entity.User
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddUser(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var in entity.UserPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateUser(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.store.DeleteUser(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) ToggleUser(c *fiber.Ctx) error {
	out, err := h.store.ToggleUserStatus(GetPrincipalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ─── Administradores ─────────────────────────────────────────────────────────

func (h *UserHandler) ListAdmins(c *fiber.Ctx) error {
	return listQuery(h.store.QueryAdmins)(c)
}

func (h *UserHandler) QueryAdmins(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryAdmins)(c)
}

func (h *UserHandler) GetAdmin(c *fiber.Ctx) error {
	return getByID(h.store.Admins(), "administrador")(c)
}

func (h *UserHandler) CreateAdmin(c *fiber.Ctx) error {
	var in entity.User
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddAdmin(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *UserHandler) UpdateAdmin(c *fiber.Ctx) error {
	var in entity.UserPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateAdmin(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetPermissions PUT /api/admin/admins/:id/permissions
func (h *UserHandler) SetPermissions(c *fiber.Ctx) error {
	var in dto.SetPermissionsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.SetAdminPermissions(GetPrincipalID(c), c.Params("id"), in.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *UserHandler) DeleteAdmin(c *fiber.Ctx) error {
	if err := h.store.DeleteAdmin(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) ToggleAdmin(c *fiber.Ctx) error {
	out, err := h.store.ToggleAdminStatus(GetPrincipalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
