package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ShippingHandler transportistas y promociones.
type ShippingHandler struct {
	store *admin.Store
}

// NewShippingHandler construye el handler.
func NewShippingHandler(s *admin.Store) *ShippingHandler {
	return &ShippingHandler{store: s}
}

func (h *ShippingHandler) ListUnits(c *fiber.Ctx) error {
	return listQuery(h.store.QueryShippingUnits)(c)
}

func (h *ShippingHandler) QueryUnits(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryShippingUnits)(c)
}

func (h *ShippingHandler) GetUnit(c *fiber.Ctx) error {
	return getByID(h.store.ShippingUnits(), "transportista")(c)
}

func (h *ShippingHandler) CreateUnit(c *fiber.Ctx) error {
	var in entity.ShippingUnit
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddShippingUnit(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ShippingHandler) UpdateUnit(c *fiber.Ctx) error {
	var in entity.ShippingUnitPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateShippingUnit(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ShippingHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.store.DeleteShippingUnit(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ShippingHandler) ToggleUnit(c *fiber.Ctx) error {
	out, err := h.store.ToggleShippingUnit(GetPrincipalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ─── Promociones ─────────────────────────────────────────────────────────────

func (h *ShippingHandler) ListPromotions(c *fiber.Ctx) error {
	return listQuery(h.store.QueryPromotions)(c)
}

func (h *ShippingHandler) QueryPromotions(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryPromotions)(c)
}

func (h *ShippingHandler) GetPromotion(c *fiber.Ctx) error {
	return getByID(h.store.Promotions(), "promoción")(c)
}

func (h *ShippingHandler) CreatePromotion(c *fiber.Ctx) error {
	var in entity.Promotion
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddPromotion(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ShippingHandler) UpdatePromotion(c *fiber.Ctx) error {
	var in entity.PromotionPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdatePromotion(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *ShippingHandler) DeletePromotion(c *fiber.Ctx) error {
	if err := h.store.DeletePromotion(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ShippingHandler) TogglePromotion(c *fiber.Ctx) error {
	out, err := h.store.TogglePromotion(GetPrincipalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
