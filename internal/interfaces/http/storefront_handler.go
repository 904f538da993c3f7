package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// StorefrontHandler acciones del cliente: carrito, checkout y reseñas.
type StorefrontHandler struct {
	store *admin.Store
	cart  *store.CartStore
}

// NewStorefrontHandler construye el handler.
func NewStorefrontHandler(s *admin.Store, cart *store.CartStore) *StorefrontHandler {
	return &StorefrontHandler{store: s, cart: cart}
}

// Cart GET /api/cart
func (h *StorefrontHandler) Cart(c *fiber.Ctx) error {
	return c.JSON(h.cart.Snapshot())
}

// AddItem POST /api/cart/items. Copia el producto vivo al carrito.
func (h *StorefrontHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, ok := h.store.Products().Get(in.ProductID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	if err := h.cart.AddItem(product); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.cart.Snapshot())
}

// UpdateItem PATCH /api/cart/items/:productId
func (h *StorefrontHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.cart.UpdateQuantity(c.Params("productId"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.cart.Snapshot())
}

// RemoveItem DELETE /api/cart/items/:productId
func (h *StorefrontHandler) RemoveItem(c *fiber.Ctx) error {
	h.cart.RemoveItem(c.Params("productId"))
	return c.JSON(h.cart.Snapshot())
}

// ClearCart DELETE /api/cart
func (h *StorefrontHandler) ClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.JSON(h.cart.Snapshot())
}

// Checkout POST /api/cart/checkout. Crea el pedido del cliente autenticado y vacía el carrito.
func (h *StorefrontHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.store.PlaceOrder(GetPrincipalID(c), h.cart.Snapshot())
	if err != nil {
		return writeError(c, err)
	}
	h.cart.Clear()
	return c.Status(fiber.StatusCreated).JSON(order)
}

// AddReview POST /api/products/:id/reviews
func (h *StorefrontHandler) AddReview(c *fiber.Ctx) error {
	var in dto.ReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddReview(entity.Review{
		ProductID: c.Params("id"),
		UserID:    GetPrincipalID(c),
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
