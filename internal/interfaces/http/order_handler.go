package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ReceiptRenderer genera el PDF de un pedido. Lo implementa *pdf.ReceiptGenerator.
type ReceiptRenderer interface {
	OrderReceipt(ctx context.Context, order entity.Order, customer *entity.User) ([]byte, error)
}

// OrderHandler pedidos y reseñas del panel.
type OrderHandler struct {
	store    *admin.Store
	receipts ReceiptRenderer
}

// NewOrderHandler construye el handler. receipts puede ser nil: el recibo responde 501.
func NewOrderHandler(s *admin.Store, receipts ReceiptRenderer) *OrderHandler {
	return &OrderHandler{store: s, receipts: receipts}
}

// ─── Pedidos ─────────────────────────────────────────────────────────────────

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	return listQuery(h.store.QueryOrders)(c)
}

func (h *OrderHandler) QueryOrders(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryOrders)(c)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	return getByID(h.store.Orders(), "pedido")(c)
}

// UpdateStatus PATCH /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.OrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateOrderStatus(GetPrincipalID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	if err := h.store.DeleteOrder(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt GET /api/admin/orders/:id/receipt.pdf
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "recibos deshabilitados"})
	}
	order, ok := h.store.Orders().Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	var customer *entity.User
	if u, ok := h.store.Users().Get(order.UserID); ok {
		customer = &u
	}
	data, err := h.receipts.OrderReceipt(c.UserContext(), order, customer)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+order.ID+`.pdf"`)
	return c.Send(data)
}

// ─── Reseñas ─────────────────────────────────────────────────────────────────

func (h *OrderHandler) ListReviews(c *fiber.Ctx) error {
	return listQuery(h.store.QueryReviews)(c)
}

func (h *OrderHandler) QueryReviews(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryReviews)(c)
}

// ModerateReview PATCH /api/admin/reviews/:id/status
func (h *OrderHandler) ModerateReview(c *fiber.Ctx) error {
	var in dto.ReviewStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.SetReviewStatus(GetPrincipalID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *OrderHandler) DeleteReview(c *fiber.Ctx) error {
	if err := h.store.DeleteReview(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
