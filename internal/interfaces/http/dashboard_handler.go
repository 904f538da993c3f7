package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
)

const topProductsDefault = 5

// DashboardHandler maneja GET /api/admin/dashboard.
type DashboardHandler struct {
	store *admin.Store
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(s *admin.Store) *DashboardHandler {
	return &DashboardHandler{store: s}
}

// Summary contadores del panel más los productos más vendidos (?top=N, por defecto 5).
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	stats, err := h.store.Stats(GetPrincipalID(c))
	if err != nil {
		return writeError(c, err)
	}
	top := c.QueryInt("top", topProductsDefault)
	if top <= 0 {
		top = topProductsDefault
	}
	return c.JSON(dto.DashboardResponse{Stats: stats, TopProducts: h.store.TopProducts(top)})
}
