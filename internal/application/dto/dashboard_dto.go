package dto

import "github.com/jhoicas/storefront-admin/internal/domain/entity"

// DashboardResponse respuesta de GET /api/dashboard: contadores y más vendidos.
type DashboardResponse struct {
	Stats       entity.DashboardStats `json:"stats"`
	TopProducts []entity.Product      `json:"topProducts"`
}
