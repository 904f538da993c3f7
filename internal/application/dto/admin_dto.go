package dto

import "github.com/jhoicas/storefront-admin/internal/domain/entity"

// SetPermissionsRequest reemplaza el mapa de permisos de un admin.
type SetPermissionsRequest struct {
	Permissions entity.Permissions `json:"permissions"`
}

// OrderStatusRequest nuevo estado de un pedido.
type OrderStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

// ReviewStatusRequest nuevo estado de moderación de una reseña.
type ReviewStatusRequest struct {
	Status entity.ReviewStatus `json:"status"`
}

// ImportResponse resultado de una importación de productos.
type ImportResponse struct {
	Imported int              `json:"imported"`
	Items    []entity.Product `json:"items"`
}
