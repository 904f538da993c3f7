package entity

import "github.com/shopspring/decimal"

// DashboardStats contadores del panel principal.
type DashboardStats struct {
	TotalUsers       int             `json:"totalUsers"`
	ActiveUsers      int             `json:"activeUsers"`
	TotalProducts    int             `json:"totalProducts"`
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	LowStockProducts int             `json:"lowStockProducts"`
	PendingOrders    int             `json:"pendingOrders"`
}
