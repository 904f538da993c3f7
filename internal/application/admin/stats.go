package admin

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// Stats contadores del dashboard. Requiere orders.view.
func (s *Store) Stats(actorID string) (entity.DashboardStats, error) {
	actor, err := s.Principal(actorID)
	if err != nil {
		return entity.DashboardStats{}, err
	}
	if err := s.guard.Require(actor, entity.ResourceOrders, entity.ActionView); err != nil {
		return entity.DashboardStats{}, err
	}
	return computeStats(s.users.Snapshot(), s.products.Snapshot(), s.orders.Snapshot()), nil
}

func computeStats(users map[string]entity.User, products map[string]entity.Product, orders map[string]entity.Order) entity.DashboardStats {
	st := entity.DashboardStats{
		TotalUsers:    len(users),
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
	}
	for _, u := range users {
		if u.Status == entity.StatusActive {
			st.ActiveUsers++
		}
	}
	for _, p := range products {
		if p.Stock < entity.LowStockThreshold {
			st.LowStockProducts++
		}
	}
	for _, o := range orders {
		st.TotalRevenue = st.TotalRevenue.Add(o.Total)
		if o.Status == entity.OrderPending {
			st.PendingOrders++
		}
	}
	return st
}

// TopProducts los n productos más vendidos (sold descendente, id como desempate).
func (s *Store) TopProducts(n int) []entity.Product {
	all := s.products.List()
	slices.SortStableFunc(all, func(a, b entity.Product) int { return b.Sold - a.Sold })
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
