package admin

import (
	"github.com/jhoicas/storefront-admin/internal/application/query"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// Vistas de lista: cada una corre el pipeline de consulta sobre la colección actual.

func (s *Store) QueryUsers(q query.Query) ([]entity.User, error) {
	return query.RunIn(s.locale, s.users.List(), query.UserSchema, q)
}

func (s *Store) QueryAdmins(q query.Query) ([]entity.User, error) {
	return query.RunIn(s.locale, s.admins.List(), query.AdminSchema, q)
}

func (s *Store) QueryProducts(q query.Query) ([]entity.Product, error) {
	return query.RunIn(s.locale, s.products.List(), query.ProductSchema, q)
}

func (s *Store) QueryCategories(q query.Query) ([]entity.Category, error) {
	return query.RunIn(s.locale, s.categories.List(), query.CategorySchema, q)
}

func (s *Store) QueryOrders(q query.Query) ([]entity.Order, error) {
	return query.RunIn(s.locale, s.orders.List(), query.OrderSchema, q)
}

func (s *Store) QueryReviews(q query.Query) ([]entity.Review, error) {
	return query.RunIn(s.locale, s.reviews.List(), query.ReviewSchema, q)
}

func (s *Store) QueryShippingUnits(q query.Query) ([]entity.ShippingUnit, error) {
	return query.RunIn(s.locale, s.shipping.List(), query.ShippingSchema, q)
}

func (s *Store) QueryPromotions(q query.Query) ([]entity.Promotion, error) {
	return query.RunIn(s.locale, s.promotions.List(), query.PromotionSchema, q)
}
