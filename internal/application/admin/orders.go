package admin

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ─── Pedidos ─────────────────────────────────────────────────────────────────

// UpdateOrderStatus cambia el estado del pedido id.
func (s *Store) UpdateOrderStatus(actorID, id string, status entity.OrderStatus) (entity.Order, error) {
	var out entity.Order
	err := s.guarded(actorID, entity.ResourceOrders, entity.ActionEdit, func(entity.User) error {
		if !status.Valid() {
			return fmt.Errorf("%w: status %q desconocido", domain.ErrValidationFailed, status)
		}
		var err error
		out, err = s.orders.ToggleField(id, func(o entity.Order) entity.Order {
			o.Status = status
			return o
		})
		return err
	})
	return out, err
}

// DeleteOrder elimina el pedido id. Es idempotente.
func (s *Store) DeleteOrder(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceOrders, entity.ActionDelete, func(entity.User) error {
		s.orders.Remove(id)
		return nil
	})
}

// PlaceOrder crea un pedido pendiente a partir del carrito del cliente userID. Las líneas
// copian nombre y precio del carrito, así cambios de precio posteriores no alteran el total.
// Descuenta stock, suma a sold y acumula totalSpent del cliente.
func (s *Store) PlaceOrder(userID string, cart entity.Cart) (entity.Order, error) {
	var out entity.Order
	err := s.unguarded(entity.ResourceOrders, entity.ActionCreate, func() error {
		customer, ok := s.users.Get(userID)
		if !ok {
			return notFound("users", userID)
		}
		if customer.Status != entity.StatusActive {
			return fmt.Errorf("%w: el cliente %s está inactivo", domain.ErrValidationFailed, userID)
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: el carrito está vacío", domain.ErrValidationFailed)
		}
		if err := cart.Validate(); err != nil {
			return err
		}

		lines := make([]entity.OrderLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			live, ok := s.products.Get(item.Product.ID)
			if !ok {
				return notFound("products", item.Product.ID)
			}
			if live.Stock < item.Quantity {
				return fmt.Errorf("%w: stock insuficiente para %s (%d disponibles)", domain.ErrValidationFailed, live.Code, live.Stock)
			}
			lines = append(lines, entity.OrderLine{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				Quantity: item.Quantity,
				Price:    item.Product.Price,
			})
		}

		order := entity.Order{
			ID:        s.nextOrderID(),
			UserID:    customer.ID,
			UserName:  customer.Name,
			Products:  lines,
			Total:     entity.LinesTotal(lines),
			Status:    entity.OrderPending,
			CreatedAt: s.now(),
		}
		if err := order.Validate(); err != nil {
			return err
		}
		if err := s.orders.Add(order); err != nil {
			return err
		}
		for _, l := range lines {
			qty := l.Quantity
			if _, err := s.products.ToggleField(l.ID, func(p entity.Product) entity.Product {
				p.Stock -= qty
				p.Sold += qty
				return p
			}); err != nil {
				return err
			}
		}
		if _, err := s.users.ToggleField(customer.ID, func(u entity.User) entity.User {
			spent := decimal.Zero
			if u.TotalSpent != nil {
				spent = *u.TotalSpent
			}
			spent = spent.Add(order.Total)
			u.TotalSpent = &spent
			return u
		}); err != nil {
			return err
		}
		out = order
		s.log.Info().Str("order", order.ID).Str("user", customer.ID).Str("total", order.Total.String()).Msg("pedido creado")
		return nil
	})
	return out, err
}

// nextOrderID continúa la numeración de los pedidos existentes (1001, 1002...).
func (s *Store) nextOrderID() string {
	highest := int64(1000)
	for id := range s.orders.Snapshot() {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.FormatInt(highest+1, 10)
}

// ─── Reseñas ─────────────────────────────────────────────────────────────────

// AddReview publica una reseña de cliente, que entra pendiente de moderación.
func (s *Store) AddReview(r entity.Review) (entity.Review, error) {
	err := s.unguarded(entity.ResourceReviews, entity.ActionCreate, func() error {
		if _, ok := s.products.Get(r.ProductID); !ok {
			return notFound("products", r.ProductID)
		}
		author, ok := s.users.Get(r.UserID)
		if !ok {
			return notFound("users", r.UserID)
		}
		r.ID = s.newID(r.ID)
		if r.UserName == "" {
			r.UserName = author.Name
		}
		if r.Status == "" {
			r.Status = entity.ReviewPending
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.now()
		}
		return addValidated(s.reviews, r)
	})
	return r, err
}

// SetReviewStatus modera la reseña id (publicar, ocultar o dejar pendiente).
func (s *Store) SetReviewStatus(actorID, id string, status entity.ReviewStatus) (entity.Review, error) {
	var out entity.Review
	err := s.guarded(actorID, entity.ResourceReviews, entity.ActionEdit, func(entity.User) error {
		if !status.Valid() {
			return fmt.Errorf("%w: status %q desconocido", domain.ErrValidationFailed, status)
		}
		var err error
		out, err = s.reviews.ToggleField(id, func(r entity.Review) entity.Review {
			r.Status = status
			return r
		})
		return err
	})
	return out, err
}

// DeleteReview elimina la reseña id. Es idempotente.
func (s *Store) DeleteReview(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceReviews, entity.ActionDelete, func(entity.User) error {
		s.reviews.Remove(id)
		return nil
	})
}
