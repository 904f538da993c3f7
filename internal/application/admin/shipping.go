package admin

import (
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ─── Unidades de envío ───────────────────────────────────────────────────────

func (s *Store) shippingCodeUnique() func(entity.ShippingUnit) error {
	return uniqueKey(s.shipping, "shipping", "code", func(u entity.ShippingUnit) string { return u.Code })
}

// AddShippingUnit agrega una unidad de envío. Code se normaliza a mayúsculas y es único.
func (s *Store) AddShippingUnit(actorID string, u entity.ShippingUnit) (entity.ShippingUnit, error) {
	err := s.guarded(actorID, entity.ResourceShipping, entity.ActionCreate, func(entity.User) error {
		u.ID = s.newID(u.ID)
		u.Code = entity.NormalizeCode(u.Code)
		return addValidated(s.shipping, u, s.shippingCodeUnique())
	})
	return u, err
}

// UpdateShippingUnit mezcla patch sobre la unidad id.
func (s *Store) UpdateShippingUnit(actorID, id string, patch entity.ShippingUnitPatch) (entity.ShippingUnit, error) {
	var out entity.ShippingUnit
	err := s.guarded(actorID, entity.ResourceShipping, entity.ActionEdit, func(entity.User) error {
		apply := func(u entity.ShippingUnit) entity.ShippingUnit {
			u = patch.Apply(u)
			u.Code = entity.NormalizeCode(u.Code)
			return u
		}
		var err error
		out, err = updateValidated(s.shipping, "shipping", id, apply, s.shippingCodeUnique())
		return err
	})
	return out, err
}

// DeleteShippingUnit elimina la unidad id. Es idempotente.
func (s *Store) DeleteShippingUnit(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceShipping, entity.ActionDelete, func(entity.User) error {
		s.shipping.Remove(id)
		return nil
	})
}

// ToggleShippingUnit activa o desactiva la unidad id.
func (s *Store) ToggleShippingUnit(actorID, id string) (entity.ShippingUnit, error) {
	var out entity.ShippingUnit
	err := s.guarded(actorID, entity.ResourceShipping, entity.ActionEdit, func(entity.User) error {
		var err error
		out, err = s.shipping.ToggleField(id, func(u entity.ShippingUnit) entity.ShippingUnit {
			u.Active = !u.Active
			return u
		})
		return err
	})
	return out, err
}

// ─── Promociones (resource products) ─────────────────────────────────────────

func (s *Store) promotionCodeUnique() func(entity.Promotion) error {
	return uniqueKey(s.promotions, "promotions", "code", func(p entity.Promotion) string { return p.Code })
}

// AddPromotion agrega una promoción. Code se normaliza a mayúsculas y es único.
func (s *Store) AddPromotion(actorID string, p entity.Promotion) (entity.Promotion, error) {
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionCreate, func(entity.User) error {
		now := s.now()
		p.ID = s.newID(p.ID)
		p.Code = entity.NormalizeCode(p.Code)
		p.UsedCount = 0
		p.CreatedAt, p.UpdatedAt = now, now
		if p.Scope == "" {
			p.Scope = entity.ScopeGlobal
		}
		if p.ScopeIDs == nil {
			p.ScopeIDs = []string{}
		}
		return addValidated(s.promotions, p, s.promotionCodeUnique())
	})
	return p, err
}

// UpdatePromotion mezcla patch sobre la promoción id y renueva UpdatedAt.
func (s *Store) UpdatePromotion(actorID, id string, patch entity.PromotionPatch) (entity.Promotion, error) {
	var out entity.Promotion
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionEdit, func(entity.User) error {
		now := s.now()
		apply := func(p entity.Promotion) entity.Promotion {
			p = patch.Apply(p)
			p.Code = entity.NormalizeCode(p.Code)
			p.UpdatedAt = now
			return p
		}
		var err error
		out, err = updateValidated(s.promotions, "promotions", id, apply, s.promotionCodeUnique())
		return err
	})
	return out, err
}

// DeletePromotion elimina la promoción id. Es idempotente.
func (s *Store) DeletePromotion(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceProducts, entity.ActionDelete, func(entity.User) error {
		s.promotions.Remove(id)
		return nil
	})
}

// TogglePromotion activa o desactiva la promoción id.
func (s *Store) TogglePromotion(actorID, id string) (entity.Promotion, error) {
	var out entity.Promotion
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionEdit, func(entity.User) error {
		now := s.now()
		var err error
		out, err = s.promotions.ToggleField(id, func(p entity.Promotion) entity.Promotion {
			p.Active = !p.Active
			p.UpdatedAt = now
			return p
		})
		return err
	})
	return out, err
}
