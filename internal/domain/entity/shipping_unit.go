package entity

import "github.com/shopspring/decimal"

// ShippingUnit método de envío ofrecido en el checkout.
type ShippingUnit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Price         decimal.Decimal `json:"price"`
	EstimatedDays string          `json:"estimatedDays,omitempty"`
	Active        bool            `json:"active"`
}

// GetID implementa la clave de la colección.
func (s ShippingUnit) GetID() string { return s.ID }

// Validate comprueba campos obligatorios y precio no negativo.
func (s ShippingUnit) Validate() error {
	if err := requireText("id", s.ID); err != nil {
		return err
	}
	if err := requireText("name", s.Name); err != nil {
		return err
	}
	if err := requireText("code", s.Code); err != nil {
		return err
	}
	if s.Price.IsNegative() {
		return invalid("price", "no puede ser negativo")
	}
	return nil
}

// ShippingUnitPatch actualización parcial.
type ShippingUnitPatch struct {
	Name          *string          `json:"name,omitempty"`
	Code          *string          `json:"code,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	EstimatedDays *string          `json:"estimatedDays,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// Apply mezcla el patch sobre s.
func (p ShippingUnitPatch) Apply(s ShippingUnit) ShippingUnit {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Code != nil {
		s.Code = *p.Code
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.EstimatedDays != nil {
		s.EstimatedDays = *p.EstimatedDays
	}
	if p.Active != nil {
		s.Active = *p.Active
	}
	return s
}
