package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoType tipo de descuento.
type PromoType string

const (
	PromoPercent PromoType = "percent"
	PromoFixed   PromoType = "fixed"
)

// PromoScope alcance del descuento.
type PromoScope string

const (
	ScopeGlobal   PromoScope = "global"
	ScopeCategory PromoScope = "category"
	ScopeProduct  PromoScope = "product"
)

// Promotion código de descuento. Code es único sin distinguir mayúsculas.
type Promotion struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	Type          PromoType        `json:"type"`
	Value         decimal.Decimal  `json:"value"` // porcentaje o monto
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	Active        bool             `json:"active"`
	Scope         PromoScope       `json:"scope"`
	ScopeIDs      []string         `json:"scopeIds"` // vacío si es global
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	UsedCount     int              `json:"usedCount,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// GetID implementa la clave de la colección.
func (p Promotion) GetID() string { return p.ID }

// Clone copia la promoción sin compartir ScopeIDs ni punteros.
func (p Promotion) Clone() Promotion {
	if p.ScopeIDs != nil {
		p.ScopeIDs = append([]string(nil), p.ScopeIDs...)
	}
	if p.MinOrderValue != nil {
		d := *p.MinOrderValue
		p.MinOrderValue = &d
	}
	if p.UsageLimit != nil {
		n := *p.UsageLimit
		p.UsageLimit = &n
	}
	return p
}

// Validate comprueba tipo, valor, fechas y alcance.
func (p Promotion) Validate() error {
	if err := requireText("id", p.ID); err != nil {
		return err
	}
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	if err := requireText("code", p.Code); err != nil {
		return err
	}
	switch p.Type {
	case PromoPercent:
		if p.Value.GreaterThan(decimal.NewFromInt(100)) {
			return invalid("value", "un porcentaje no puede superar 100")
		}
	case PromoFixed:
	default:
		return invalid("type", "debe ser percent o fixed")
	}
	if !p.Value.IsPositive() {
		return invalid("value", "debe ser mayor que 0")
	}
	if p.EndDate.Before(p.StartDate) {
		return invalid("endDate", "no puede ser anterior a startDate")
	}
	switch p.Scope {
	case ScopeGlobal:
		if len(p.ScopeIDs) > 0 {
			return invalid("scopeIds", "debe estar vacío en alcance global")
		}
	case ScopeCategory, ScopeProduct:
		if len(p.ScopeIDs) == 0 {
			return invalid("scopeIds", "requerido para alcance "+string(p.Scope))
		}
	default:
		return invalid("scope", "alcance desconocido")
	}
	if p.MinOrderValue != nil && p.MinOrderValue.IsNegative() {
		return invalid("minOrderValue", "no puede ser negativo")
	}
	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return invalid("usageLimit", "no puede ser negativo")
	}
	if p.UsedCount < 0 {
		return invalid("usedCount", "no puede ser negativo")
	}
	return nil
}

// PromotionPatch actualización parcial. ScopeIDs se reemplaza completo.
type PromotionPatch struct {
	Name          *string          `json:"name,omitempty"`
	Code          *string          `json:"code,omitempty"`
	Type          *PromoType       `json:"type,omitempty"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	StartDate     *time.Time       `json:"startDate,omitempty"`
	EndDate       *time.Time       `json:"endDate,omitempty"`
	Active        *bool            `json:"active,omitempty"`
	Scope         *PromoScope      `json:"scope,omitempty"`
	ScopeIDs      *[]string        `json:"scopeIds,omitempty"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
}

// Apply mezcla el patch sobre p.
func (pt PromotionPatch) Apply(p Promotion) Promotion {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Code != nil {
		p.Code = *pt.Code
	}
	if pt.Type != nil {
		p.Type = *pt.Type
	}
	if pt.Value != nil {
		p.Value = *pt.Value
	}
	if pt.StartDate != nil {
		p.StartDate = *pt.StartDate
	}
	if pt.EndDate != nil {
		p.EndDate = *pt.EndDate
	}
	if pt.Active != nil {
		p.Active = *pt.Active
	}
	if pt.Scope != nil {
		p.Scope = *pt.Scope
	}
	if pt.ScopeIDs != nil {
		p.ScopeIDs = append([]string(nil), (*pt.ScopeIDs)...)
	}
	if pt.MinOrderValue != nil {
		v := *pt.MinOrderValue
		p.MinOrderValue = &v
	}
	if pt.UsageLimit != nil {
		v := *pt.UsageLimit
		p.UsageLimit = &v
	}
	return p
}
