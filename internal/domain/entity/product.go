package entity

import (
	"github.com/shopspring/decimal"
)

// LowStockThreshold stock por debajo del cual un producto cuenta como bajo en inventario.
const LowStockThreshold = 10

// Product representa un producto del catálogo. Category es el nombre visible;
// CategoryID la referencia usada para el conteo por categoría.
type Product struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Sold        int             `json:"sold,omitempty"`
}

// GetID implementa la clave de la colección.
func (p Product) GetID() string { return p.ID }

// Validate comprueba price >= 0, stock >= 0 y campos obligatorios.
func (p Product) Validate() error {
	if err := requireText("id", p.ID); err != nil {
		return err
	}
	if err := requireText("code", p.Code); err != nil {
		return err
	}
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return invalid("price", "no puede ser negativo")
	}
	if p.Stock < 0 {
		return invalid("stock", "no puede ser negativo")
	}
	if p.Sold < 0 {
		return invalid("sold", "no puede ser negativo")
	}
	return nil
}

// ProductPatch actualización parcial. Un CategoryID vacío desvincula el producto.
type ProductPatch struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"description,omitempty"`
	Sold        *int             `json:"sold,omitempty"`
}

// Apply mezcla el patch sobre p.
func (pt ProductPatch) Apply(p Product) Product {
	if pt.Code != nil {
		p.Code = *pt.Code
	}
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Category != nil {
		p.Category = *pt.Category
	}
	if pt.CategoryID != nil {
		p.CategoryID = *pt.CategoryID
	}
	if pt.Stock != nil {
		p.Stock = *pt.Stock
	}
	if pt.Image != nil {
		p.Image = *pt.Image
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Sold != nil {
		p.Sold = *pt.Sold
	}
	return p
}
