package entity

import "github.com/shopspring/decimal"

// CartLine línea del carrito: copia del producto más cantidad. Clave = id del producto.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// GetID implementa la clave de la colección (id del producto).
func (l CartLine) GetID() string { return l.Product.ID }

// Subtotal price × quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart snapshot persistido del carrito con sus totales derivados.
type Cart struct {
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// Validate rechaza líneas sin producto, cantidades menores a 1, precios negativos y duplicados.
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c.Items))
	for _, l := range c.Items {
		if err := requireText("items.product.id", l.Product.ID); err != nil {
			return err
		}
		if l.Quantity < 1 {
			return invalid("items.quantity", "debe ser al menos 1")
		}
		if l.Product.Price.IsNegative() {
			return invalid("items.product.price", "no puede ser negativo")
		}
		if _, dup := seen[l.Product.ID]; dup {
			return invalid("items", "producto repetido: "+l.Product.ID)
		}
		seen[l.Product.ID] = struct{}{}
	}
	return nil
}
