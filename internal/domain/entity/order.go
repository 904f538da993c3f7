package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid informa si el estado pertenece al ciclo de vida conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// OrderLine copia del producto al momento de la compra (no es una referencia viva).
type OrderLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal quantity × price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order pedido de un cliente. Total se fija al crear y no se recalcula con precios vivos.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Products  []OrderLine     `json:"products"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// GetID implementa la clave de la colección.
func (o Order) GetID() string { return o.ID }

// Clone copia el pedido con sus propias líneas.
func (o Order) Clone() Order {
	if o.Products != nil {
		o.Products = append([]OrderLine(nil), o.Products...)
	}
	return o
}

// LinesTotal suma quantity × price de las líneas embebidas.
func LinesTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Validate comprueba líneas, estado y que Total coincida con la suma de las líneas.
func (o Order) Validate() error {
	if err := requireText("id", o.ID); err != nil {
		return err
	}
	if err := requireText("userId", o.UserID); err != nil {
		return err
	}
	if len(o.Products) == 0 {
		return invalid("products", "el pedido no tiene líneas")
	}
	for _, l := range o.Products {
		if l.Quantity < 1 {
			return invalid("products.quantity", "debe ser al menos 1")
		}
		if l.Price.IsNegative() {
			return invalid("products.price", "no puede ser negativo")
		}
	}
	if !o.Total.Equal(LinesTotal(o.Products)) {
		return invalid("total", "no coincide con la suma de las líneas")
	}
	if !o.Status.Valid() {
		return invalid("status", "estado desconocido")
	}
	return nil
}
