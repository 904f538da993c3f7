package store

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// CartStore líneas del carrito indexadas por id de producto, con total e itemCount derivados.
// Tras cada mutación recalcula los totales y persiste el snapshot bajo CartKey.
type CartStore struct {
	mu        sync.Mutex
	lines     *EntityStore[entity.CartLine]
	total     decimal.Decimal
	itemCount int
	snapshots *Snapshots
	log       zerolog.Logger

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(entity.Cart)
}

// NewCartStore restaura el carrito desde snapshots (puede ser nil: carrito solo en memoria).
// Un snapshot ausente o inválido produce un carrito vacío.
func NewCartStore(snapshots *Snapshots, log zerolog.Logger) *CartStore {
	c := &CartStore{
		lines:     New[entity.CartLine]("cart", WithLogger[entity.CartLine](log)),
		total:     decimal.Zero,
		snapshots: snapshots,
		log:       log,
		subs:      map[int]func(entity.Cart){},
	}
	restored := Load(snapshots, CartKey, entity.Cart{}, func(cart entity.Cart) error { return cart.Validate() })
	if err := c.lines.ReplaceAll(restored.Items); err != nil {
		// Validate ya descarta duplicados; se deja el carrito vacío por si acaso.
		c.log.Warn().Err(err).Msg("carrito restaurado con líneas repetidas, se descarta")
	}
	c.recalculate()
	return c
}

// AddItem agrega una unidad de product: incrementa la línea existente o crea una con cantidad 1.
func (c *CartStore) AddItem(product entity.Product) error {
	if product.ID == "" {
		return fmt.Errorf("%w: product.id es obligatorio", domain.ErrValidationFailed)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: product.price no puede ser negativo", domain.ErrValidationFailed)
	}
	return c.mutate(func() (bool, error) {
		if _, ok := c.lines.Get(product.ID); ok {
			_, err := c.lines.ToggleField(product.ID, func(l entity.CartLine) entity.CartLine {
				l.Quantity++
				return l
			})
			return err == nil, err
		}
		err := c.lines.Add(entity.CartLine{Product: product, Quantity: 1})
		return err == nil, err
	})
}

// UpdateQuantity fija la cantidad absoluta de la línea. quantity <= 0 equivale a RemoveItem.
func (c *CartStore) UpdateQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	return c.mutate(func() (bool, error) {
		_, err := c.lines.ToggleField(productID, func(l entity.CartLine) entity.CartLine {
			l.Quantity = quantity
			return l
		})
		return err == nil, err
	})
}

// RemoveItem elimina la línea del producto. Es idempotente.
func (c *CartStore) RemoveItem(productID string) {
	_ = c.mutate(func() (bool, error) {
		return c.lines.Remove(productID), nil
	})
}

// Clear vacía el carrito.
func (c *CartStore) Clear() {
	_ = c.mutate(func() (bool, error) {
		return true, c.lines.ReplaceAll(nil)
	})
}

// mutate ejecuta fn bajo el lock; si hubo cambios recalcula, persiste y luego notifica
// fuera del lock para que los suscriptores puedan leer el carrito.
func (c *CartStore) mutate(fn func() (changed bool, err error)) error {
	c.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		c.mu.Unlock()
		return err
	}
	c.recalculate()
	cart := c.cart()
	SaveBestEffort(c.snapshots, CartKey, cart)
	c.mu.Unlock()

	c.publish(cart)
	return nil
}

// CalculateTotal recalcula total = Σ(price × quantity) e itemCount = Σ(quantity).
// Las mutaciones ya lo invocan; queda expuesto para quien quiera forzar el recálculo.
func (c *CartStore) CalculateTotal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recalculate()
}

func (c *CartStore) recalculate() {
	total := decimal.Zero
	count := 0
	for _, l := range c.lines.Snapshot() {
		total = total.Add(l.Subtotal())
		count += l.Quantity
	}
	c.total = total
	c.itemCount = count
}

// Snapshot devuelve las líneas (ordenadas por id de producto) y los totales actuales.
func (c *CartStore) Snapshot() entity.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart()
}

// Line devuelve la línea del producto si existe.
func (c *CartStore) Line(productID string) (entity.CartLine, bool) {
	return c.lines.Get(productID)
}

// Subscribe registra fn; se invoca con el carrito ya recalculado tras cada mutación.
func (c *CartStore) Subscribe(fn func(entity.Cart)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *CartStore) cart() entity.Cart {
	items := c.lines.List()
	if items == nil {
		items = []entity.CartLine{}
	}
	return entity.Cart{Items: items, Total: c.total, ItemCount: c.itemCount}
}

func (c *CartStore) publish(cart entity.Cart) {
	c.subMu.Lock()
	ids := slices.Sorted(maps.Keys(c.subs))
	listeners := make([]func(entity.Cart), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, c.subs[id])
	}
	c.subMu.Unlock()
	for _, fn := range listeners {
		fn(cart)
	}
}
