package store_test

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/memory"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newCart(t *testing.T) (*store.CartStore, *memory.SnapshotRepo) {
	t.Helper()
	repo := memory.NewSnapshotRepository()
	return store.NewCartStore(store.NewSnapshots(repo, time.Second, zerolog.Nop()), zerolog.Nop()), repo
}

func prod(id string, price int64) entity.Product {
	return entity.Product{ID: id, Code: "C" + id, Name: "Producto " + id, Price: decimal.NewFromInt(price), Stock: 10}
}

func assertTotals(t *testing.T, cart entity.Cart) {
	t.Helper()
	total := decimal.Zero
	count := 0
	for _, l := range cart.Items {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	assert.True(t, total.Equal(cart.Total), "total %s, esperado %s", cart.Total, total)
	assert.Equal(t, count, cart.ItemCount)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_AddItemDosVecesFusiona(t *testing.T) {
	c, _ := newCart(t)
	p := prod("p1", 100)
	require.NoError(t, c.AddItem(p))
	require.NoError(t, c.AddItem(p))

	cart := c.Snapshot()
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, 2, cart.ItemCount)
}

func TestCart_UpdateQuantityACeroElimina(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.AddItem(prod("p1", 100)))

	require.NoError(t, c.UpdateQuantity("p1", 0))
	_, ok := c.Line("p1")
	assert.False(t, ok)
	assert.True(t, c.Snapshot().Total.IsZero())
}

func TestCart_UpdateQuantityAbsoluta(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.AddItem(prod("p1", 50)))
	require.NoError(t, c.UpdateQuantity("p1", 5))

	line, ok := c.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 5, c.Snapshot().ItemCount)

	assert.ErrorIs(t, c.UpdateQuantity("nope", 2), domain.ErrNotFound)
}

func TestCart_AddItemValida(t *testing.T) {
	c, _ := newCart(t)
	assert.ErrorIs(t, c.AddItem(entity.Product{}), domain.ErrValidationFailed)
	assert.ErrorIs(t, c.AddItem(prod("p1", -1)), domain.ErrValidationFailed)
	assert.Empty(t, c.Snapshot().Items)
}

func TestCart_RemoveYClear(t *testing.T) {
	c, _ := newCart(t)
	require.NoError(t, c.AddItem(prod("p1", 10)))
	require.NoError(t, c.AddItem(prod("p2", 20)))

	c.RemoveItem("p1")
	c.RemoveItem("p1")
	assert.Len(t, c.Snapshot().Items, 1)

	c.Clear()
	cart := c.Snapshot()
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.ItemCount)
}

// Para cualquier secuencia de operaciones el total y el conteo coinciden con las líneas.
func TestCart_TotalesEnSecuenciaAleatoria(t *testing.T) {
	c, _ := newCart(t)
	rng := rand.New(rand.NewSource(7))
	catalog := make([]entity.Product, 0, 6)
	for i := 0; i < 6; i++ {
		catalog = append(catalog, prod(strconv.Itoa(i), int64(rng.Intn(500)+1)))
	}

	for i := 0; i < 300; i++ {
		p := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(3) {
		case 0:
			require.NoError(t, c.AddItem(p))
		case 1:
			if _, ok := c.Line(p.ID); ok {
				require.NoError(t, c.UpdateQuantity(p.ID, rng.Intn(5)))
			}
		default:
			c.RemoveItem(p.ID)
		}
		assertTotals(t, c.Snapshot())
	}
}

func TestCart_SuscriptorRecibeTotalesActualizados(t *testing.T) {
	c, _ := newCart(t)
	var last entity.Cart
	c.Subscribe(func(cart entity.Cart) {
		last = cart
		// leer el carrito desde el suscriptor no bloquea
		_ = c.Snapshot()
	})

	require.NoError(t, c.AddItem(prod("p1", 30)))
	assert.True(t, last.Total.Equal(decimal.NewFromInt(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_RoundTripPorSnapshot(t *testing.T) {
	c, repo := newCart(t)
	require.NoError(t, c.AddItem(prod("p1", 100)))
	require.NoError(t, c.AddItem(prod("p2", 250)))
	require.NoError(t, c.UpdateQuantity("p2", 3))
	want := c.Snapshot()

	restored := store.NewCartStore(store.NewSnapshots(repo, time.Second, zerolog.Nop()), zerolog.Nop())
	got := restored.Snapshot()
	require.Len(t, got.Items, 2)
	for i := range want.Items {
		assert.Equal(t, want.Items[i].Quantity, got.Items[i].Quantity)
		assert.Equal(t, want.Items[i].Product.ID, got.Items[i].Product.ID)
		assert.Equal(t, want.Items[i].Product.Name, got.Items[i].Product.Name)
		assert.True(t, want.Items[i].Product.Price.Equal(got.Items[i].Product.Price))
	}
	assert.True(t, want.Total.Equal(got.Total))
	assert.Equal(t, want.ItemCount, got.ItemCount)
}

func TestCart_SnapshotCorruptoDaCarritoVacio(t *testing.T) {
	cases := map[string]string{
		"json roto":        `{"items": [`,
		"cantidad cero":    `{"items":[{"product":{"id":"p1","price":"10"},"quantity":0}]}`,
		"precio negativo":  `{"items":[{"product":{"id":"p1","price":"-10"},"quantity":1}]}`,
		"líneas repetidas": `{"items":[{"product":{"id":"p1","price":"1"},"quantity":1},{"product":{"id":"p1","price":"1"},"quantity":1}]}`,
		"producto sin id":  `{"items":[{"product":{"price":"1"},"quantity":1}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			repo := memory.NewSnapshotRepository()
			require.NoError(t, repo.Put(context.Background(), store.CartKey, []byte(payload)))

			c := store.NewCartStore(store.NewSnapshots(repo, time.Second, zerolog.Nop()), zerolog.Nop())
			cart := c.Snapshot()
			assert.Empty(t, cart.Items)
			assert.True(t, cart.Total.IsZero())
		})
	}
}

func TestCart_TotalSeRecalculaAlRestaurar(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	payload := `{"items":[{"product":{"id":"p1","price":"10"},"quantity":3}],"total":"999","itemCount":1}`
	require.NoError(t, repo.Put(context.Background(), store.CartKey, []byte(payload)))

	c := store.NewCartStore(store.NewSnapshots(repo, time.Second, zerolog.Nop()), zerolog.Nop())
	cart := c.Snapshot()
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 3, cart.ItemCount)
}

func TestCart_FalloDeEscrituraNoSePropaga(t *testing.T) {
	c, repo := newCart(t)
	repo.FailWrites = errors.New("quota exceeded")

	require.NoError(t, c.AddItem(prod("p1", 10)))
	assert.Equal(t, 1, c.Snapshot().ItemCount, "la memoria sigue siendo la fuente de verdad")
}

func TestCart_SinSnapshots(t *testing.T) {
	c := store.NewCartStore(nil, zerolog.Nop())
	require.NoError(t, c.AddItem(prod("p1", 10)))
	assert.Equal(t, 1, c.Snapshot().ItemCount)
}
