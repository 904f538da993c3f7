package query_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/application/query"
	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func product(id, code, name string, price int64, stock int) entity.Product {
	return entity.Product{ID: id, Code: code, Name: name, Price: decimal.NewFromInt(price), Stock: stock, Category: "Phones"}
}

func order(id string, status entity.OrderStatus, total int64) entity.Order {
	return entity.Order{ID: id, UserName: "Khách " + id, Status: status, Total: decimal.NewFromInt(total)}
}

func totals(orders []entity.Order) []int64 {
	out := make([]int64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Total.IntPart())
	}
	return out
}

func names(products []entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_BusquedaEnVariosCampos(t *testing.T) {
	items := []entity.Product{
		product("1", "IP15", "iPhone 15", 999, 5),
		product("2", "SS24", "Galaxy", 899, 5),
	}

	out, err := query.Run(items, query.ProductSchema, query.Query{Search: "ip15"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)

	out, err = query.Run(items, query.ProductSchema, query.Query{Search: "  GALAXY "})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

func TestRun_BusquedaVaciaDevuelveTodo(t *testing.T) {
	items := []entity.Product{product("1", "A", "a", 1, 1), product("2", "B", "b", 2, 2)}
	out, err := query.Run(items, query.ProductSchema, query.Query{Search: "   "})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros y orden
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_FiltraAntesDeOrdenar(t *testing.T) {
	items := []entity.Order{
		order("1", entity.OrderPending, 10),
		order("2", entity.OrderDelivered, 30),
		order("3", entity.OrderPending, 20),
	}
	q := query.Query{
		Filters: []query.Filter{{Field: "status", Value: "pending"}},
		Sort:    &query.Sort{Key: "total", Direction: query.Desc},
	}

	out, err := query.Run(items, query.OrderSchema, q)
	require.NoError(t, err)
	assert.Equal(t, []int64{20, 10}, totals(out))
}

func TestRun_FiltroAllSeIgnora(t *testing.T) {
	items := []entity.Order{order("1", entity.OrderPending, 10), order("2", entity.OrderDelivered, 30)}
	out, err := query.Run(items, query.OrderSchema, query.Query{
		Filters: []query.Filter{{Field: "status", Value: query.AllValue}},
	})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestRun_DireccionPorDefecto(t *testing.T) {
	items := []entity.Product{
		product("1", "A", "Bánh", 10, 1),
		product("2", "B", "An", 30, 3),
		product("3", "C", "Ăn", 20, 2),
	}

	byPrice, err := query.Run(items, query.ProductSchema, query.Query{Sort: &query.Sort{Key: "price"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"An", "Ăn", "Bánh"}, names(byPrice), "los números ordenan descendente")

	byName, err := query.Run(items, query.ProductSchema, query.Query{Sort: &query.Sort{Key: "name"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"An", "Ăn", "Bánh"}, names(byName), "los textos ordenan por idioma, ascendente")
}

func TestRun_FechasMasRecientesPrimero(t *testing.T) {
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	items := []entity.Order{order("a", entity.OrderPending, 1), order("b", entity.OrderPending, 1)}
	items[0].CreatedAt = base
	items[1].CreatedAt = base.Add(24 * time.Hour)

	out, err := query.Run(items, query.OrderSchema, query.Query{})
	require.NoError(t, err)
	assert.Equal(t, "b", out[0].ID)
}

func TestRun_OrdenEstable(t *testing.T) {
	items := []entity.Product{
		product("1", "A", "x", 10, 1),
		product("2", "B", "y", 10, 1),
		product("3", "C", "z", 10, 1),
	}
	out, err := query.Run(items, query.ProductSchema, query.Query{Sort: &query.Sort{Key: "price"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, names(out))
}

func TestRun_CamposDesconocidos(t *testing.T) {
	items := []entity.Product{product("1", "A", "a", 1, 1)}

	_, err := query.Run(items, query.ProductSchema, query.Query{Filters: []query.Filter{{Field: "color", Value: "red"}}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = query.Run(items, query.ProductSchema, query.Query{Sort: &query.Sort{Key: "weight"}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = query.Run(items, query.ProductSchema, query.Query{Sort: &query.Sort{Key: "name", Direction: "sideways"}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestRun_StockLevel(t *testing.T) {
	items := []entity.Product{
		product("1", "A", "a", 1, 0),
		product("2", "B", "b", 1, 3),
		product("3", "C", "c", 1, 40),
	}
	out, err := query.Run(items, query.ProductSchema, query.Query{Filters: []query.Filter{{Field: "stockLevel", Value: "low"}}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pureza
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_NoModificaLaEntrada(t *testing.T) {
	items := []entity.Product{
		product("1", "A", "c", 10, 1),
		product("2", "B", "a", 30, 1),
		product("3", "C", "b", 20, 1),
	}
	before := append([]entity.Product(nil), items...)
	q := query.Query{Search: "", Sort: &query.Sort{Key: "name"}}

	first, err := query.Run(items, query.ProductSchema, q)
	require.NoError(t, err)
	second, err := query.Run(items, query.ProductSchema, q)
	require.NoError(t, err)

	assert.Equal(t, before, items)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b", "c"}, names(first))
}
