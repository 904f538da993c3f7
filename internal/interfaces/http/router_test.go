package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/authz"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/application/session"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/memory"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/storefront-admin/internal/interfaces/http"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 10, 16, 9, 0, 0, 0, time.UTC)

type apiFixture struct {
	app   *fiber.App
	store *admin.Store
}

func newAPI(t *testing.T) apiFixture {
	t.Helper()
	log := zerolog.Nop()
	metrics := apphttp.NewMetrics()
	s := admin.New(authz.NewGuard("admin-1"),
		admin.WithClock(func() time.Time { return fixedNow }),
		admin.WithRecorder(metrics),
	)
	require.NoError(t, s.Init(admin.DemoSeed(fixedNow)))

	snaps := store.NewSnapshots(memory.NewSnapshotRepository(), 0, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:    s,
		Sessions: session.NewManager(snaps, log),
		Cart:     store.NewCartStore(snaps, log),
		Receipts: pdf.NewReceiptGenerator("Storefront"),
		Metrics:  metrics,
		Token:    apphttp.TokenConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin},
		Log:      log,
	})
	return apiFixture{app: app, store: s}
}

// call lanza la petición con cuerpo JSON opcional y token opcional.
func (f apiFixture) call(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// signIn abre sesión y devuelve el token.
func (f apiFixture) signIn(t *testing.T, userID string) string {
	t.Helper()
	resp := f.call(t, http.MethodPost, "/api/session", "", dto.SignInRequest{UserID: userID})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.SignInResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// Público
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_HealthYCatalogoPublico(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodGet, "/health", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/products?search=iphone", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ListResponse[entity.Product]](t, resp)
	require.Equal(t, 1, list.Page.Total)
	assert.Equal(t, "1", list.Items[0].ID)

	resp = f.call(t, http.MethodPost, "/api/products/query", "", dto.QueryRequest{
		PageRequest: dto.PageRequest{Limit: 2},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[dto.ListResponse[entity.Product]](t, resp)
	assert.Equal(t, 5, list.Page.Total)
	assert.Len(t, list.Items, 2)

	resp = f.call(t, http.MethodGet, "/api/products?sort=nope", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/products/404", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Sesion(t *testing.T) {
	f := newAPI(t)

	resp := f.call(t, http.MethodPost, "/api/session", "", dto.SignInRequest{UserID: "admin-4"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "cuenta inactiva")

	resp = f.call(t, http.MethodPost, "/api/session", "", dto.SignInRequest{UserID: "nadie"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	f.signIn(t, "admin-2")
	st := decode[dto.SessionResponse](t, f.call(t, http.MethodGet, "/api/session", "", nil))
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "admin-2", st.User.ID)
	require.NotNil(t, st.User.LastLogin)
	assert.True(t, st.User.LastLogin.Equal(fixedNow))

	resp = f.call(t, http.MethodDelete, "/api/session", "", nil)
	resp.Body.Close()
	st = decode[dto.SessionResponse](t, f.call(t, http.MethodGet, "/api/session", "", nil))
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_PermisosDelPanel(t *testing.T) {
	f := newAPI(t)
	root := f.signIn(t, "admin-1")
	orders := f.signIn(t, "admin-3")
	customer := f.signIn(t, "1")

	resp := f.call(t, http.MethodGet, "/api/admin/users", root, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := decode[dto.ListResponse[entity.User]](t, resp)
	assert.Equal(t, 5, users.Page.Total)

	resp = f.call(t, http.MethodGet, "/api/admin/users", orders, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.call(t, http.MethodGet, "/api/admin/users", customer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un cliente no entra al panel")

	resp = f.call(t, http.MethodDelete, "/api/admin/products/1", orders, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, ok := f.store.Products().Get("1")
	assert.True(t, ok, "la denegación no modifica el catálogo")

	resp = f.call(t, http.MethodGet, "/api/admin/dashboard", orders, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decode[dto.DashboardResponse](t, resp)
	assert.Equal(t, 4, dash.Stats.TotalOrders)
	assert.Len(t, dash.TopProducts, 5)
}

func TestRouter_CrudDeProductos(t *testing.T) {
	f := newAPI(t)
	mgr := f.signIn(t, "admin-2")

	resp := f.call(t, http.MethodPost, "/api/admin/products", mgr, map[string]any{
		"code": "ip15pm256", "name": "Duplicado", "price": 1, "stock": 1,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.call(t, http.MethodPost, "/api/admin/products", mgr, map[string]any{
		"code": "APW9", "name": "Apple Watch 9", "price": 9990000, "stock": 12, "categoryId": "4",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[entity.Product](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Phụ kiện", created.Category)

	cat, _ := f.store.Categories().Get("4")
	assert.Equal(t, 1, cat.ProductCount)

	resp = f.call(t, http.MethodPatch, "/api/admin/products/"+created.ID, mgr, map[string]any{"stock": -1})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.call(t, http.MethodDelete, "/api/admin/products/"+created.ID, mgr, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	cat, _ = f.store.Categories().Get("4")
	assert.Equal(t, 0, cat.ProductCount)

	resp = f.call(t, http.MethodPost, "/api/admin/products/import", mgr, []map[string]any{
		{"code": "A1", "name": "Uno", "price": 1},
		{"code": "A2", "name": "Dos", "price": 2},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	imported := decode[dto.ImportResponse](t, resp)
	assert.Equal(t, 2, imported.Imported)
	assert.Equal(t, 7, f.store.Products().Len())
}

func TestRouter_ExportYRecibo(t *testing.T) {
	f := newAPI(t)
	root := f.signIn(t, "admin-1")

	resp := f.call(t, http.MethodGet, "/api/admin/products/export.xlsx", root, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "un xlsx es un zip")

	resp = f.call(t, http.MethodGet, "/api/admin/orders/1001/receipt.pdf", root, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tienda: carrito y checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CarritoYCheckout(t *testing.T) {
	f := newAPI(t)
	customer := f.signIn(t, "1")

	resp := f.call(t, http.MethodGet, "/api/cart", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	for range 2 {
		resp = f.call(t, http.MethodPost, "/api/cart/items", customer, dto.AddCartItemRequest{ProductID: "3"})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp = f.call(t, http.MethodPost, "/api/cart/items", customer, dto.AddCartItemRequest{ProductID: "nope"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cart := decode[entity.Cart](t, f.call(t, http.MethodGet, "/api/cart", customer, nil))
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "50000000", cart.Total.String())

	resp = f.call(t, http.MethodPost, "/api/cart/checkout", customer, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[entity.Order](t, resp)
	assert.Equal(t, "1005", order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)

	p, _ := f.store.Products().Get("3")
	assert.Equal(t, 18, p.Stock)
	assert.Equal(t, 47, p.Sold)

	cart = decode[entity.Cart](t, f.call(t, http.MethodGet, "/api/cart", customer, nil))
	assert.Empty(t, cart.Items)

	resp = f.call(t, http.MethodPost, "/api/cart/checkout", customer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "carrito vacío")

	resp = f.call(t, http.MethodPost, "/api/products/3/reviews", customer, dto.ReviewRequest{Rating: 5, Comment: "Tốt"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	review := decode[entity.Review](t, resp)
	assert.Equal(t, entity.ReviewPending, review.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_MetricasCuentanMutaciones(t *testing.T) {
	f := newAPI(t)
	orders := f.signIn(t, "admin-3")

	resp := f.call(t, http.MethodDelete, "/api/admin/products/1", orders, nil)
	resp.Body.Close()

	resp = f.call(t, http.MethodGet, "/metrics", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `storefront_mutations_total{action="delete",outcome="denied",resource="products"} 1`)
	assert.Contains(t, string(body), "storefront_http_requests_total")
}
