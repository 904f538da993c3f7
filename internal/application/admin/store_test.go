package admin_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/authz"
	"github.com/jhoicas/storefront-admin/internal/application/query"
	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	rootID     = "admin-1" // super-admin sembrado
	productMgr = "admin-2" // productos completos, categorías sin delete
	orderMgr   = "admin-3" // solo pedidos (view/edit)
	inactiveID = "admin-4"
)

var fixedNow = time.Date(2024, 10, 16, 9, 0, 0, 0, time.UTC)

type countingRecorder struct {
	mu   sync.Mutex
	seen map[string]int
}

func (r *countingRecorder) Mutation(res entity.Resource, act entity.Action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = map[string]int{}
	}
	r.seen[string(res)+"."+string(act)+":"+outcome]++
}

func newStore(t *testing.T, opts ...admin.Option) *admin.Store {
	t.Helper()
	opts = append([]admin.Option{admin.WithClock(func() time.Time { return fixedNow })}, opts...)
	return admin.New(authz.NewGuard(rootID), opts...)
}

func newSeededStore(t *testing.T, opts ...admin.Option) *admin.Store {
	t.Helper()
	s := newStore(t, opts...)
	require.NoError(t, s.Init(admin.DemoSeed(fixedNow)))
	return s
}

func strPtr(s string) *string { return &s }

func mustProduct(t *testing.T, s *admin.Store, id string) entity.Product {
	t.Helper()
	p, ok := s.Products().Get(id)
	require.True(t, ok, "producto %s", id)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Init y agregados
// ──────────────────────────────────────────────────────────────────────────────

func TestInit_CalculaProductCount(t *testing.T) {
	s := newSeededStore(t)

	want := map[string]int{"1": 2, "2": 2, "3": 1, "4": 0}
	for id, n := range want {
		c, ok := s.Categories().Get(id)
		require.True(t, ok)
		assert.Equal(t, n, c.ProductCount, "categoría %s", id)
	}
}

func TestInit_RechazaSeedInvalido(t *testing.T) {
	s := newStore(t)
	seed := admin.DemoSeed(fixedNow)
	seed.Products[0].Price = decimal.NewFromInt(-1)

	err := s.Init(seed)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, 0, s.Products().Len())
}

// Escenario c1/p1: agregar y eliminar un producto mueve el conteo de 0 a 1 y de vuelta a 0.
func TestStore_EscenarioCategoriaProducto(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Init(admin.Seed{
		Admins:     admin.DemoSeed(fixedNow).Admins,
		Categories: []entity.Category{{ID: "c1", Name: "C1", Slug: "c1", Status: entity.StatusActive}},
	}))

	require.NoError(t, s.AddProduct(rootID, entity.Product{ID: "p1", Code: "P1", Name: "P1", CategoryID: "c1"}))
	c1, _ := s.Categories().Get("c1")
	assert.Equal(t, 1, c1.ProductCount)
	assert.Equal(t, "C1", mustProduct(t, s, "p1").Category, "el nombre visible se completa desde la categoría")

	require.NoError(t, s.DeleteProduct(rootID, "p1"))
	c1, _ = s.Categories().Get("c1")
	assert.Equal(t, 0, c1.ProductCount)
}

func TestAddCategory_ReflejaProductosExistentes(t *testing.T) {
	s := newSeededStore(t)
	require.NoError(t, s.AddProduct(rootID, entity.Product{ID: "p9", Code: "ORPHAN", Name: "Huérfano", CategoryID: "c9"}))

	c, err := s.AddCategory(rootID, entity.Category{ID: "c9", Name: "Nueva", Slug: "nueva", ProductCount: 40})
	require.NoError(t, err)
	assert.Equal(t, 1, c.ProductCount)
}

func TestStore_SuscriptoresVenElEstadoFinal(t *testing.T) {
	s := newSeededStore(t)
	var seen []int
	unsubscribe := s.Categories().Subscribe(func(items map[string]entity.Category) {
		seen = append(seen, items["3"].ProductCount)
	})
	defer unsubscribe()

	require.NoError(t, s.AddProduct(rootID, entity.Product{ID: "t2", Code: "TAB2", Name: "Tab 2", CategoryID: "3"}))
	assert.Equal(t, []int{2}, seen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_DenegadoNoModifica(t *testing.T) {
	rec := &countingRecorder{}
	s := newSeededStore(t, admin.WithRecorder(rec))
	before := s.Products().List()

	err := s.DeleteProduct(orderMgr, "1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	assert.Equal(t, before, s.Products().List())
	assert.Equal(t, 1, rec.seen["products.delete:denied"])
}

func TestStore_AdminInactivoYDesconocidoDenegados(t *testing.T) {
	s := newSeededStore(t)

	_, err := s.ToggleUserStatus(inactiveID, "1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = s.ToggleUserStatus("nadie", "1")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestStore_CambioDePermisosAplicaDeInmediato(t *testing.T) {
	s := newSeededStore(t)
	require.ErrorIs(t, s.DeleteOrder(orderMgr, "1001"), domain.ErrPermissionDenied)

	_, err := s.SetAdminPermissions(rootID, orderMgr, entity.Permissions{
		entity.ResourceOrders: {View: true, Edit: true, Delete: true},
	})
	require.NoError(t, err)
	require.NoError(t, s.DeleteOrder(orderMgr, "1001"))

	_, ok := s.Orders().Get("1001")
	assert.False(t, ok)
}

func TestStore_CopiasLeidasNoAlteranElEstado(t *testing.T) {
	s := newSeededStore(t)
	require.False(t, s.Can(orderMgr, entity.ResourceProducts, entity.ActionDelete))

	a, ok := s.Admins().Get(orderMgr)
	require.True(t, ok)
	a.Permissions[entity.ResourceProducts] = entity.Capability{View: true, Create: true, Edit: true, Delete: true}
	for _, listed := range s.Admins().List() {
		listed.Permissions[entity.ResourceProducts] = entity.Capability{Delete: true}
	}
	assert.False(t, s.Can(orderMgr, entity.ResourceProducts, entity.ActionDelete))
	require.ErrorIs(t, s.DeleteProduct(orderMgr, "1"), domain.ErrPermissionDenied)

	o, _ := s.Orders().Get("1001")
	o.Products[0].Quantity = 99
	again, _ := s.Orders().Get("1001")
	assert.Equal(t, 1, again.Products[0].Quantity)
}

func TestStore_SuperAdminRecibeRecursosSinEntrada(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.SetReviewStatus(rootID, "r3", entity.ReviewPublished)
	require.NoError(t, err)

	_, err = s.SetReviewStatus(productMgr, "r3", entity.ReviewHidden)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestStore_Autoproteccion(t *testing.T) {
	s := newSeededStore(t)

	assert.ErrorIs(t, s.DeleteAdmin(rootID, rootID), domain.ErrPermissionDenied)

	_, err := s.ToggleAdminStatus(rootID, rootID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	inactive := entity.StatusInactive
	_, err = s.UpdateAdmin(rootID, rootID, entity.UserPatch{Status: &inactive})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = s.SetAdminPermissions(rootID, rootID, entity.Permissions{})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	self, ok := s.Admins().Get(rootID)
	require.True(t, ok)
	assert.Equal(t, entity.StatusActive, self.Status)

	// sobre otro admin sí puede
	_, err = s.ToggleAdminStatus(rootID, productMgr)
	assert.NoError(t, err)
	assert.NoError(t, s.DeleteAdmin(rootID, inactiveID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y unicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_CodigoDuplicadoSinMayusculas(t *testing.T) {
	s := newSeededStore(t)
	err := s.AddProduct(productMgr, entity.Product{Code: "ip15pm256", Name: "Copia"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	err = s.AddProduct(productMgr, entity.Product{ID: "1", Code: "NEW", Name: "Id repetido"})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestUpdateProduct_ValidaAntesDeEscribir(t *testing.T) {
	s := newSeededStore(t)
	negative := -3
	_, err := s.UpdateProduct(rootID, "1", entity.ProductPatch{Stock: &negative})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, 15, mustProduct(t, s, "1").Stock)

	_, err = s.UpdateProduct(rootID, "nope", entity.ProductPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProduct_CodigoRecortadoSigueUnicoEnImportacion(t *testing.T) {
	s := newSeededStore(t)
	p, err := s.CreateProduct(productMgr, entity.Product{Code: "ABC", Name: "Base"})
	require.NoError(t, err)

	updated, err := s.UpdateProduct(productMgr, p.ID, entity.ProductPatch{Code: strPtr(" XYZ ")})
	require.NoError(t, err)
	assert.Equal(t, "XYZ", updated.Code)
	stored := mustProduct(t, s, p.ID)
	assert.Equal(t, "XYZ", stored.Code)

	_, err = s.ImportProducts(productMgr, []entity.Product{{Code: "xyz", Name: "Choque"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.Equal(t, 6, s.Products().Len())
}

func TestShippingUnit_CodigoNormalizadoYUnico(t *testing.T) {
	s := newSeededStore(t)
	u, err := s.AddShippingUnit(rootID, entity.ShippingUnit{Name: "Hỏa tốc", Code: " sameday ", Price: decimal.NewFromInt(90000), Active: true})
	require.NoError(t, err)
	assert.Equal(t, "SAMEDAY", u.Code)

	_, err = s.AddShippingUnit(rootID, entity.ShippingUnit{Name: "Otra", Code: "std"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = s.UpdateShippingUnit(rootID, "s2", entity.ShippingUnitPatch{Code: strPtr("Std")})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	toggled, err := s.ToggleShippingUnit(rootID, "s3")
	require.NoError(t, err)
	assert.True(t, toggled.Active)
}

func TestPromotion_CodigoUnicoYFechas(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.AddPromotion(productMgr, entity.Promotion{
		Name: "Copia", Code: "oct10", Type: entity.PromoFixed, Value: decimal.NewFromInt(5000),
		StartDate: fixedNow, EndDate: fixedNow.AddDate(0, 1, 0),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	p, err := s.AddPromotion(productMgr, entity.Promotion{
		Name: "Black Friday", Code: "bf", Type: entity.PromoPercent, Value: decimal.NewFromInt(30),
		StartDate: fixedNow, EndDate: fixedNow.AddDate(0, 0, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, "BF", p.Code)
	assert.Equal(t, entity.ScopeGlobal, p.Scope)

	before := fixedNow.AddDate(0, 0, -1)
	_, err = s.UpdatePromotion(productMgr, p.ID, entity.PromotionPatch{EndDate: &before})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = s.AddPromotion(orderMgr, entity.Promotion{Name: "x", Code: "X"})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCategory_SlugUnicoYPadre(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.AddCategory(productMgr, entity.Category{Name: "Otro", Slug: "LAPTOP"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = s.AddCategory(productMgr, entity.Category{Name: "Hijo", Slug: "hijo", ParentID: "nope"})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	child, err := s.AddCategory(productMgr, entity.Category{ID: "c-child", Name: "Gaming", Slug: "gaming", ParentID: "2"})
	require.NoError(t, err)
	_, err = s.UpdateCategory(productMgr, "2", entity.CategoryPatch{ParentID: strPtr(child.ID)})
	assert.ErrorIs(t, err, domain.ErrValidationFailed, "un ciclo de padres se rechaza")

	assert.ErrorIs(t, s.DeleteCategory(productMgr, "4"), domain.ErrPermissionDenied)
}

func TestUsers_RolInmutableYSoloClientes(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.AddUser(rootID, entity.User{Name: "Admin encubierto", Email: "x@example.com", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	u, err := s.AddUser(rootID, entity.User{Name: "Nuevo", Email: "nuevo@example.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, entity.StatusActive, u.Status)
	assert.Equal(t, fixedNow, u.CreatedAt)

	_, err = s.UpdateUser(rootID, u.ID, entity.UserPatch{Email: strPtr("no-es-email")})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	toggled, err := s.ToggleUserStatus(rootID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, toggled.Status)

	require.NoError(t, s.DeleteUser(rootID, u.ID))
	require.NoError(t, s.DeleteUser(rootID, u.ID), "eliminar es idempotente")
}

func TestAddUser_IdDeAdminRechazado(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.AddUser(rootID, entity.User{ID: productMgr, Name: "Sombra", Email: "sombra@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
	_, ok := s.Users().Get(productMgr)
	assert.False(t, ok)

	account, ok := s.Account(productMgr)
	require.True(t, ok)
	assert.True(t, account.IsAdmin())
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos, reseñas y estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestPlaceOrder_CopiaLineasYDescuentaStock(t *testing.T) {
	s := newSeededStore(t)
	iphone := mustProduct(t, s, "1")
	cart := entity.Cart{Items: []entity.CartLine{{Product: iphone, Quantity: 2}}}

	order, err := s.PlaceOrder("5", cart)
	require.NoError(t, err)
	assert.Equal(t, "1005", order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(60000000)))

	p := mustProduct(t, s, "1")
	assert.Equal(t, 13, p.Stock)
	assert.Equal(t, 122, p.Sold)

	customer, _ := s.Users().Get("5")
	assert.True(t, customer.TotalSpent.Equal(decimal.NewFromInt(62100000)))

	// cambiar el precio después no altera el pedido
	_, err = s.UpdateProduct(rootID, "1", entity.ProductPatch{Price: func() *decimal.Decimal { d := decimal.NewFromInt(1); return &d }()})
	require.NoError(t, err)
	stored, _ := s.Orders().Get(order.ID)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(60000000)))
}

func TestPlaceOrder_Errores(t *testing.T) {
	s := newSeededStore(t)
	ipad := mustProduct(t, s, "4")

	_, err := s.PlaceOrder("5", entity.Cart{})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = s.PlaceOrder("5", entity.Cart{Items: []entity.CartLine{{Product: ipad, Quantity: 6}}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed, "stock insuficiente")

	_, err = s.PlaceOrder("3", entity.Cart{Items: []entity.CartLine{{Product: ipad, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrValidationFailed, "cliente inactivo")

	_, err = s.PlaceOrder("99", entity.Cart{Items: []entity.CartLine{{Product: ipad, Quantity: 1}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 4, s.Orders().Len())
}

func TestOrders_EstadoYEliminacion(t *testing.T) {
	s := newSeededStore(t)
	o, err := s.UpdateOrderStatus(orderMgr, "1004", entity.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, o.Status)

	_, err = s.UpdateOrderStatus(orderMgr, "1004", "lost")
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = s.UpdateOrderStatus(orderMgr, "9999", entity.OrderShipped)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddReview_ValidaRatingYProducto(t *testing.T) {
	s := newSeededStore(t)
	r, err := s.AddReview(entity.Review{ProductID: "5", UserID: "1", Rating: 4, Comment: "Tốt"})
	require.NoError(t, err)
	assert.Equal(t, entity.ReviewPending, r.Status)
	assert.Equal(t, "Nguyễn Thành Tâm", r.UserName)

	_, err = s.AddReview(entity.Review{ProductID: "5", UserID: "1", Rating: 6})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = s.AddReview(entity.Review{ProductID: "nope", UserID: "1", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStats(t *testing.T) {
	s := newSeededStore(t)
	st, err := s.Stats(orderMgr)
	require.NoError(t, err)

	assert.Equal(t, 5, st.TotalUsers)
	assert.Equal(t, 4, st.ActiveUsers)
	assert.Equal(t, 5, st.TotalProducts)
	assert.Equal(t, 4, st.TotalOrders)
	assert.Equal(t, 2, st.LowStockProducts)
	assert.Equal(t, 1, st.PendingOrders)
	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(157000000)))

	_, err = s.Stats(inactiveID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	top := s.TopProducts(2)
	require.Len(t, top, 2)
	assert.Equal(t, "1", top[0].ID)
	assert.Equal(t, "2", top[1].ID)
}

func TestImportProducts_TodoONada(t *testing.T) {
	s := newSeededStore(t)
	_, err := s.ImportProducts(productMgr, []entity.Product{
		{Code: "NEW1", Name: "Nuevo 1", CategoryID: "4"},
		{Code: "new1", Name: "Repetido"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.Equal(t, 5, s.Products().Len())

	added, err := s.ImportProducts(productMgr, []entity.Product{
		{Code: "CASE1", Name: "Ốp lưng", CategoryID: "4", Price: decimal.NewFromInt(150000), Stock: 100},
		{Code: "CABLE", Name: "Cáp sạc", CategoryID: "4", Price: decimal.NewFromInt(90000), Stock: 3},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Phụ kiện", added[0].Category)

	c4, _ := s.Categories().Get("4")
	assert.Equal(t, 2, c4.ProductCount)
}

func TestQueryProducts_UsaElPipeline(t *testing.T) {
	s := newSeededStore(t)
	out, err := s.QueryProducts(query.Query{
		Filters: []query.Filter{{Field: "categoryId", Value: "2"}},
		Sort:    &query.Sort{Key: "price"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "5", out[0].ID, "MacBook es el más caro")
}
