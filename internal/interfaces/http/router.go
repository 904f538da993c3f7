package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/session"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store    *admin.Store
	Sessions *session.Manager
	Cart     *store.CartStore
	Receipts ReceiptRenderer // opcional
	Metrics  *Metrics        // opcional
	Token    TokenConfig
	Log      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s := deps.Store
	catalog := NewCatalogHandler(s)
	users := NewUserHandler(s)
	orders := NewOrderHandler(s, deps.Receipts)
	shipping := NewShippingHandler(s)
	dashboard := NewDashboardHandler(s)
	sessions := NewSessionHandler(s, deps.Sessions, deps.Token, deps.Log)
	storefront := NewStorefrontHandler(s, deps.Cart)

	api := app.Group("/api")

	// Sesión (público)
	api.Post("/session", sessions.SignIn)
	api.Get("/session", sessions.Current)
	api.Delete("/session", sessions.SignOut)

	// Catálogo de la tienda (público)
	api.Get("/products", catalog.ListProducts)
	api.Post("/products/query", catalog.QueryProducts)
	api.Get("/products/:id", catalog.GetProduct)
	api.Get("/categories", catalog.ListCategories)
	api.Post("/categories/query", catalog.QueryCategories)
	api.Get("/categories/:id", catalog.GetCategory)

	auth := AuthMiddleware(deps.Token.Secret)

	// Carrito y acciones del cliente (requieren Bearer Token)
	cart := api.Group("/cart", auth)
	cart.Get("/", storefront.Cart)
	cart.Delete("/", storefront.ClearCart)
	cart.Post("/items", storefront.AddItem)
	cart.Patch("/items/:productId", storefront.UpdateItem)
	cart.Delete("/items/:productId", storefront.RemoveItem)
	cart.Post("/checkout", storefront.Checkout)
	api.Post("/products/:id/reviews", auth, storefront.AddReview)

	// Panel de administración: JWT + rol admin. Las lecturas se autorizan aquí;
	// las mutaciones las autoriza el guard del store.
	adm := api.Group("/admin", auth, RequireRole(string(entity.RoleAdmin)))
	can := func(r entity.Resource, a entity.Action) fiber.Handler { return RequirePermission(s, r, a) }
	viewUsers := can(entity.ResourceUsers, entity.ActionView)
	viewSettings := can(entity.ResourceSettings, entity.ActionView)
	viewProducts := can(entity.ResourceProducts, entity.ActionView)
	viewCategories := can(entity.ResourceCategories, entity.ActionView)
	viewOrders := can(entity.ResourceOrders, entity.ActionView)
	viewReviews := can(entity.ResourceReviews, entity.ActionView)
	viewShipping := can(entity.ResourceShipping, entity.ActionView)

	adm.Get("/dashboard", dashboard.Summary)

	u := adm.Group("/users")
	u.Get("/", viewUsers, users.ListUsers)
	u.Post("/query", viewUsers, users.QueryUsers)
	u.Get("/:id", viewUsers, users.GetUser)
	u.Post("/", users.CreateUser)
	u.Patch("/:id", users.UpdateUser)
	u.Delete("/:id", users.DeleteUser)
	u.Post("/:id/toggle", users.ToggleUser)

	a := adm.Group("/admins")
	a.Get("/", viewSettings, users.ListAdmins)
	a.Post("/query", viewSettings, users.QueryAdmins)
	a.Get("/:id", viewSettings, users.GetAdmin)
	a.Post("/", users.CreateAdmin)
	a.Patch("/:id", users.UpdateAdmin)
	a.Put("/:id/permissions", users.SetPermissions)
	a.Delete("/:id", users.DeleteAdmin)
	a.Post("/:id/toggle", users.ToggleAdmin)

	p := adm.Group("/products")
	p.Get("/export.xlsx", viewProducts, catalog.ExportProducts)
	p.Post("/import", catalog.ImportProducts)
	p.Post("/", catalog.CreateProduct)
	p.Patch("/:id", catalog.UpdateProduct)
	p.Delete("/:id", catalog.DeleteProduct)

	c := adm.Group("/categories")
	c.Get("/", viewCategories, catalog.ListCategories)
	c.Post("/", catalog.CreateCategory)
	c.Patch("/:id", catalog.UpdateCategory)
	c.Delete("/:id", catalog.DeleteCategory)
	c.Post("/:id/toggle", catalog.ToggleCategory)

	o := adm.Group("/orders")
	o.Get("/", viewOrders, orders.ListOrders)
	o.Post("/query", viewOrders, orders.QueryOrders)
	o.Get("/:id", viewOrders, orders.GetOrder)
	o.Get("/:id/receipt.pdf", viewOrders, orders.Receipt)
	o.Patch("/:id/status", orders.UpdateStatus)
	o.Delete("/:id", orders.DeleteOrder)

	r := adm.Group("/reviews")
	r.Get("/", viewReviews, orders.ListReviews)
	r.Post("/query", viewReviews, orders.QueryReviews)
	r.Patch("/:id/status", orders.ModerateReview)
	r.Delete("/:id", orders.DeleteReview)

	sh := adm.Group("/shipping")
	sh.Get("/", viewShipping, shipping.ListUnits)
	sh.Post("/query", viewShipping, shipping.QueryUnits)
	sh.Get("/:id", viewShipping, shipping.GetUnit)
	sh.Post("/", shipping.CreateUnit)
	sh.Patch("/:id", shipping.UpdateUnit)
	sh.Delete("/:id", shipping.DeleteUnit)
	sh.Post("/:id/toggle", shipping.ToggleUnit)

	pr := adm.Group("/promotions")
	pr.Get("/", viewProducts, shipping.ListPromotions)
	pr.Post("/query", viewProducts, shipping.QueryPromotions)
	pr.Get("/:id", viewProducts, shipping.GetPromotion)
	pr.Post("/", shipping.CreatePromotion)
	pr.Patch("/:id", shipping.UpdatePromotion)
	pr.Delete("/:id", shipping.DeletePromotion)
	pr.Post("/:id/toggle", shipping.TogglePromotion)
}
