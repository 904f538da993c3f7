package http

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/admin"
	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/application/query"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/infrastructure/spreadsheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CatalogHandler productos y categorías. Las lecturas son públicas (tienda); las
// mutaciones pasan por el guard del store.
type CatalogHandler struct {
	store *admin.Store
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(s *admin.Store) *CatalogHandler {
	return &CatalogHandler{store: s}
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return listQuery(h.store.QueryProducts)(c)
}

func (h *CatalogHandler) QueryProducts(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryProducts)(c)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	return getByID(h.store.Products(), "producto")(c)
}

// CreateProduct POST /api/admin/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.CreateProduct(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct PATCH /api/admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in entity.ProductPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateProduct(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct DELETE /api/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.store.DeleteProduct(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportProducts POST /api/admin/products/import
//
// Acepta un archivo XLSX en el campo multipart "file" o un arreglo JSON de productos.
// La importación es todo o nada.
func (h *CatalogHandler) ImportProducts(c *fiber.Ctx) error {
	var batch []entity.Product
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo 'file' requerido"})
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, err)
		}
		if batch, err = spreadsheet.ImportProducts(data); err != nil {
			return writeError(c, err)
		}
	} else if err := c.BodyParser(&batch); err != nil {
		return badBody(c)
	}

	out, err := h.store.ImportProducts(GetPrincipalID(c), batch)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ImportResponse{Imported: len(out), Items: out})
}

// ExportProducts GET /api/admin/products/export.xlsx. Respeta search/filter/sort como el listado.
func (h *CatalogHandler) ExportProducts(c *fiber.Ctx) error {
	q := query.Query{Search: c.Query("search")}
	if key := c.Query("sort"); key != "" {
		q.Sort = &query.Sort{Key: key, Direction: query.Direction(c.Query("dir"))}
	}
	products, err := h.store.QueryProducts(q)
	if err != nil {
		return writeError(c, err)
	}
	data, err := spreadsheet.ExportProducts(products)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.xlsx"`)
	return c.Send(data)
}

// ─── Categorías ──────────────────────────────────────────────────────────────

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return listQuery(h.store.QueryCategories)(c)
}

func (h *CatalogHandler) QueryCategories(c *fiber.Ctx) error {
	return bodyQuery(h.store.QueryCategories)(c)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	return getByID(h.store.Categories(), "categoría")(c)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in entity.Category
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.AddCategory(GetPrincipalID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in entity.CategoryPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.store.UpdateCategory(GetPrincipalID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.store.DeleteCategory(GetPrincipalID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) ToggleCategory(c *fiber.Ctx) error {
	out, err := h.store.ToggleCategoryStatus(GetPrincipalID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
