package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-admin/internal/application/dto"
	"github.com/jhoicas/storefront-admin/internal/application/query"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// getByID responde el elemento :id de la colección o 404.
func getByID[T store.Entity](reader store.Reader[T], kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
		}
		item, ok := reader.Get(id)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: kind + " no encontrado"})
		}
		return c.JSON(item)
	}
}

// listQuery atiende GET con la consulta en la query string:
//
//	?search=ip15&filter=category:Laptop&sort=price&dir=asc&limit=20&offset=0
//
// filter puede repetirse; cada valor es "campo:valor".
func listQuery[T any](run func(query.Query) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := query.Query{Search: c.Query("search")}
		for _, raw := range c.Context().QueryArgs().PeekMulti("filter") {
			field, value, ok := strings.Cut(string(raw), ":")
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filter debe tener la forma campo:valor"})
			}
			q.Filters = append(q.Filters, query.Filter{Field: field, Value: value})
		}
		if key := c.Query("sort"); key != "" {
			q.Sort = &query.Sort{Key: key, Direction: query.Direction(c.Query("dir"))}
		}
		page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
		return respondQuery(c, run, q, page)
	}
}

// bodyQuery atiende POST /query con un dto.QueryRequest. Un cuerpo vacío equivale a la consulta vacía.
func bodyQuery[T any](run func(query.Query) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.QueryRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return badBody(c)
			}
		}
		return respondQuery(c, run, in.Query, in.PageRequest)
	}
}

func respondQuery[T any](c *fiber.Ctx, run func(query.Query) ([]T, error), q query.Query, page dto.PageRequest) error {
	items, err := run(q)
	if err != nil {
		return writeError(c, err)
	}
	page.DefaultPage()
	return c.JSON(dto.Paginate(items, page))
}
