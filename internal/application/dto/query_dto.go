package dto

import "github.com/jhoicas/storefront-admin/internal/application/query"

// QueryRequest cuerpo de POST /api/<colección>/query: búsqueda, filtros y orden
// más la página a devolver.
type QueryRequest struct {
	query.Query
	PageRequest
}
