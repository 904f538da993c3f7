package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `json:"limit" query:"limit"`
	Offset int `json:"offset" query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse lista paginada de cualquier colección.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// Paginate recorta items según page (ya normalizada) conservando el total.
func Paginate[T any](items []T, page PageRequest) ListResponse[T] {
	total := len(items)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	out := items[start:end]
	if out == nil {
		out = []T{}
	}
	return ListResponse[T]{
		Items: out,
		Page:  PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
