package admin

import (
	"maps"
	"slices"

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// RecountCategories recalcula ProductCount de cada categoría contando los productos cuyo
// CategoryID coincide. Es un recálculo completo, no incremental. changed indica si algún
// conteo difiere del actual; el resultado va ordenado por id.
func RecountCategories(products map[string]entity.Product, categories map[string]entity.Category) (next []entity.Category, changed bool) {
	counts := make(map[string]int, len(categories))
	for _, p := range products {
		if p.CategoryID != "" {
			counts[p.CategoryID]++
		}
	}
	next = make([]entity.Category, 0, len(categories))
	for _, id := range slices.Sorted(maps.Keys(categories)) {
		c := categories[id]
		if n := counts[id]; c.ProductCount != n {
			c.ProductCount = n
			changed = true
		}
		next = append(next, c)
	}
	return next, changed
}

// recountFrom hook de la colección de productos. Solo reescribe categorías si cambió algún conteo.
func (s *Store) recountFrom(products map[string]entity.Product) {
	next, changed := RecountCategories(products, s.categories.Snapshot())
	if !changed {
		return
	}
	if err := s.categories.ReplaceAll(next); err != nil {
		s.log.Error().Err(err).Msg("no se pudo actualizar productCount")
		return
	}
	s.log.Debug().Int("categories", len(next)).Msg("productCount recalculado")
}
