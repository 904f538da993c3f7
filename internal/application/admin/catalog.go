package admin

import (
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ─── Productos ───────────────────────────────────────────────────────────────

func (s *Store) productCodeUnique() func(entity.Product) error {
	return uniqueKey(s.products, "products", "code", func(p entity.Product) string { return p.Code })
}

// codeKey forma normalizada de un código para compararlo sin espacios ni mayúsculas.
func codeKey(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

// withCategoryName completa Category (nombre visible) a partir de CategoryID si falta.
func (s *Store) withCategoryName(p entity.Product) entity.Product {
	if p.CategoryID == "" || p.Category != "" {
		return p
	}
	if c, ok := s.categories.Get(p.CategoryID); ok {
		p.Category = c.Name
	}
	return p
}

// AddProduct agrega un producto. Code es único sin distinguir mayúsculas.
func (s *Store) AddProduct(actorID string, p entity.Product) error {
	_, err := s.CreateProduct(actorID, p)
	return err
}

// CreateProduct como AddProduct, devolviendo el producto guardado (con id asignado).
func (s *Store) CreateProduct(actorID string, p entity.Product) (entity.Product, error) {
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionCreate, func(entity.User) error {
		p.ID = s.newID(p.ID)
		p.Code = strings.TrimSpace(p.Code)
		p = s.withCategoryName(p)
		return addValidated(s.products, p, s.productCodeUnique())
	})
	return p, err
}

// UpdateProduct mezcla patch sobre el producto id. Cambiar CategoryID recalcula los conteos.
func (s *Store) UpdateProduct(actorID, id string, patch entity.ProductPatch) (entity.Product, error) {
	var out entity.Product
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionEdit, func(entity.User) error {
		apply := func(p entity.Product) entity.Product {
			p = patch.Apply(p)
			p.Code = strings.TrimSpace(p.Code)
			if patch.CategoryID != nil && patch.Category == nil {
				p.Category = ""
				p = s.withCategoryName(p)
			}
			return p
		}
		var err error
		out, err = updateValidated(s.products, "products", id, apply, s.productCodeUnique())
		return err
	})
	return out, err
}

// DeleteProduct elimina el producto id. Es idempotente.
func (s *Store) DeleteProduct(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceProducts, entity.ActionDelete, func(entity.User) error {
		s.products.Remove(id)
		return nil
	})
}

// ImportProducts agrega un lote de productos en un solo paso: o entran todos o ninguno.
// El recálculo de categorías corre una sola vez.
func (s *Store) ImportProducts(actorID string, batch []entity.Product) ([]entity.Product, error) {
	var out []entity.Product
	err := s.guarded(actorID, entity.ResourceProducts, entity.ActionCreate, func(entity.User) error {
		existing := s.products.Snapshot()
		codes := make(map[string]string, len(existing)+len(batch))
		for _, p := range existing {
			codes[codeKey(p.Code)] = p.ID
		}
		prepared := make([]entity.Product, 0, len(batch))
		for i, p := range batch {
			p.ID = s.newID(p.ID)
			p.Code = strings.TrimSpace(p.Code)
			p = s.withCategoryName(p)
			if err := p.Validate(); err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
			if _, dup := existing[p.ID]; dup {
				return fmt.Errorf("fila %d: %w: products %s", i+1, domain.ErrDuplicateID, p.ID)
			}
			key := codeKey(p.Code)
			if _, dup := codes[key]; dup {
				return fmt.Errorf("fila %d: %w: products.code %q ya existe", i+1, domain.ErrDuplicateCode, p.Code)
			}
			codes[key] = p.ID
			prepared = append(prepared, p)
		}
		all := make([]entity.Product, 0, len(existing)+len(prepared))
		for _, p := range existing {
			all = append(all, p)
		}
		all = append(all, prepared...)
		if err := s.products.ReplaceAll(all); err != nil {
			return err
		}
		out = prepared
		return nil
	})
	return out, err
}

// ─── Categorías ──────────────────────────────────────────────────────────────

func (s *Store) categorySlugUnique() func(entity.Category) error {
	return uniqueKey(s.categories, "categories", "slug", func(c entity.Category) string { return c.Slug })
}

// AddCategory agrega una categoría. ProductCount lo fija el recálculo, nunca quien llama.
func (s *Store) AddCategory(actorID string, c entity.Category) (entity.Category, error) {
	err := s.guarded(actorID, entity.ResourceCategories, entity.ActionCreate, func(entity.User) error {
		c.ID = s.newID(c.ID)
		c.Slug = strings.TrimSpace(c.Slug)
		c.ProductCount = 0
		if c.Status == "" {
			c.Status = entity.StatusActive
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = s.now()
		}
		if err := s.checkParent(c); err != nil {
			return err
		}
		if err := addValidated(s.categories, c, s.categorySlugUnique()); err != nil {
			return err
		}
		// una categoría nueva refleja de inmediato los productos que ya apuntaban a ella
		s.recountFrom(s.products.Snapshot())
		c, _ = s.categories.Get(c.ID)
		return nil
	})
	return c, err
}

// UpdateCategory mezcla patch sobre la categoría id.
func (s *Store) UpdateCategory(actorID, id string, patch entity.CategoryPatch) (entity.Category, error) {
	var out entity.Category
	err := s.guarded(actorID, entity.ResourceCategories, entity.ActionEdit, func(entity.User) error {
		var err error
		out, err = updateValidated(s.categories, "categories", id, patch.Apply, s.categorySlugUnique(), s.checkParent)
		return err
	})
	return out, err
}

// DeleteCategory elimina la categoría id. Los productos conservan su CategoryID.
func (s *Store) DeleteCategory(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceCategories, entity.ActionDelete, func(entity.User) error {
		s.categories.Remove(id)
		return nil
	})
}

// ToggleCategoryStatus alterna active/inactive de la categoría id.
func (s *Store) ToggleCategoryStatus(actorID, id string) (entity.Category, error) {
	var out entity.Category
	err := s.guarded(actorID, entity.ResourceCategories, entity.ActionEdit, func(entity.User) error {
		var err error
		out, err = s.categories.ToggleField(id, func(c entity.Category) entity.Category {
			c.Status = c.Status.Flip()
			return c
		})
		return err
	})
	return out, err
}

// checkParent exige que ParentID exista y que no forme un ciclo.
func (s *Store) checkParent(c entity.Category) error {
	seen := map[string]bool{c.ID: true}
	for parent := c.ParentID; parent != ""; {
		if seen[parent] {
			return fmt.Errorf("%w: parentId forma un ciclo", domain.ErrValidationFailed)
		}
		seen[parent] = true
		p, ok := s.categories.Get(parent)
		if !ok {
			return fmt.Errorf("%w: parentId %s no existe", domain.ErrValidationFailed, parent)
		}
		parent = p.ParentID
	}
	return nil
}
