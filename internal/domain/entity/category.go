package entity

import (
	"strings"
	"time"
)

// Category agrupa productos. ProductCount es un agregado derivado: solo lo escribe el
// recálculo de categorías, nunca quien llama.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	ProductCount int       `json:"productCount"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	ParentID     string    `json:"parentId,omitempty"` // vacío si es raíz
}

// GetID implementa la clave de la colección.
func (c Category) GetID() string { return c.ID }

// Validate comprueba los invariantes de la categoría.
func (c Category) Validate() error {
	if err := requireText("id", c.ID); err != nil {
		return err
	}
	if err := requireText("name", c.Name); err != nil {
		return err
	}
	if err := requireText("slug", c.Slug); err != nil {
		return err
	}
	if strings.ContainsAny(c.Slug, " \t/") {
		return invalid("slug", "no puede contener espacios ni barras")
	}
	if !c.Status.valid() {
		return invalid("status", "debe ser active o inactive")
	}
	if c.ParentID == c.ID {
		return invalid("parentId", "no puede apuntar a sí misma")
	}
	return nil
}

// CategoryPatch actualización parcial. ProductCount no es editable.
type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
}

// Apply mezcla el patch sobre c.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.ParentID != nil {
		c.ParentID = *p.ParentID
	}
	return c
}
