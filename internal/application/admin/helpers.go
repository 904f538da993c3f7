package admin

import (
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/store"
)

type validatable interface {
	store.Entity
	Validate() error
}

// updateValidated aplica apply sobre la entidad id y solo escribe si el resultado pasa
// Validate y los checks adicionales (unicidad de códigos).
func updateValidated[T validatable](es *store.EntityStore[T], kind, id string, apply func(T) T, checks ...func(T) error) (T, error) {
	var zero T
	current, ok := es.Get(id)
	if !ok {
		return zero, notFound(kind, id)
	}
	next := apply(current)
	if err := next.Validate(); err != nil {
		return zero, err
	}
	for _, check := range checks {
		if err := check(next); err != nil {
			return zero, err
		}
	}
	return es.Update(id, store.PatchFunc[T](apply))
}

// uniqueKey falla con ErrDuplicateCode si otra entidad (id distinto) tiene la misma clave
// sin distinguir mayúsculas.
func uniqueKey[T store.Entity](es *store.EntityStore[T], kind, field string, key func(T) string) func(T) error {
	return func(candidate T) error {
		want := strings.TrimSpace(key(candidate))
		for id, other := range es.Snapshot() {
			if id == candidate.GetID() {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(key(other)), want) {
				return fmt.Errorf("%w: %s.%s %q ya existe", domain.ErrDuplicateCode, kind, field, want)
			}
		}
		return nil
	}
}

// addValidated valida item, aplica los checks y lo agrega.
func addValidated[T validatable](es *store.EntityStore[T], item T, checks ...func(T) error) error {
	if err := item.Validate(); err != nil {
		return err
	}
	for _, check := range checks {
		if err := check(item); err != nil {
			return err
		}
	}
	return es.Add(item)
}
