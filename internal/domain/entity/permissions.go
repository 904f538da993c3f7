package entity

// Resource tipo de recurso sobre el que se evalúan permisos.
type Resource string

// Recursos gestionados desde el panel.
const (
	ResourceUsers      Resource = "users"
	ResourceProducts   Resource = "products"
	ResourceCategories Resource = "categories"
	ResourceOrders     Resource = "orders"
	ResourceSettings   Resource = "settings"
	ResourceReviews    Resource = "reviews"
	ResourceShipping   Resource = "shipping"
)

// Action acción sobre un recurso.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Capability flags de un recurso. Orders y settings no exponen create; settings tampoco delete.
type Capability struct {
	View   bool `json:"view"`
	Create bool `json:"create,omitempty"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete,omitempty"`
}

// Allows indica si el flag de la acción está activo.
func (c Capability) Allows(a Action) bool {
	switch a {
	case ActionView:
		return c.View
	case ActionCreate:
		return c.Create
	case ActionEdit:
		return c.Edit
	case ActionDelete:
		return c.Delete
	default:
		return false
	}
}

// Permissions mapa de capacidades por recurso. Solo los admins lo llevan.
type Permissions map[Resource]Capability

// Supports informa si el par recurso/acción existe en el esquema de permisos.
func Supports(r Resource, a Action) bool {
	switch r {
	case ResourceUsers, ResourceProducts, ResourceCategories, ResourceReviews, ResourceShipping:
		return a == ActionView || a == ActionCreate || a == ActionEdit || a == ActionDelete
	case ResourceOrders:
		return a == ActionView || a == ActionEdit || a == ActionDelete
	case ResourceSettings:
		return a == ActionView || a == ActionEdit
	default:
		return false
	}
}

// Validate rechaza recursos desconocidos y flags que el esquema no admite.
func (p Permissions) Validate() error {
	for r, c := range p {
		if !Supports(r, ActionView) {
			return invalid("permissions", "recurso desconocido: "+string(r))
		}
		if c.Create && !Supports(r, ActionCreate) {
			return invalid("permissions."+string(r), "no admite create")
		}
		if c.Delete && !Supports(r, ActionDelete) {
			return invalid("permissions."+string(r), "no admite delete")
		}
	}
	return nil
}

// Clone copia el mapa (los valores son structs, la copia es completa).
func (p Permissions) Clone() Permissions {
	if p == nil {
		return nil
	}
	out := make(Permissions, len(p))
	for r, c := range p {
		out[r] = c
	}
	return out
}

// FullAccess permisos completos sobre todos los recursos.
func FullAccess() Permissions {
	all := Capability{View: true, Create: true, Edit: true, Delete: true}
	return Permissions{
		ResourceUsers:      all,
		ResourceProducts:   all,
		ResourceCategories: all,
		ResourceOrders:     {View: true, Edit: true, Delete: true},
		ResourceSettings:   {View: true, Edit: true},
		ResourceReviews:    all,
		ResourceShipping:   all,
	}
}
