// Package authz centraliza la política de permisos del panel: qué principal puede
// ejecutar qué acción sobre qué recurso.
package authz

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// Rule nombre de la regla que decidió una denegación (aparece en logs y errores).
type Rule string

const (
	// RuleMissingCapabilityDenies sin mapa o sin entrada para el recurso no hay acceso,
	// salvo para el super-admin sembrado.
	RuleMissingCapabilityDenies Rule = "missing-capability-denies"
	// RuleInactiveDenies un principal inactivo o que no es admin no puede operar.
	RuleInactiveDenies Rule = "inactive-denies"
	// RuleSelfProtection nadie se elimina, se desactiva ni reemplaza sus propios permisos.
	RuleSelfProtection Rule = "self-protection"
	// RuleUnsupported el par recurso/acción no existe en el esquema.
	RuleUnsupported Rule = "unsupported-action"
	// RuleExplicitDeny el flag existe y está en false.
	RuleExplicitDeny Rule = "explicit-deny"
)

// SelfAction acción de un admin sobre su propia cuenta que la autoprotección bloquea.
type SelfAction string

const (
	SelfDelete             SelfAction = "delete"
	SelfDeactivate         SelfAction = "deactivate"
	SelfReplacePermissions SelfAction = "replace-permissions"
)

// Guard evalúa permisos. Es un valor sin estado mutable; se puede compartir.
type Guard struct {
	superAdminID string
	log          zerolog.Logger
}

// Option configura el Guard.
type Option func(*Guard)

// WithLogger registra las denegaciones a nivel Info.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Guard) { g.log = log }
}

// NewGuard crea el guard. superAdminID identifica la cuenta sembrada que, sin mapa de
// permisos, tiene acceso total.
func NewGuard(superAdminID string, opts ...Option) *Guard {
	g := &Guard{superAdminID: superAdminID, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SuperAdminID id configurado del super-admin.
func (g *Guard) SuperAdminID() string { return g.superAdminID }

// Authorize informa si principal puede ejecutar action sobre resource.
func (g *Guard) Authorize(principal entity.User, resource entity.Resource, action entity.Action) bool {
	_, ok := g.decide(principal, resource, action)
	return ok
}

// Require devuelve ErrPermissionDenied (envuelto con la regla) si la acción no está permitida.
func (g *Guard) Require(principal entity.User, resource entity.Resource, action entity.Action) error {
	rule, ok := g.decide(principal, resource, action)
	if ok {
		return nil
	}
	g.log.Info().
		Str("principal", principal.ID).
		Str("resource", string(resource)).
		Str("action", string(action)).
		Str("rule", string(rule)).
		Msg("acción denegada")
	return fmt.Errorf("%w: %s.%s (%s)", domain.ErrPermissionDenied, resource, action, rule)
}

// RequireNotSelf aplica RuleSelfProtection: falla si targetID es el propio principal.
func (g *Guard) RequireNotSelf(principal entity.User, targetID string, what SelfAction) error {
	if principal.ID == "" || principal.ID != targetID {
		return nil
	}
	g.log.Info().
		Str("principal", principal.ID).
		Str("self_action", string(what)).
		Str("rule", string(RuleSelfProtection)).
		Msg("acción sobre la propia cuenta denegada")
	return fmt.Errorf("%w: no puede aplicar %s sobre su propia cuenta (%s)", domain.ErrPermissionDenied, what, RuleSelfProtection)
}

// Capabilities devuelve el mapa efectivo del principal (útil para que la UI oculte acciones).
func (g *Guard) Capabilities(principal entity.User) entity.Permissions {
	out := entity.Permissions{}
	for r := range entity.FullAccess() {
		var c entity.Capability
		c.View = g.Authorize(principal, r, entity.ActionView)
		c.Create = g.Authorize(principal, r, entity.ActionCreate)
		c.Edit = g.Authorize(principal, r, entity.ActionEdit)
		c.Delete = g.Authorize(principal, r, entity.ActionDelete)
		out[r] = c
	}
	return out
}

func (g *Guard) decide(p entity.User, r entity.Resource, a entity.Action) (Rule, bool) {
	if !entity.Supports(r, a) {
		return RuleUnsupported, false
	}
	if !p.IsAdmin() || p.Status != entity.StatusActive {
		return RuleInactiveDenies, false
	}
	capability, ok := p.Permissions[r]
	if !ok {
		if g.isSuperAdmin(p) {
			return "", true
		}
		return RuleMissingCapabilityDenies, false
	}
	if !capability.Allows(a) {
		return RuleExplicitDeny, false
	}
	return "", true
}

func (g *Guard) isSuperAdmin(p entity.User) bool {
	return g.superAdminID != "" && p.ID == g.superAdminID
}
