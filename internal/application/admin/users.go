package admin

import (
	"fmt"

	"github.com/jhoicas/storefront-admin/internal/application/authz"
	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ─── Clientes (resource users) ────────────────────────────────────────────────

// AddUser agrega un cliente. Sin id se asigna uno; sin estado queda activo.
func (s *Store) AddUser(actorID string, u entity.User) (entity.User, error) {
	err := s.guarded(actorID, entity.ResourceUsers, entity.ActionCreate, func(entity.User) error {
		if u.Role == "" {
			u.Role = entity.RoleUser
		}
		if u.Role != entity.RoleUser {
			return fmt.Errorf("%w: role: los admins se gestionan aparte", domain.ErrValidationFailed)
		}
		u = s.prepareAccount(u)
		if err := u.Validate(); err != nil {
			return err
		}
		if _, clash := s.admins.Get(u.ID); clash {
			return fmt.Errorf("%w: users %s ya existe como admin", domain.ErrDuplicateID, u.ID)
		}
		return s.users.Add(u)
	})
	return u, err
}

// UpdateUser mezcla patch sobre el cliente id.
func (s *Store) UpdateUser(actorID, id string, patch entity.UserPatch) (entity.User, error) {
	var out entity.User
	err := s.guarded(actorID, entity.ResourceUsers, entity.ActionEdit, func(entity.User) error {
		if patch.Permissions != nil {
			return fmt.Errorf("%w: permissions: solo los admins tienen permisos", domain.ErrValidationFailed)
		}
		var err error
		out, err = updateValidated(s.users, "users", id, patch.Apply)
		return err
	})
	return out, err
}

// DeleteUser elimina el cliente id. Es idempotente.
func (s *Store) DeleteUser(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceUsers, entity.ActionDelete, func(entity.User) error {
		s.users.Remove(id)
		return nil
	})
}

// ToggleUserStatus alterna active/inactive del cliente id.
func (s *Store) ToggleUserStatus(actorID, id string) (entity.User, error) {
	var out entity.User
	err := s.guarded(actorID, entity.ResourceUsers, entity.ActionEdit, func(entity.User) error {
		var err error
		out, err = s.users.ToggleField(id, func(u entity.User) entity.User {
			u.Status = u.Status.Flip()
			return u
		})
		return err
	})
	return out, err
}

// ─── Administradores (resource settings) ─────────────────────────────────────

// AddAdmin agrega un administrador. Un admin sin mapa de permisos no tendrá acceso
// (salvo el super-admin), por eso se exige el mapa.
func (s *Store) AddAdmin(actorID string, a entity.User) (entity.User, error) {
	err := s.guarded(actorID, entity.ResourceSettings, entity.ActionEdit, func(entity.User) error {
		if a.Role == "" {
			a.Role = entity.RoleAdmin
		}
		if a.Role != entity.RoleAdmin {
			return fmt.Errorf("%w: role: debe ser admin", domain.ErrValidationFailed)
		}
		if a.Permissions == nil && a.ID != s.guard.SuperAdminID() {
			a.Permissions = entity.Permissions{}
		}
		a = s.prepareAccount(a)
		if err := a.Validate(); err != nil {
			return err
		}
		if _, clash := s.users.Get(a.ID); clash {
			return fmt.Errorf("%w: admins %s ya existe como cliente", domain.ErrDuplicateID, a.ID)
		}
		return s.admins.Add(a)
	})
	return a, err
}

// UpdateAdmin mezcla patch sobre el admin id. Nadie puede desactivarse ni reemplazar
// sus propios permisos.
func (s *Store) UpdateAdmin(actorID, id string, patch entity.UserPatch) (entity.User, error) {
	var out entity.User
	err := s.guarded(actorID, entity.ResourceSettings, entity.ActionEdit, func(actor entity.User) error {
		if patch.Permissions != nil {
			if err := s.guard.RequireNotSelf(actor, id, authz.SelfReplacePermissions); err != nil {
				return err
			}
		}
		if patch.Status != nil && *patch.Status == entity.StatusInactive {
			if err := s.guard.RequireNotSelf(actor, id, authz.SelfDeactivate); err != nil {
				return err
			}
		}
		var err error
		out, err = updateValidated(s.admins, "admins", id, patch.Apply)
		return err
	})
	return out, err
}

// SetAdminPermissions reemplaza el mapa de permisos del admin id.
func (s *Store) SetAdminPermissions(actorID, id string, perms entity.Permissions) (entity.User, error) {
	return s.UpdateAdmin(actorID, id, entity.UserPatch{Permissions: &perms})
}

// DeleteAdmin elimina el admin id. settings no tiene delete: se exige settings.edit.
func (s *Store) DeleteAdmin(actorID, id string) error {
	return s.guarded(actorID, entity.ResourceSettings, entity.ActionEdit, func(actor entity.User) error {
		if err := s.guard.RequireNotSelf(actor, id, authz.SelfDelete); err != nil {
			return err
		}
		s.admins.Remove(id)
		return nil
	})
}

// ToggleAdminStatus alterna active/inactive del admin id. Un admin no puede desactivarse.
func (s *Store) ToggleAdminStatus(actorID, id string) (entity.User, error) {
	var out entity.User
	err := s.guarded(actorID, entity.ResourceSettings, entity.ActionEdit, func(actor entity.User) error {
		if err := s.guard.RequireNotSelf(actor, id, authz.SelfDeactivate); err != nil {
			return err
		}
		var err error
		out, err = s.admins.ToggleField(id, func(a entity.User) entity.User {
			a.Status = a.Status.Flip()
			return a
		})
		return err
	})
	return out, err
}

// RecordLogin fija LastLogin del admin o cliente id. No pasa por el guard: lo invoca el inicio de sesión.
func (s *Store) RecordLogin(id string) (entity.User, error) {
	var out entity.User
	err := s.unguarded(entity.ResourceUsers, entity.ActionEdit, func() error {
		now := s.now()
		touch := func(u entity.User) entity.User {
			u.LastLogin = &now
			return u
		}
		var err error
		if _, ok := s.admins.Get(id); ok {
			out, err = s.admins.ToggleField(id, touch)
			return err
		}
		out, err = s.users.ToggleField(id, touch)
		return err
	})
	return out, err
}

// Account busca id entre admins y clientes.
func (s *Store) Account(id string) (entity.User, bool) {
	if a, ok := s.admins.Get(id); ok {
		return a, true
	}
	return s.users.Get(id)
}

func (s *Store) prepareAccount(u entity.User) entity.User {
	u.ID = s.newID(u.ID)
	if u.Status == "" {
		u.Status = entity.StatusActive
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	u.Permissions = u.Permissions.Clone()
	return u
}
