package entity

import (
	"net/mail"
	"time"

	"github.com/shopspring/decimal"
)

// Role rol de una cuenta. Es inmutable después de la creación.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status estado de cuentas y categorías.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Flip alterna entre active e inactive.
func (s Status) Flip() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

func (s Status) valid() bool { return s == StatusActive || s == StatusInactive }

// User representa un cliente o un administrador del panel.
type User struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Role        Role             `json:"role"`
	Status      Status           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	LastLogin   *time.Time       `json:"lastLogin,omitempty"`
	TotalSpent  *decimal.Decimal `json:"totalSpent,omitempty"`
	Permissions Permissions      `json:"permissions,omitempty"` // solo admins
}

// GetID implementa la clave de la colección.
func (u User) GetID() string { return u.ID }

// Clone copia la cuenta sin compartir permisos ni punteros con el original.
func (u User) Clone() User {
	u.Permissions = u.Permissions.Clone()
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	if u.TotalSpent != nil {
		d := *u.TotalSpent
		u.TotalSpent = &d
	}
	return u
}

// IsAdmin informa si la cuenta tiene rol admin.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Validate comprueba los invariantes del usuario.
func (u User) Validate() error {
	if err := requireText("id", u.ID); err != nil {
		return err
	}
	if err := requireText("name", u.Name); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return invalid("email", "no es una dirección válida")
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return invalid("role", "debe ser user o admin")
	}
	if !u.Status.valid() {
		return invalid("status", "debe ser active o inactive")
	}
	if u.TotalSpent != nil && u.TotalSpent.IsNegative() {
		return invalid("totalSpent", "no puede ser negativo")
	}
	if u.Permissions != nil {
		if u.Role != RoleAdmin {
			return invalid("permissions", "solo los admins tienen permisos")
		}
		if err := u.Permissions.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// UserPatch actualización parcial. No incluye Role: el rol no cambia tras la creación.
type UserPatch struct {
	Name        *string          `json:"name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Status      *Status          `json:"status,omitempty"`
	LastLogin   *time.Time       `json:"lastLogin,omitempty"`
	TotalSpent  *decimal.Decimal `json:"totalSpent,omitempty"`
	Permissions *Permissions     `json:"permissions,omitempty"`
}

// Apply mezcla el patch sobre u. Permissions se reemplaza completo.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Status != nil {
		u.Status = *p.Status
	}
	if p.LastLogin != nil {
		t := *p.LastLogin
		u.LastLogin = &t
	}
	if p.TotalSpent != nil {
		v := *p.TotalSpent
		u.TotalSpent = &v
	}
	if p.Permissions != nil {
		u.Permissions = p.Permissions.Clone()
	}
	return u
}
