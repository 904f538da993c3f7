// Package session guarda quién tiene la sesión abierta en el cliente. No valida
// credenciales: solo conserva {user, isAuthenticated} entre recargas.
package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// State snapshot persistido bajo store.AuthKey.
type State struct {
	User            *entity.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

func (s State) validate() error {
	if s.IsAuthenticated && s.User == nil {
		return fmt.Errorf("%w: sesión autenticada sin usuario", domain.ErrValidationFailed)
	}
	if s.User != nil {
		return s.User.Validate()
	}
	return nil
}

// Manager estado de sesión restaurado al arrancar y persistido tras cada cambio.
type Manager struct {
	mu        sync.RWMutex
	state     State
	snapshots *store.Snapshots
	log       zerolog.Logger
}

// NewManager restaura la sesión. Datos ausentes o corruptos equivalen a sesión cerrada.
func NewManager(snapshots *store.Snapshots, log zerolog.Logger) *Manager {
	restored := store.Load(snapshots, store.AuthKey, State{}, State.validate)
	if !restored.IsAuthenticated {
		restored = State{}
	}
	return &Manager{state: restored, snapshots: snapshots, log: log}
}

// SignIn abre sesión para user (sin comprobar credenciales).
func (m *Manager) SignIn(user entity.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.Status != entity.StatusActive {
		return fmt.Errorf("%w: la cuenta %s está inactiva", domain.ErrUnauthorized, user.ID)
	}
	u := user
	u.Permissions = user.Permissions.Clone()
	m.set(State{User: &u, IsAuthenticated: true})
	m.log.Info().Str("user", u.ID).Str("role", string(u.Role)).Msg("sesión iniciada")
	return nil
}

// SignOut cierra la sesión.
func (m *Manager) SignOut() {
	m.set(State{})
	m.log.Info().Msg("sesión cerrada")
}

// Refresh reemplaza el usuario de la sesión abierta (p. ej. tras editar el propio perfil).
// Si no hay sesión o el id no coincide no hace nada.
func (m *Manager) Refresh(user entity.User) {
	m.mu.RLock()
	current := m.state
	m.mu.RUnlock()
	if !current.IsAuthenticated || current.User.ID != user.ID {
		return
	}
	u := user
	m.set(State{User: &u, IsAuthenticated: true})
}

// Current devuelve el usuario con sesión abierta.
func (m *Manager) Current() (entity.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.state.IsAuthenticated || m.state.User == nil {
		return entity.User{}, false
	}
	return *m.state.User, true
}

// State copia del estado actual.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) set(next State) {
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	store.SaveBestEffort(m.snapshots, store.AuthKey, next)
}
