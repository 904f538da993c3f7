// Package admin compone las colecciones del panel en un único store de dominio:
// cada mutación pasa por el guard de permisos, se aplica sobre su EntityStore y
// dispara el recálculo de agregados.
package admin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/jhoicas/storefront-admin/internal/application/authz"
	"github.com/jhoicas/storefront-admin/internal/domain"
	"github.com/jhoicas/storefront-admin/internal/domain/entity"
	"github.com/jhoicas/storefront-admin/internal/store"
)

// Recorder recibe el resultado de cada mutación (métricas).
type Recorder interface {
	Mutation(resource entity.Resource, action entity.Action, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(entity.Resource, entity.Action, string) {}

// Resultados registrados por mutación.
const (
	OutcomeOK       = "ok"
	OutcomeDenied   = "denied"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Outcome clasifica err en una de las etiquetas Outcome*.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrPermissionDenied):
		return OutcomeDenied
	case errors.Is(err, domain.ErrValidationFailed):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrDuplicateCode):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}

// Option configura el Store.
type Option func(*Store)

// WithLogger logger del store y de sus colecciones.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithRecorder registra cada mutación en rec.
func WithRecorder(rec Recorder) Option {
	return func(s *Store) {
		if rec != nil {
			s.rec = rec
		}
	}
}

// WithLocale idioma de las comparaciones de texto en las consultas.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) { s.locale = tag }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Seed datos iniciales de cada colección.
type Seed struct {
	Users         []entity.User
	Admins        []entity.User
	Categories    []entity.Category
	Products      []entity.Product
	Orders        []entity.Order
	Reviews       []entity.Review
	ShippingUnits []entity.ShippingUnit
	Promotions    []entity.Promotion
}

// Store store de dominio del panel. Las mutaciones se serializan con mu; las lecturas
// van directo a las colecciones.
type Store struct {
	mu     sync.Mutex
	guard  *authz.Guard
	log    zerolog.Logger
	rec    Recorder
	locale language.Tag
	now    func() time.Time

	users      *store.EntityStore[entity.User]
	admins     *store.EntityStore[entity.User]
	categories *store.EntityStore[entity.Category]
	products   *store.EntityStore[entity.Product]
	orders     *store.EntityStore[entity.Order]
	reviews    *store.EntityStore[entity.Review]
	shipping   *store.EntityStore[entity.ShippingUnit]
	promotions *store.EntityStore[entity.Promotion]
}

// New construye un store vacío. Los suscriptores de las colecciones no deben mutar el
// store de forma síncrona.
func New(guard *authz.Guard, opts ...Option) *Store {
	s := &Store{
		guard:  guard,
		log:    zerolog.Nop(),
		rec:    nopRecorder{},
		locale: language.Vietnamese,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.users = store.New("users", store.WithLogger[entity.User](s.log))
	s.admins = store.New("admins", store.WithLogger[entity.User](s.log))
	s.categories = store.New("categories", store.WithLogger[entity.Category](s.log))
	s.products = store.New("products",
		store.WithLogger[entity.Product](s.log),
		store.WithHook[entity.Product](s.recountFrom),
	)
	s.orders = store.New("orders", store.WithLogger[entity.Order](s.log))
	s.reviews = store.New("reviews", store.WithLogger[entity.Review](s.log))
	s.shipping = store.New("shipping", store.WithLogger[entity.ShippingUnit](s.log))
	s.promotions = store.New("promotions", store.WithLogger[entity.Promotion](s.log))
	return s
}

// Init reemplaza todas las colecciones con seed. No pasa por el guard: es el arranque.
// Se valida todo el seed antes de reemplazar la primera colección.
func (s *Store) Init(seed Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateAll(seed); err != nil {
		return err
	}
	steps := []func() error{
		func() error { return s.users.ReplaceAll(seed.Users) },
		func() error { return s.admins.ReplaceAll(seed.Admins) },
		func() error { return s.categories.ReplaceAll(seed.Categories) },
		func() error { return s.products.ReplaceAll(seed.Products) },
		func() error { return s.orders.ReplaceAll(seed.Orders) },
		func() error { return s.reviews.ReplaceAll(seed.Reviews) },
		func() error { return s.shipping.ReplaceAll(seed.ShippingUnits) },
		func() error { return s.promotions.ReplaceAll(seed.Promotions) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	s.recountFrom(s.products.Snapshot())
	s.log.Info().
		Int("users", s.users.Len()).
		Int("admins", s.admins.Len()).
		Int("products", s.products.Len()).
		Int("orders", s.orders.Len()).
		Msg("store inicializado")
	return nil
}

func validateAll(seed Seed) error {
	for _, u := range seed.Users {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("seed users %s: %w", u.ID, err)
		}
		if u.IsAdmin() {
			return fmt.Errorf("seed users %s: %w: role admin en la colección de clientes", u.ID, domain.ErrValidationFailed)
		}
	}
	for _, a := range seed.Admins {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("seed admins %s: %w", a.ID, err)
		}
		if !a.IsAdmin() {
			return fmt.Errorf("seed admins %s: %w: role distinto de admin", a.ID, domain.ErrValidationFailed)
		}
	}
	for _, c := range seed.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed categories %s: %w", c.ID, err)
		}
	}
	for _, p := range seed.Products {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed products %s: %w", p.ID, err)
		}
	}
	for _, o := range seed.Orders {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("seed orders %s: %w", o.ID, err)
		}
	}
	for _, r := range seed.Reviews {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("seed reviews %s: %w", r.ID, err)
		}
	}
	for _, u := range seed.ShippingUnits {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("seed shipping %s: %w", u.ID, err)
		}
	}
	for _, p := range seed.Promotions {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed promotions %s: %w", p.ID, err)
		}
	}
	return nil
}

// Guard guard usado por el store.
func (s *Store) Guard() *authz.Guard { return s.guard }

// Locale idioma de las consultas.
func (s *Store) Locale() language.Tag { return s.locale }

// Vistas de solo lectura para la capa de presentación.

func (s *Store) Users() store.Reader[entity.User]                 { return s.users }
func (s *Store) Admins() store.Reader[entity.User]                { return s.admins }
func (s *Store) Categories() store.Reader[entity.Category]        { return s.categories }
func (s *Store) Products() store.Reader[entity.Product]           { return s.products }
func (s *Store) Orders() store.Reader[entity.Order]               { return s.orders }
func (s *Store) Reviews() store.Reader[entity.Review]             { return s.reviews }
func (s *Store) ShippingUnits() store.Reader[entity.ShippingUnit] { return s.shipping }
func (s *Store) Promotions() store.Reader[entity.Promotion]       { return s.promotions }

// Principal resuelve el admin que actúa. Los permisos se leen de la colección viva, así
// un cambio de permisos aplica desde la siguiente llamada.
func (s *Store) Principal(actorID string) (entity.User, error) {
	actor, ok := s.admins.Get(actorID)
	if !ok {
		return entity.User{}, fmt.Errorf("%w: principal %q desconocido", domain.ErrPermissionDenied, actorID)
	}
	return actor, nil
}

// Can informa si actorID puede ejecutar action sobre resource.
func (s *Store) Can(actorID string, resource entity.Resource, action entity.Action) bool {
	actor, err := s.Principal(actorID)
	if err != nil {
		return false
	}
	return s.guard.Authorize(actor, resource, action)
}

// guarded resuelve el principal, lo autoriza y ejecuta fn bajo el lock del store.
// Una denegación nunca llega a tocar las colecciones.
func (s *Store) guarded(actorID string, resource entity.Resource, action entity.Action, fn func(actor entity.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.Principal(actorID)
	if err == nil {
		err = s.guard.Require(actor, resource, action)
	}
	if err == nil {
		err = fn(actor)
	}
	s.record(resource, action, err)
	return err
}

// unguarded ejecuta una acción de cliente (checkout, reseñas) bajo el lock del store.
func (s *Store) unguarded(resource entity.Resource, action entity.Action, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn()
	s.record(resource, action, err)
	return err
}

func (s *Store) record(resource entity.Resource, action entity.Action, err error) {
	outcome := Outcome(err)
	s.rec.Mutation(resource, action, outcome)
	if err != nil && outcome == OutcomeError {
		s.log.Error().Err(err).Str("resource", string(resource)).Str("action", string(action)).Msg("mutación fallida")
	}
}

func (s *Store) newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
}
