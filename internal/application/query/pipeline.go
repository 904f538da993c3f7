// Package query deriva las vistas de lista (búsqueda, filtros y orden) a partir de una
// copia de la colección. Run es puro: nunca modifica la entrada.
package query

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/storefront-admin/internal/domain"
)

// AllValue desactiva el filtro que lo lleva.
const AllValue = "all"

// DefaultLocale idioma usado para comparar textos si no se indica otro.
var DefaultLocale = language.Vietnamese

// Direction sentido del orden.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter prueba de igualdad sobre un campo. Options es la lista de valores que muestra la UI;
// el pipeline no la usa.
type Filter struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
}

// Sort clave de orden elegida por quien llama. Direction vacío usa el sentido por defecto de la clave.
type Sort struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction,omitempty"`
}

// Query configuración que envía la capa de presentación.
type Query struct {
	Search  string   `json:"search,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
	Sort    *Sort    `json:"sort,omitempty"`
}

type keyKind int

const (
	kindString keyKind = iota
	kindNumber
	kindDate
)

// SortKey comparador de una columna. Se construye con ByString, ByNumber, ByInt o ByDate.
type SortKey[T any] struct {
	kind keyKind
	str  func(T) string
	num  func(T) decimal.Decimal
	date func(T) time.Time
}

// ByString orden alfabético según el idioma; ascendente por defecto.
func ByString[T any](f func(T) string) SortKey[T] {
	return SortKey[T]{kind: kindString, str: f}
}

// ByNumber orden numérico; descendente por defecto.
func ByNumber[T any](f func(T) decimal.Decimal) SortKey[T] {
	return SortKey[T]{kind: kindNumber, num: f}
}

// ByInt atajo de ByNumber para campos enteros.
func ByInt[T any](f func(T) int) SortKey[T] {
	return ByNumber(func(v T) decimal.Decimal { return decimal.NewFromInt(int64(f(v))) })
}

// ByDate orden cronológico; más reciente primero por defecto.
func ByDate[T any](f func(T) time.Time) SortKey[T] {
	return SortKey[T]{kind: kindDate, date: f}
}

func (k SortKey[T]) defaultDirection() Direction {
	if k.kind == kindString {
		return Asc
	}
	return Desc
}

// Schema declara qué campos de T se buscan, filtran y ordenan en una pantalla.
type Schema[T any] struct {
	SearchFields []func(T) string
	FilterFields map[string]func(T) string
	SortKeys     map[string]SortKey[T]
	DefaultSort  string // clave usada cuando Query.Sort es nil; vacío conserva el orden de entrada
}

// Run aplica Query sobre items con el idioma por defecto.
func Run[T any](items []T, schema Schema[T], q Query) ([]T, error) {
	return RunIn(DefaultLocale, items, schema, q)
}

// RunIn filtra (búsqueda AND filtros) y luego ordena de forma estable. Devuelve un slice nuevo.
// Un campo de filtro o una clave de orden desconocidos producen ErrValidationFailed.
func RunIn[T any](locale language.Tag, items []T, schema Schema[T], q Query) ([]T, error) {
	filters, err := resolveFilters(schema, q.Filters)
	if err != nil {
		return nil, err
	}
	sortKey, dir, hasSort, err := resolveSort(schema, q.Sort)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if matchesSearch(schema.SearchFields, it, needle) && matchesFilters(filters, it) {
			out = append(out, it)
		}
	}
	if !hasSort {
		return out, nil
	}

	// el collator no es seguro para uso concurrente: uno por llamada
	col := collate.New(locale, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b T) int {
		c := compare(col, sortKey, a, b)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out, nil
}

type boundFilter[T any] struct {
	get   func(T) string
	value string
}

func resolveFilters[T any](schema Schema[T], filters []Filter) ([]boundFilter[T], error) {
	out := make([]boundFilter[T], 0, len(filters))
	for _, f := range filters {
		get, ok := schema.FilterFields[f.Field]
		if !ok {
			return nil, fmt.Errorf("%w: filtro desconocido %q", domain.ErrValidationFailed, f.Field)
		}
		if f.Value == "" || f.Value == AllValue {
			continue
		}
		out = append(out, boundFilter[T]{get: get, value: f.Value})
	}
	return out, nil
}

func resolveSort[T any](schema Schema[T], s *Sort) (SortKey[T], Direction, bool, error) {
	key, dir := schema.DefaultSort, Direction("")
	if s != nil && s.Key != "" {
		key, dir = s.Key, s.Direction
	}
	if key == "" {
		return SortKey[T]{}, "", false, nil
	}
	sk, ok := schema.SortKeys[key]
	if !ok {
		return SortKey[T]{}, "", false, fmt.Errorf("%w: orden desconocido %q", domain.ErrValidationFailed, key)
	}
	switch dir {
	case "":
		dir = sk.defaultDirection()
	case Asc, Desc:
	default:
		return SortKey[T]{}, "", false, fmt.Errorf("%w: dirección %q", domain.ErrValidationFailed, dir)
	}
	return sk, dir, true, nil
}

func matchesSearch[T any](fields []func(T) string, it T, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f(it)), needle) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](filters []boundFilter[T], it T) bool {
	for _, f := range filters {
		if f.get(it) != f.value {
			return false
		}
	}
	return true
}

func compare[T any](col *collate.Collator, k SortKey[T], a, b T) int {
	switch k.kind {
	case kindNumber:
		return k.num(a).Cmp(k.num(b))
	case kindDate:
		return k.date(a).Compare(k.date(b))
	default:
		return col.CompareString(k.str(a), k.str(b))
	}
}
