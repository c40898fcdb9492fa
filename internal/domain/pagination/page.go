// Package pagination convierte índice + tamaño de página en un corte acotado
// y ordenado de resultados con metadatos de totales.
package pagination

import (
	"fmt"
	"math"
	"strings"

	"github.com/jhoicas/clientes-api/internal/domain"
)

const (
	// DefaultSize tamaño de página cuando no se indica o es inválido.
	DefaultSize = 5
	// MaxSize tope del tamaño de página.
	MaxSize = 2000
)

// Propiedades por las que se permite ordenar.
const (
	SortByID        = "id"
	SortByFirstName = "firstName"
	SortByLastName  = "lastName"
	SortByEmail     = "email"
)

var sortable = map[string]bool{
	SortByID:        true,
	SortByFirstName: true,
	SortByLastName:  true,
	SortByEmail:     true,
}

// Sort orden solicitado. El valor cero ordena por id ascendente.
type Sort struct {
	Property   string
	Descending bool
}

// ByID orden por defecto (id ascendente, orden de inserción).
var ByID = Sort{Property: SortByID}

// ParseSort interpreta "propiedad" o "propiedad,asc|desc" (formato del parámetro sort).
func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ByID, nil
	}
	prop, dir, _ := strings.Cut(raw, ",")
	prop = strings.TrimSpace(prop)
	if !sortable[prop] {
		return Sort{}, domain.NewValidationError("sort", fmt.Sprintf("No se puede ordenar por '%s'", prop))
	}
	s := Sort{Property: prop}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
	case "desc":
		s.Descending = true
	default:
		return Sort{}, domain.NewValidationError("sort", fmt.Sprintf("Dirección de orden inválida '%s'", dir))
	}
	return s, nil
}

// OrDefault devuelve ByID si s es el valor cero.
func (s Sort) OrDefault() Sort {
	if s.Property == "" {
		return ByID
	}
	return s
}

func (s Sort) String() string {
	s = s.OrDefault()
	if s.Descending {
		return s.Property + ",desc"
	}
	return s.Property + ",asc"
}

// Request página solicitada. Index parte de 0.
type Request struct {
	Index int
	Size  int
	Sort  Sort
}

// NewRequest normaliza los valores: índice negativo => 0, tamaño < 1 => DefaultSize,
// tamaño > MaxSize => MaxSize.
func NewRequest(index, size int, sort Sort) Request {
	if index < 0 {
		index = 0
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Request{Index: index, Size: size, Sort: sort.OrDefault()}
}

// Offset primer elemento de la página dentro del conjunto completo.
// Satura en math.MaxInt: un índice enorme queda siempre más allá del total.
func (r Request) Offset() int {
	if r.Index <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Index > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Index * r.Size
}

// Page corte de resultados con metadatos.
type Page[T any] struct {
	Items         []T
	Index         int
	Size          int
	TotalElements int64
	TotalPages    int
	First         bool
	Last          bool
}

// NewPage arma la página a partir de los elementos ya cortados y el total filtrado.
// Un índice más allá de la última página produce Items vacío y Last = true.
func NewPage[T any](items []T, req Request, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(total, req.Size)
	return Page[T]{
		Items:         items,
		Index:         req.Index,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Index == 0,
		Last:          req.Index >= totalPages-1,
	}
}

// TotalPages ceil(total / size).
func TotalPages(total int64, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) > 0 {
		pages++
	}
	return int(pages)
}

// Slice corta en memoria un conjunto ya filtrado y ordenado.
func Slice[T any](all []T, req Request) []T {
	start := req.Offset()
	if start < 0 || start >= len(all) {
		return []T{}
	}
	end := len(all)
	if req.Size < end-start {
		end = start + req.Size
	}
	out := make([]T, end-start)
	copy(out, all[start:end])
	return out
}

// Map transforma los elementos conservando los metadatos.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return Page[U]{
		Items:         items,
		Index:         p.Index,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
