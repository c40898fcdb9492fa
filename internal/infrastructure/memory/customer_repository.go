// Package memory implementa el store de clientes en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/pagination"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	"github.com/jhoicas/clientes-api/internal/domain/search"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.Pinger             = (*CustomerRepo)(nil)
)

// CustomerRepo guarda copias de los clientes; nunca expone punteros internos.
type CustomerRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]entity.Customer
}

// NewCustomerRepository construye un store vacío.
func NewCustomerRepository() *CustomerRepo {
	return &CustomerRepo{rows: make(map[int64]entity.Customer)}
}

// Ping siempre responde; existe para el health check.
func (r *CustomerRepo) Ping(context.Context) error { return nil }

// Insert asigna el siguiente ID secuencial.
func (r *CustomerRepo) Insert(_ context.Context, customer *entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	row := *customer
	row.ID = r.nextID
	r.rows[row.ID] = row
	return &row, nil
}

// FindByID devuelve (nil, nil) si no existe.
func (r *CustomerRepo) FindByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// FindAll evalúa el predicado en memoria, ordena y corta la página.
func (r *CustomerRepo) FindAll(_ context.Context, filter search.CustomerPredicate, page pagination.Request) ([]*entity.Customer, int64, error) {
	r.mu.RLock()
	matched := make([]*entity.Customer, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		if filter.Match(&row) {
			matched = append(matched, &row)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, less(matched, page.Sort.OrDefault()))
	return pagination.Slice(matched, page), int64(len(matched)), nil
}

// Save reemplaza el registro con el mismo ID o inserta si es nuevo.
func (r *CustomerRepo) Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if customer.IsNew() {
		return r.Insert(ctx, customer)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	row := *customer
	r.rows[row.ID] = row
	if row.ID > r.nextID {
		r.nextID = row.ID
	}
	return &row, nil
}

// DeleteByID devuelve domain.ErrNotFound si el ID no existe.
func (r *CustomerRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// less ordena por la propiedad pedida con id ascendente como desempate.
func less(rows []*entity.Customer, s pagination.Sort) func(i, j int) bool {
	key := func(c *entity.Customer) string {
		switch s.Property {
		case pagination.SortByFirstName:
			return c.FirstName
		case pagination.SortByLastName:
			return c.LastName
		case pagination.SortByEmail:
			return c.Email
		}
		return ""
	}
	return func(i, j int) bool {
		a, b := rows[i], rows[j]
		if s.Property != pagination.SortByID {
			if cmp := strings.Compare(key(a), key(b)); cmp != 0 {
				if s.Descending {
					return cmp > 0
				}
				return cmp < 0
			}
			return a.ID < b.ID
		}
		if s.Descending {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	}
}
