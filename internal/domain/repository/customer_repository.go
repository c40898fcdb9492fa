package repository

import (
	"context"

	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/pagination"
	"github.com/jhoicas/clientes-api/internal/domain/search"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Cada método es un único viaje al store; no hay reintentos.
type CustomerRepository interface {
	// Insert persiste un cliente nuevo y devuelve la copia con el ID asignado.
	Insert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	// FindByID devuelve (nil, nil) si el ID no existe.
	FindByID(ctx context.Context, id int64) (*entity.Customer, error)
	// FindAll aplica el filtro, ordena y corta según la página. El total es el
	// número de coincidencias antes de cortar.
	FindAll(ctx context.Context, filter search.CustomerPredicate, page pagination.Request) ([]*entity.Customer, int64, error)
	// Save inserta o reemplaza por ID.
	Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	// DeleteByID devuelve domain.ErrNotFound si el ID no existe.
	DeleteByID(ctx context.Context, id int64) error
}

// Pinger lo implementan los stores que pueden verificar su conexión.
type Pinger interface {
	Ping(ctx context.Context) error
}
