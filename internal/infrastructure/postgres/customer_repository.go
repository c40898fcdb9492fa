package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/pagination"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	"github.com/jhoicas/clientes-api/internal/domain/search"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// Columnas por propiedad de Customer. Solo estas pueden llegar a ORDER BY / WHERE.
var customerColumns = map[string]string{
	pagination.SortByID:        "id",
	pagination.SortByFirstName: "first_name",
	pagination.SortByLastName:  "last_name",
	pagination.SortByEmail:     "email",
}

const customerSelect = `SELECT id, first_name, last_name, email FROM customers`

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL (usable con pool o tx).
//
// Tabla esperada:
//
//	customers(id BIGSERIAL PRIMARY KEY, first_name VARCHAR(50) NOT NULL,
//	          last_name VARCHAR(50) NOT NULL, email VARCHAR(255) NOT NULL)
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Insert persiste un nuevo cliente; el ID lo asigna la secuencia.
func (r *CustomerRepo) Insert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	query := `
		INSERT INTO customers (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, email`
	out, err := scanCustomer(r.q.QueryRow(ctx, query, customer.FirstName, customer.LastName, customer.Email))
	if err != nil {
		return nil, wrapErr("insert customer", err)
	}
	return out, nil
}

// FindByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	out, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get customer", err)
	}
	return out, nil
}

// FindAll cuenta las coincidencias y trae la página pedida.
func (r *CustomerRepo) FindAll(ctx context.Context, filter search.CustomerPredicate, page pagination.Request) ([]*entity.Customer, int64, error) {
	where, args := buildWhere(filter)

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count customers", err)
	}
	if total == 0 || int64(page.Offset()) >= total {
		return []*entity.Customer{}, total, nil
	}

	query, args := buildListQuery(filter, page)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list customers", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0, page.Size)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list customers", err)
	}
	return list, total, nil
}

// Save inserta o reemplaza por ID (upsert).
func (r *CustomerRepo) Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if customer.IsNew() {
		return r.Insert(ctx, customer)
	}
	query := `
		INSERT INTO customers (id, first_name, last_name, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, email = EXCLUDED.email
		RETURNING id, first_name, last_name, email`
	out, err := scanCustomer(r.q.QueryRow(ctx, query, customer.ID, customer.FirstName, customer.LastName, customer.Email))
	if err != nil {
		return nil, wrapErr("save customer", err)
	}
	return out, nil
}

// DeleteByID elimina un cliente; domain.ErrNotFound si no había fila.
func (r *CustomerRepo) DeleteByID(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete customer", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// buildWhere traduce el predicado a un WHERE parametrizado ("" si no filtra).
func buildWhere(filter search.CustomerPredicate) (string, []any) {
	if filter.Unconditional() {
		return "", nil
	}
	conds := make([]string, 0, 3)
	for _, f := range filter.Fields() {
		conds = append(conds, fmt.Sprintf(`LOWER(%s) LIKE $1 ESCAPE '\'`, customerColumns[f]))
	}
	return " WHERE (" + strings.Join(conds, " OR ") + ")", []any{filter.LikePattern()}
}

// buildOrderBy orden pedido con id como desempate.
func buildOrderBy(s pagination.Sort) string {
	s = s.OrDefault()
	col, ok := customerColumns[s.Property]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	if col == "id" {
		return " ORDER BY id " + dir
	}
	return " ORDER BY " + col + " " + dir + ", id ASC"
}

func buildListQuery(filter search.CustomerPredicate, page pagination.Request) (string, []any) {
	where, args := buildWhere(filter)
	n := len(args)
	query := customerSelect + where + buildOrderBy(page.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	return query, append(args, page.Size, page.Offset())
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email); err != nil {
		return nil, err
	}
	return &c, nil
}
