package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

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

type customerModel struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID        int64  `bun:"id,pk,autoincrement"`
	FirstName string `bun:"first_name,type:varchar(50),notnull"`
	LastName  string `bun:"last_name,type:varchar(50),notnull"`
	Email     string `bun:"email,type:varchar(255),notnull"`
}

var customerColumns = map[string]string{
	pagination.SortByID:        "id",
	pagination.SortByFirstName: "first_name",
	pagination.SortByLastName:  "last_name",
	pagination.SortByEmail:     "email",
}

// CustomerRepo implementación de CustomerRepository con el query builder de bun.
type CustomerRepo struct {
	db bun.IDB
}

// NewCustomerRepository construye el adaptador. Acepta *bun.DB o bun.Tx.
func NewCustomerRepository(db bun.IDB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Ping verifica la conexión cuando el adaptador está sobre *bun.DB.
func (r *CustomerRepo) Ping(ctx context.Context) error {
	if db, ok := r.db.(*bun.DB); ok {
		return db.PingContext(ctx)
	}
	return nil
}

func (r *CustomerRepo) Insert(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	m := toModel(customer)
	m.ID = 0
	if _, err := r.db.NewInsert().Model(m).Exec(ctx); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	m := new(customerModel)
	err := r.db.NewSelect().Model(m).Where("? = ?", bun.Ident("id"), id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepo) FindAll(ctx context.Context, filter search.CustomerPredicate, page pagination.Request) ([]*entity.Customer, int64, error) {
	var rows []customerModel
	query := r.db.NewSelect().Model(&rows)
	if !filter.Unconditional() {
		pattern := filter.LikePattern()
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, f := range filter.Fields() {
				q = q.WhereOr("?(?) LIKE ? ESCAPE ?", bun.Safe(foldFunc), bun.Ident(customerColumns[f]), pattern, `\`)
			}
			return q
		})
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	if total == 0 || page.Offset() >= total {
		return []*entity.Customer{}, int64(total), nil
	}

	s := page.Sort.OrDefault()
	dir := "ASC"
	if s.Descending {
		dir = "DESC"
	}
	col, ok := customerColumns[s.Property]
	if !ok {
		col = "id"
	}
	query = query.OrderExpr("? "+dir, bun.Ident(col))
	if col != "id" {
		query = query.OrderExpr("? ASC", bun.Ident("id"))
	}
	if err := query.Limit(page.Size).Offset(page.Offset()).Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}

	out := make([]*entity.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, int64(total), nil
}

func (r *CustomerRepo) Save(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if customer.IsNew() {
		return r.Insert(ctx, customer)
	}
	m := toModel(customer)
	_, err := r.db.NewInsert().
		Model(m).
		On("CONFLICT (id) DO UPDATE").
		Set("first_name = EXCLUDED.first_name").
		Set("last_name = EXCLUDED.last_name").
		Set("email = EXCLUDED.email").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return m.toEntity(), nil
}

func (r *CustomerRepo) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*customerModel)(nil)).
		Where("? = ?", bun.Ident("id"), id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toModel(c *entity.Customer) *customerModel {
	return &customerModel{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email}
}

func (m *customerModel) toEntity() *entity.Customer {
	return &entity.Customer{ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Email: m.Email}
}
