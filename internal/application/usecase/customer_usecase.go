package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/pagination"
	"github.com/jhoicas/clientes-api/internal/domain/repository"
	"github.com/jhoicas/clientes-api/internal/domain/search"
	"github.com/jhoicas/clientes-api/internal/domain/validation"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

const customerResource = "Customer"

// CustomerUseCase casos de uso CRUD para clientes: validación, búsqueda
// paginada y traducción entidad -> DTO. Los errores del store se propagan sin reintentos.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	log  *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{repo: repo, log: log}
}

// Create valida la entrada y persiste un cliente nuevo.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.ValidateCustomer(in.FirstName, in.LastName, in.Email); err != nil {
		return nil, err
	}
	saved, err := uc.repo.Insert(ctx, &entity.Customer{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	uc.log.Info().Int64("customer_id", saved.ID).Msg("cliente creado")
	return toCustomerResponse(saved), nil
}

// List busca por palabra clave (opcional) y devuelve la página solicitada.
func (uc *CustomerUseCase) List(ctx context.Context, q dto.ListCustomersQuery) (*dto.CustomerPageResponse, error) {
	sort, err := pagination.ParseSort(q.Sort)
	if err != nil {
		return nil, err
	}
	req := pagination.NewRequest(q.Page, q.Size, sort)
	items, total, err := uc.repo.FindAll(ctx, search.ContainsKeyword(q.Name), req)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	page := pagination.Map(pagination.NewPage(items, req, total), func(c *entity.Customer) dto.CustomerResponse {
		return *toCustomerResponse(c)
	})
	return toPageResponse(page), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update reemplaza nombre, apellido y email del cliente identificado por id.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCustomer(in.FirstName, in.LastName, in.Email); err != nil {
		return nil, err
	}
	customer.FirstName = in.FirstName
	customer.LastName = in.LastName
	customer.Email = in.Email
	saved, err := uc.repo.Save(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("actualizar cliente: %w", err)
	}
	uc.log.Info().Int64("customer_id", saved.ID).Msg("cliente actualizado")
	return toCustomerResponse(saved), nil
}

// Delete elimina un cliente. Un ID inexistente devuelve *domain.NotFoundError.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return &domain.NotFoundError{Resource: customerResource, ID: id}
		}
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	uc.log.Info().Int64("customer_id", id).Msg("cliente eliminado")
	return nil
}

func (uc *CustomerUseCase) find(ctx context.Context, id int64) (*entity.Customer, error) {
	customer, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Resource: customerResource, ID: id}
	}
	return customer, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}
}

func toPageResponse[T any](p pagination.Page[T]) *dto.PageResponse[T] {
	return &dto.PageResponse[T]{
		Items:         p.Items,
		PageIndex:     p.Index,
		PageSize:      p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		IsFirst:       p.First,
		IsLast:        p.Last,
	}
}
