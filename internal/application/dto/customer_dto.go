package dto

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id.
// No lleva id: el destino de un update sale siempre del path.
type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// CustomerPageResponse listado paginado de clientes.
type CustomerPageResponse = PageResponse[CustomerResponse]

// ListCustomersQuery parámetros de GET /api/customers.
type ListCustomersQuery struct {
	Name string
	Page int
	Size int
	Sort string
}
