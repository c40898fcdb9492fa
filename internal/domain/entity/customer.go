package entity

// Customer representa un cliente. ID == 0 indica que aún no ha sido persistido.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}

// IsNew indica si el cliente todavía no tiene ID asignado por el store.
func (c *Customer) IsNew() bool {
	return c.ID == 0
}
