// Package validation contiene las reglas de entrada que se aplican antes de
// cualquier escritura en el store.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/jhoicas/clientes-api/internal/domain"
)

// MaxNameLength longitud máxima (en caracteres) de nombre y apellido.
const MaxNameLength = 50

// Campos validados, con el nombre que se expone en la API.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// Mensajes de validación expuestos al cliente HTTP.
const (
	MsgFirstNameBlank   = "El nombre no puede estar vacío"
	MsgFirstNameTooLong = "El nombre no puede tener más de 50 caracteres"
	MsgLastNameBlank    = "El apellido no puede estar vacío"
	MsgLastNameTooLong  = "El apellido no puede tener más de 50 caracteres"
	MsgEmailBlank       = "El email no puede estar vacío"
	MsgEmailInvalid     = "El formato del email no es válido"
)

// ValidateCustomer aplica todas las reglas de Customer y devuelve nil o un
// *domain.ValidationError con todas las violaciones (orden: firstName, lastName, email).
func ValidateCustomer(firstName, lastName, email string) error {
	var violations []domain.FieldViolation
	add := func(field, msg string) {
		violations = append(violations, domain.FieldViolation{Field: field, Message: msg})
	}

	switch {
	case isBlank(firstName):
		add(FieldFirstName, MsgFirstNameBlank)
	case utf8.RuneCountInString(firstName) > MaxNameLength:
		add(FieldFirstName, MsgFirstNameTooLong)
	}

	switch {
	case isBlank(lastName):
		add(FieldLastName, MsgLastNameBlank)
	case utf8.RuneCountInString(lastName) > MaxNameLength:
		add(FieldLastName, MsgLastNameTooLong)
	}

	switch {
	case isBlank(email):
		add(FieldEmail, MsgEmailBlank)
	case !govalidator.IsEmail(email):
		add(FieldEmail, MsgEmailInvalid)
	}

	if len(violations) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: violations}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
