package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/internal/domain/validation"
)

func validationErr(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr), "se esperaba *domain.ValidationError, llegó %T", err)
	return vErr
}

func TestValidateCustomer_EntradaValida(t *testing.T) {
	assert.NoError(t, validation.ValidateCustomer("Ann", "Lee", "ann@x.com"))
	assert.NoError(t, validation.ValidateCustomer(strings.Repeat("a", 50), strings.Repeat("ñ", 50), "first.last+tag@sub.example.org"))
}

func TestValidateCustomer_NombreVacio(t *testing.T) {
	vErr := validationErr(t, validation.ValidateCustomer("", "Doe", "a@b.com"))
	assert.Equal(t, []string{"firstName"}, vErr.Fields())
	assert.Equal(t, validation.MsgFirstNameBlank, vErr.Violations[0].Message)
	assert.True(t, errors.Is(vErr, domain.ErrInvalidInput))
}

func TestValidateCustomer_SoloEspaciosEsVacio(t *testing.T) {
	vErr := validationErr(t, validation.ValidateCustomer("Ann", " \t ", "a@b.com"))
	assert.Equal(t, []string{"lastName"}, vErr.Fields())
	assert.Equal(t, validation.MsgLastNameBlank, vErr.Violations[0].Message)
}

func TestValidateCustomer_LongitudMaxima(t *testing.T) {
	long := strings.Repeat("x", 51)
	vErr := validationErr(t, validation.ValidateCustomer(long, long, "a@b.com"))
	assert.Equal(t, []string{"firstName", "lastName"}, vErr.Fields())
	assert.Equal(t, validation.MsgFirstNameTooLong, vErr.Violations[0].Message)
	assert.Equal(t, validation.MsgLastNameTooLong, vErr.Violations[1].Message)
}

func TestValidateCustomer_LongitudEnRunasNoEnBytes(t *testing.T) {
	// 50 runas de 2 bytes cada una: válido.
	assert.NoError(t, validation.ValidateCustomer(strings.Repeat("é", 50), "Lee", "a@b.com"))
}

func TestValidateCustomer_Email(t *testing.T) {
	cases := []struct {
		email string
		msg   string
	}{
		{"", validation.MsgEmailBlank},
		{"   ", validation.MsgEmailBlank},
		{"no-arroba", validation.MsgEmailInvalid},
		{"a@b", validation.MsgEmailInvalid},
		{"@b.com", validation.MsgEmailInvalid},
		{"a@@b.com", validation.MsgEmailInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			vErr := validationErr(t, validation.ValidateCustomer("Ann", "Lee", tc.email))
			require.Len(t, vErr.Violations, 1)
			assert.Equal(t, "email", vErr.Violations[0].Field)
			assert.Equal(t, tc.msg, vErr.Violations[0].Message)
		})
	}
}

func TestValidateCustomer_ReportaTodasLasViolaciones(t *testing.T) {
	vErr := validationErr(t, validation.ValidateCustomer("", "", "malo"))
	assert.Equal(t, []string{"firstName", "lastName", "email"}, vErr.Fields())
	assert.Equal(t,
		"firstName: El nombre no puede estar vacío, lastName: El apellido no puede estar vacío, email: El formato del email no es válido",
		vErr.Error())
}
