package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/application/usecase"
	"github.com/jhoicas/clientes-api/internal/domain/entity"
	"github.com/jhoicas/clientes-api/internal/domain/pagination"
	"github.com/jhoicas/clientes-api/internal/domain/search"
	"github.com/jhoicas/clientes-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/clientes-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T, seed ...entity.Customer) *fiber.App {
	t.Helper()
	repo := memory.NewCustomerRepository()
	for i := range seed {
		_, err := repo.Insert(context.Background(), &seed[i])
		require.NoError(t, err)
	}
	return apphttp.NewApp(apphttp.RouterDeps{
		AppName:    "clientes-api-test",
		CustomerUC: usecase.NewCustomerUseCase(repo, nil),
		Pinger:     repo,
	})
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func annAndBob() []entity.Customer {
	return []entity.Customer{
		{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"},
		{FirstName: "Bob", LastName: "Lee", Email: "bob@x.com"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/customers
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Retorna201ConLocation(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/customers",
		`{"firstName":"Ann","lastName":"Lee","email":"ann@x.com"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/customers/1", resp.Header.Get("Location"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	out := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, dto.CustomerResponse{ID: 1, FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"}, out)
}

func TestCreate_IgnoraIDDelBody(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	resp := doRequest(t, app, http.MethodPost, "/api/customers",
		`{"id":1,"firstName":"Carla","lastName":"Ruiz","email":"carla@x.com"}`)
	out := decode[dto.CustomerResponse](t, resp)
	assert.EqualValues(t, 3, out.ID)
}

func TestCreate_ValidacionRetorna400(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/customers",
		`{"firstName":"","lastName":"Doe","email":"a@b.com"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_FAILED", body.ErrorCode)
	assert.Equal(t, "firstName: El nombre no puede estar vacío", body.Message)
	assert.Equal(t, "/api/customers", body.Path)
	assert.False(t, body.Timestamp.IsZero())
}

func TestCreate_VariasViolaciones(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/customers", `{"firstName":"","lastName":"","email":"x"}`)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Message, "firstName:")
	assert.Contains(t, body.Message, "lastName:")
	assert.Contains(t, body.Message, "email: El formato del email no es válido")
}

func TestCreate_CuerpoMalformado(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPost, "/api/customers", `{"firstName":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION_FAILED", body.ErrorCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/customers
// ──────────────────────────────────────────────────────────────────────────────

func TestList_BuscaPorApellido(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	resp := doRequest(t, app, http.MethodGet, "/api/customers?name=lee&page=0&size=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page := decode[dto.CustomerPageResponse](t, resp)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ann", page.Items[0].FirstName)
	assert.Equal(t, "Bob", page.Items[1].FirstName)
	assert.EqualValues(t, 2, page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.IsFirst)
	assert.True(t, page.IsLast)
}

func TestList_ValoresPorDefecto(t *testing.T) {
	seed := make([]entity.Customer, 0, 7)
	for _, n := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		seed = append(seed, entity.Customer{FirstName: n, LastName: "Test", Email: strings.ToLower(n) + "@x.com"})
	}
	app := buildTestApp(t, seed...)

	resp := doRequest(t, app, http.MethodGet, "/api/customers", "")
	page := decode[dto.CustomerPageResponse](t, resp)
	assert.Len(t, page.Items, pagination.DefaultSize)
	assert.Equal(t, 0, page.PageIndex)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.IsLast)

	resp = doRequest(t, app, http.MethodGet, "/api/customers?page=abc&size=-1", "")
	page = decode[dto.CustomerPageResponse](t, resp)
	assert.Equal(t, 0, page.PageIndex)
	assert.Equal(t, 5, page.PageSize)
}

func TestList_PaginaMasAllaDelFinal(t *testing.T) {
	app := buildTestApp(t, append(annAndBob(), entity.Customer{FirstName: "Carla", LastName: "Ruiz", Email: "c@x.com"})...)
	resp := doRequest(t, app, http.MethodGet, "/api/customers?page=1&size=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw := decode[map[string]any](t, resp)
	assert.Equal(t, []any{}, raw["items"], "items vacío, nunca null")
	assert.EqualValues(t, 3, raw["totalElements"])
	assert.EqualValues(t, 1, raw["totalPages"])
	assert.Equal(t, true, raw["isLast"])
	assert.Equal(t, false, raw["isFirst"])
}

func TestList_IndiceEnormeNoDesborda(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	for _, target := range []string{
		"/api/customers?page=4611686018427387904&size=4",
		"/api/customers?page=2000000000000000000&size=5",
		"/api/customers?page=9223372036854775807&size=2000",
	} {
		resp := doRequest(t, app, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, target)

		page := decode[dto.CustomerPageResponse](t, resp)
		assert.Empty(t, page.Items, target)
		assert.EqualValues(t, 2, page.TotalElements, target)
		assert.True(t, page.IsLast, target)
		assert.False(t, page.IsFirst, target)
	}
}

func TestList_Orden(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	page := decode[dto.CustomerPageResponse](t, doRequest(t, app, http.MethodGet, "/api/customers?sort=firstName,desc", ""))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Bob", page.Items[0].FirstName)

	resp := doRequest(t, app, http.MethodGet, "/api/customers?sort=password", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", decode[dto.ErrorResponse](t, resp).ErrorCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET/PUT/DELETE /api/customers/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)

	resp := doRequest(t, app, http.MethodGet, "/api/customers/2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bob@x.com", decode[dto.CustomerResponse](t, resp).Email)

	resp = doRequest(t, app, http.MethodGet, "/api/customers/99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "Customer con id 99 no se encuentra", body.Message)
	assert.Equal(t, "/api/customers/99", body.Path)
}

func TestGetByID_IDInvalido(t *testing.T) {
	app := buildTestApp(t)
	for _, id := range []string{"abc", "0", "-4"} {
		resp := doRequest(t, app, http.MethodGet, "/api/customers/"+id, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
		assert.Equal(t, "VALIDATION_FAILED", decode[dto.ErrorResponse](t, resp).ErrorCode)
	}
}

func TestUpdate_ReemplazaCampos(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	resp := doRequest(t, app, http.MethodPut, "/api/customers/1",
		`{"id":2,"firstName":"Anna","lastName":"Lee","email":"anna@x.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, dto.CustomerResponse{ID: 1, FirstName: "Anna", LastName: "Lee", Email: "anna@x.com"}, out)

	bob := decode[dto.CustomerResponse](t, doRequest(t, app, http.MethodGet, "/api/customers/2", ""))
	assert.Equal(t, "Bob", bob.FirstName, "el id del body no cambia el destino")
}

func TestUpdate_Inexistente404(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodPut, "/api/customers/99",
		`{"firstName":"Ann","lastName":"Lee","email":"ann@x.com"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).ErrorCode)
}

func TestUpdate_Validacion400(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)
	resp := doRequest(t, app, http.MethodPut, "/api/customers/1",
		`{"firstName":"Ann","lastName":"Lee","email":"sin-arroba"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email: El formato del email no es válido", decode[dto.ErrorResponse](t, resp).Message)
}

func TestDelete(t *testing.T) {
	app := buildTestApp(t, annAndBob()...)

	resp := doRequest(t, app, http.MethodDelete, "/api/customers/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/customers/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).ErrorCode)

	resp = doRequest(t, app, http.MethodGet, "/api/customers/1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Error mapper, health y request id
// ──────────────────────────────────────────────────────────────────────────────

func TestRutaInexistente_UsaPayloadUniforme(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
	assert.Equal(t, "/api/orders", body.Path)
}

type failingRepo struct{ memory.CustomerRepo }

func (*failingRepo) FindAll(context.Context, search.CustomerPredicate, pagination.Request) ([]*entity.Customer, int64, error) {
	return nil, 0, errors.New("conexión rechazada")
}

func (*failingRepo) Ping(context.Context) error { return errors.New("conexión rechazada") }

func TestErrorDelStore_Retorna500Generico(t *testing.T) {
	repo := &failingRepo{}
	app := apphttp.NewApp(apphttp.RouterDeps{CustomerUC: usecase.NewCustomerUseCase(repo, nil), Pinger: repo})

	resp := doRequest(t, app, http.MethodGet, "/api/customers", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.NotContains(t, body.Message, "conexión rechazada", "no se filtran detalles internos")

	resp = doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	resp := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])
}

func TestRequestID_SeRespeta(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
