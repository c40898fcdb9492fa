package http

import (
	"errors"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/clientes-api/internal/application/dto"
	"github.com/jhoicas/clientes-api/internal/domain"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

const msgInternal = "Ocurrió un error inesperado"

// NewErrorHandler traduce los errores devueltos por los handlers al cuerpo
// uniforme {timestamp, message, path, errorCode}. Se instala como
// fiber.Config.ErrorHandler, por lo que también cubre rutas inexistentes y pánicos recuperados.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, code, message := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", GetRequestID(c)).
				Msg("error no controlado")
		}
		return respondError(c, status, code, message)
	}
}

// classify devuelve status HTTP, código y mensaje para err.
func classify(err error) (int, string, string) {
	var (
		vErr  *domain.ValidationError
		nfErr *domain.NotFoundError
		fErr  *fiber.Error
	)
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest, dto.CodeValidationFailed, vErr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.CodeValidationFailed, err.Error()
	case errors.As(err, &nfErr):
		return fiber.StatusNotFound, dto.CodeNotFound, nfErr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.CodeNotFound, err.Error()
	case errors.As(err, &fErr):
		return fErr.Code, codeForStatus(fErr.Code), fErr.Message
	default:
		return fiber.StatusInternalServerError, dto.CodeInternal, msgInternal
	}
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return dto.CodeNotFound
	case status == fiber.StatusBadRequest, status == fiber.StatusUnprocessableEntity:
		return dto.CodeValidationFailed
	case status >= fiber.StatusInternalServerError:
		return dto.CodeInternal
	default:
		return strings.ToUpper(strings.ReplaceAll(nethttp.StatusText(status), " ", "_"))
	}
}

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Timestamp: time.Now(),
		Message:   message,
		Path:      c.Path(),
		ErrorCode: code,
	})
}
