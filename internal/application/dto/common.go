package dto

import "time"

// Códigos de error expuestos en ErrorResponse.ErrorCode.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInternal         = "INTERNAL_ERROR"
)

// PageResponse página de resultados en respuestas.
type PageResponse[T any] struct {
	Items         []T   `json:"items"`
	PageIndex     int   `json:"pageIndex"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	IsFirst       bool  `json:"isFirst"`
	IsLast        bool  `json:"isLast"`
}

// ErrorResponse cuerpo de error HTTP (todas las respuestas no 2xx).
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	ErrorCode string    `json:"errorCode"`
}
