package dto

import (
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

// Valores de Envelope.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope respuesta uniforme de toda la API.
type Envelope struct {
	Status     string              `json:"status"`
	Code       string              `json:"code,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Message    string              `json:"message,omitempty"`
	Count      *int                `json:"count,omitempty"`
	Total      *int                `json:"total,omitempty"`
	Pagination *Pagination         `json:"pagination,omitempty"`
	Errors     []domain.FieldError `json:"errors,omitempty"`
}

// Pagination cursores de la página anterior/siguiente, solo si existen.
type Pagination struct {
	Next *query.Cursor `json:"next,omitempty"`
	Prev *query.Cursor `json:"prev,omitempty"`
}

// Success envuelve data en un envelope exitoso.
func Success(data any, message string) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Message: message}
}

// List envuelve un resultado paginado.
func List[T any](res query.Result[T]) Envelope {
	count := len(res.Items)
	total := res.Total
	env := Envelope{Status: StatusSuccess, Data: res.Items, Count: &count, Total: &total}
	if res.Next != nil || res.Prev != nil {
		env.Pagination = &Pagination{Next: res.Next, Prev: res.Prev}
	}
	return env
}

// Failure envelope de error. code es un identificador estable (NOT_FOUND,
// VALIDATION, ...) y fields los errores por campo, si los hay.
func Failure(code, message string, fields []domain.FieldError) Envelope {
	return Envelope{Status: StatusError, Code: code, Message: message, Errors: fields}
}

// StatusUpdateRequest cambio de estado genérico.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
