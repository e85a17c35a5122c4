package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// FieldError describe el fallo de un campo concreto de la entrada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationError agrupa errores por campo. Kind es uno de los sentinelas
// (ErrInvalidInput, ErrDuplicate, ErrConflict) y permite usar errors.Is.
type ValidationError struct {
	Kind   error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Kind.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return e.Kind.Error() + " (" + strings.Join(msgs, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// NewFieldError construye un ValidationError de un solo campo.
func NewFieldError(kind error, field, message string, value any) *ValidationError {
	return &ValidationError{
		Kind:   kind,
		Fields: []FieldError{{Field: field, Message: message, Value: value}},
	}
}

// FieldErrors devuelve los errores por campo de err, o nil si no es un ValidationError.
func FieldErrors(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
