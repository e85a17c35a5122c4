// Package validator valida DTOs de entrada con go-playground/validator y
// traduce los fallos a errores de dominio por campo (nombre JSON).
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Los errores se reportan con el nombre del campo JSON.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct valida s. Devuelve nil o un *domain.ValidationError de tipo ErrInvalidInput.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.ValidationError{
			Kind:   domain.ErrInvalidInput,
			Fields: []domain.FieldError{{Field: "body", Message: err.Error()}},
		}
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
			Value:   printable(fe.Value()),
		})
	}
	return &domain.ValidationError{Kind: domain.ErrInvalidInput, Fields: fields}
}

// fieldPath quita el nombre del struct raíz: "Req.recipients.type" -> "recipients.type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", field)
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s debe tener al menos %s elementos", field, param)
		}
		return fmt.Sprintf("%s debe ser mayor o igual a %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", field, param)
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s admite como máximo %s elementos", field, param)
		}
		return fmt.Sprintf("%s debe ser menor o igual a %s", field, param)
	case "len":
		return fmt.Sprintf("%s debe tener exactamente %s caracteres", field, param)
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", field, param)
	case "alpha":
		return fmt.Sprintf("%s solo admite letras", field)
	case "url":
		return fmt.Sprintf("%s debe ser una URL válida", field)
	default:
		return fmt.Sprintf("%s no cumple la regla '%s'", field, fe.Tag())
	}
}

// printable omite valores vacíos y punteros nil en la respuesta.
func printable(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return printable(rv.Elem().Interface())
	case reflect.String:
		if rv.Len() == 0 {
			return nil
		}
	case reflect.Struct, reflect.Slice, reflect.Map:
		return nil
	}
	return v
}
