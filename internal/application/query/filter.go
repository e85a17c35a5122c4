// Package query aplica búsqueda, filtros exactos y paginación sobre colecciones
// en memoria. Es el mismo algoritmo para todos los recursos y nunca modifica la
// colección de entrada.
package query

import (
	"strings"

	"golang.org/x/text/cases"
)

// All valor de filtro equivalente a "sin filtro".
const All = "all"

// Cursor referencia a una página.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Params parámetros comunes de listado. Limit <= 0 desactiva la paginación.
type Params struct {
	Search string
	Page   int
	Limit  int
}

// Result página resultante. Total es el número de elementos filtrados antes de paginar.
type Result[T any] struct {
	Items []T
	Total int
	Next  *Cursor
	Prev  *Cursor
}

// Predicate filtro exacto. Un Predicate nil se ignora.
type Predicate[T any] func(T) bool

// Equals filtra por igualdad exacta de un campo; "" o "all" no filtran.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	if value == "" || value == All {
		return nil
	}
	return func(it T) bool { return field(it) == value }
}

// BoolEquals filtra por un campo booleano; nil no filtra.
func BoolEquals[T any](value *bool, field func(T) bool) Predicate[T] {
	if value == nil {
		return nil
	}
	want := *value
	return func(it T) bool { return field(it) == want }
}

// Apply ejecuta, en orden: búsqueda de texto (subcadena sin distinguir
// mayúsculas sobre los campos que devuelve fields), filtros exactos y paginación.
func Apply[T any](items []T, p Params, fields func(T) []string, filters ...Predicate[T]) Result[T] {
	matched := make([]T, 0, len(items))
	needle := strings.TrimSpace(p.Search)
	var fold cases.Caser
	if needle != "" {
		fold = cases.Fold()
		needle = fold.String(needle)
	}
	for _, it := range items {
		if needle != "" && !matchesAny(fold, fields(it), needle) {
			continue
		}
		if !passes(it, filters) {
			continue
		}
		matched = append(matched, it)
	}
	return paginate(matched, p.Page, p.Limit)
}

// Map transforma los elementos de un resultado conservando los metadatos.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	items := make([]U, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, f(it))
	}
	return Result[U]{Items: items, Total: r.Total, Next: r.Next, Prev: r.Prev}
}

func matchesAny(fold cases.Caser, haystack []string, needle string) bool {
	for _, h := range haystack {
		if h != "" && strings.Contains(fold.String(h), needle) {
			return true
		}
	}
	return false
}

func passes[T any](it T, filters []Predicate[T]) bool {
	for _, f := range filters {
		if f != nil && !f(it) {
			return false
		}
	}
	return true
}

func paginate[T any](items []T, page, limit int) Result[T] {
	total := len(items)
	if limit <= 0 {
		return Result[T]{Items: items, Total: total}
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	res := Result[T]{Items: items[start:end], Total: total}
	if end < total {
		res.Next = &Cursor{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		res.Prev = &Cursor{Page: page - 1, Limit: limit}
	}
	return res
}
