// Package stats contiene agregadores puros (sin efectos secundarios) usados por
// los endpoints de estadísticas. Todos recalculan desde la colección completa.
package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Point par {name, value} listo para consumo directo por gráficos.
type Point[V any] struct {
	Name  string `json:"name"`
	Value V      `json:"value"`
}

// Count cuenta los elementos que cumplen pred.
func Count[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, it := range items {
		if pred(it) {
			n++
		}
	}
	return n
}

// CountBy agrupa por key y cuenta. La suma de los valores es siempre len(items).
func CountBy[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// SumBy agrupa por key y suma val. Los elementos con include == false se ignoran.
func SumBy[T any](items []T, key func(T) string, val func(T) decimal.Decimal, include func(T) bool) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, it := range items {
		if include != nil && !include(it) {
			continue
		}
		k := key(it)
		out[k] = out[k].Add(val(it))
	}
	return out
}

// Sum suma val para los elementos que cumplen include (nil = todos).
func Sum[T any](items []T, val func(T) decimal.Decimal, include func(T) bool) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if include != nil && !include(it) {
			continue
		}
		total = total.Add(val(it))
	}
	return total
}

// Series convierte un agrupado en lista ordenada: primero las claves de order
// (con valor cero si no aparecen), luego el resto en orden alfabético.
func Series[V any](groups map[string]V, order []string) []Point[V] {
	out := make([]Point[V], 0, len(groups)+len(order))
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		seen[k] = true
		out = append(out, Point[V]{Name: k, Value: groups[k]})
	}
	rest := make([]string, 0)
	for k := range groups {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, Point[V]{Name: k, Value: groups[k]})
	}
	return out
}

// Percent part/whole*100 redondeado a 2 decimales; 0 si whole es 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(whole))
}

// GrowthRate variación porcentual de previous a current.
// Sin período previo: 100 si hubo actividad, 0 si no.
func GrowthRate(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2(float64(current-previous) * 100 / float64(previous))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
