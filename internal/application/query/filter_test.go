package query_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
)

type item struct {
	Name   string
	Code   string
	Status string
	Active bool
}

func fields(i item) []string { return []string{i.Name, i.Code} }

func fixture() []item {
	return []item{
		{Name: "Công ty ABC", Code: "ABC01", Status: "active", Active: true},
		{Name: "Xyz Retail", Code: "XYZ", Status: "pending", Active: false},
		{Name: "abc Logistics", Code: "LOG", Status: "pending", Active: true},
		{Name: "Delta", Code: "DABC", Status: "suspended", Active: true},
		{Name: "Omega", Code: "OMG", Status: "active", Active: false},
	}
}

func TestApply_BusquedaSinDistinguirMayusculas(t *testing.T) {
	res := query.Apply(fixture(), query.Params{Search: "AbC"}, fields)

	require.Equal(t, 3, res.Total)
	for _, it := range res.Items {
		found := strings.Contains(strings.ToLower(it.Name), "abc") || strings.Contains(strings.ToLower(it.Code), "abc")
		assert.True(t, found, "%+v no contiene la búsqueda", it)
	}
}

func TestApply_FiltroExactoYAll(t *testing.T) {
	items := fixture()
	byStatus := func(i item) string { return i.Status }

	res := query.Apply(items, query.Params{}, fields, query.Equals("pending", byStatus))
	require.Equal(t, 2, res.Total)
	for _, it := range res.Items {
		assert.Equal(t, "pending", it.Status)
	}

	all := query.Apply(items, query.Params{}, fields, query.Equals(query.All, byStatus))
	assert.Equal(t, len(items), all.Total)
	none := query.Apply(items, query.Params{}, fields, query.Equals("", byStatus))
	assert.Equal(t, len(items), none.Total)
}

func TestApply_FiltroBooleano(t *testing.T) {
	yes := true
	res := query.Apply(fixture(), query.Params{}, fields, query.BoolEquals(&yes, func(i item) bool { return i.Active }))
	assert.Equal(t, 3, res.Total)
}

// list({search:'abc', page:2, limit:1}) sobre 3 resultados.
func TestApply_PaginaIntermedia(t *testing.T) {
	res := query.Apply(fixture(), query.Params{Search: "abc", Page: 2, Limit: 1}, fields)

	assert.Len(t, res.Items, 1)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, &query.Cursor{Page: 1, Limit: 1}, res.Prev)
	assert.Equal(t, &query.Cursor{Page: 3, Limit: 1}, res.Next)
}

func TestApply_ConcatenarPaginasReproduceElConjunto(t *testing.T) {
	items := make([]item, 0, 23)
	for i := 0; i < 23; i++ {
		items = append(items, item{Name: fmt.Sprintf("empresa-%02d", i), Status: "active"})
	}
	full := query.Apply(items, query.Params{Search: "empresa"}, fields)

	for _, limit := range []int{1, 2, 5, 7, 23, 50} {
		var got []item
		pages := (full.Total + limit - 1) / limit
		for page := 1; page <= pages; page++ {
			res := query.Apply(items, query.Params{Search: "empresa", Page: page, Limit: limit}, fields)
			assert.LessOrEqual(t, len(res.Items), limit)
			assert.Equal(t, full.Total, res.Total)
			got = append(got, res.Items...)
		}
		assert.Equal(t, full.Items, got, "limit=%d", limit)
	}
}

func TestApply_NoModificaEntrada(t *testing.T) {
	items := fixture()
	before := append([]item(nil), items...)
	_ = query.Apply(items, query.Params{Search: "omega", Page: 1, Limit: 1}, fields)
	assert.Equal(t, before, items)
}

func TestApply_PaginaFueraDeRango(t *testing.T) {
	res := query.Apply(fixture(), query.Params{Page: 10, Limit: 2}, fields)
	assert.Empty(t, res.Items)
	assert.Nil(t, res.Next)
	assert.Equal(t, 5, res.Total)
}

func TestMap_ConservaMetadatos(t *testing.T) {
	res := query.Apply(fixture(), query.Params{Page: 1, Limit: 2}, fields)
	names := query.Map(res, func(i item) string { return i.Name })
	assert.Equal(t, []string{"Công ty ABC", "Xyz Retail"}, names.Items)
	assert.Equal(t, res.Total, names.Total)
	assert.Equal(t, res.Next, names.Next)
}
