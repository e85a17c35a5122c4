package stats_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
)

type row struct {
	group  string
	amount decimal.Decimal
	ok     bool
}

var rows = []row{
	{"a", decimal.NewFromInt(10), true},
	{"b", decimal.NewFromInt(5), false},
	{"a", decimal.NewFromInt(7), true},
	{"c", decimal.NewFromInt(1), true},
}

func TestCountBy_SumaIgualAlTotal(t *testing.T) {
	groups := stats.CountBy(rows, func(r row) string { return r.group })

	total := 0
	for _, v := range groups {
		total += v
	}
	assert.Equal(t, len(rows), total)
	assert.Equal(t, 2, groups["a"])
}

func TestSumBy_IgnoraExcluidos(t *testing.T) {
	sums := stats.SumBy(rows,
		func(r row) string { return r.group },
		func(r row) decimal.Decimal { return r.amount },
		func(r row) bool { return r.ok },
	)
	assert.True(t, decimal.NewFromInt(17).Equal(sums["a"]))
	_, hasB := sums["b"]
	assert.False(t, hasB)
}

func TestSeries_OrdenFijoPrimeroLuegoAlfabetico(t *testing.T) {
	s := stats.Series(map[string]int{"z": 1, "x": 2, "known": 3}, []string{"known", "missing"})
	require.Len(t, s, 4)
	assert.Equal(t, stats.Point[int]{Name: "known", Value: 3}, s[0])
	assert.Equal(t, stats.Point[int]{Name: "missing", Value: 0}, s[1])
	assert.Equal(t, "x", s[2].Name)
	assert.Equal(t, "z", s[3].Name)
}

func TestPercentYGrowth(t *testing.T) {
	assert.Equal(t, 0.0, stats.Percent(3, 0))
	assert.Equal(t, 33.33, stats.Percent(1, 3))
	assert.Equal(t, 100.0, stats.GrowthRate(4, 0))
	assert.Equal(t, 0.0, stats.GrowthRate(0, 0))
	assert.Equal(t, -50.0, stats.GrowthRate(1, 2))
}

func TestSum(t *testing.T) {
	got := stats.Sum(rows, func(r row) decimal.Decimal { return r.amount }, nil)
	assert.True(t, decimal.NewFromInt(23).Equal(got))
}
