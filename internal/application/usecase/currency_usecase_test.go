package usecase

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCurrencyConvert_USDToVND(t *testing.T) {
	f := newFixture(t)

	out, err := f.currencies.Convert(f.ctx, decimal.NewFromInt(100), "USD", "vnd")
	require.NoError(t, err)
	assert.True(t, out.Result.Equal(decimal.NewFromInt(2500000)), out.Result.String())
	assert.True(t, out.Rate.Equal(decimal.NewFromInt(25000)), out.Rate.String())
	assert.Equal(t, "VND", out.To)

	_, err = f.currencies.Convert(f.ctx, decimal.NewFromInt(1), "USD", "XXX")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "to", domain.FieldErrors(err)[0].Field)
}

func TestCurrencyConvert_RoundTrip(t *testing.T) {
	f := newFixture(t)
	codes := []string{"VND", "USD", "EUR", "JPY"}
	amount := dec("1234.56")
	tolerance := dec("0.000000001")

	for _, a := range codes {
		for _, b := range codes {
			there, err := f.currencies.Convert(f.ctx, amount, a, b)
			require.NoError(t, err)
			back, err := f.currencies.Convert(f.ctx, there.Result, b, a)
			require.NoError(t, err)
			assert.True(t, back.Result.Sub(amount).Abs().LessThan(tolerance), "%s->%s->%s = %s", a, b, a, back.Result)
		}
	}
}

func TestCurrencySetBase_PreservesConversions(t *testing.T) {
	f := newFixture(t)
	before, err := f.currencies.Convert(f.ctx, decimal.NewFromInt(100), "EUR", "JPY")
	require.NoError(t, err)

	out, err := f.currencies.SetBase(f.ctx, "cur_2")
	require.NoError(t, err)
	assert.True(t, out.IsBaseCurrency)
	assert.True(t, out.Rate.Equal(decimal.NewFromInt(1)))

	res, err := f.currencies.List(f.ctx, dto.CurrencyFilter{})
	require.NoError(t, err)
	bases := 0
	for _, c := range res.Items {
		if c.IsBaseCurrency {
			bases++
			assert.Equal(t, "USD", c.Code)
		}
		if c.Code == "VND" {
			assert.True(t, c.Rate.Equal(decimal.NewFromInt(25000)), c.Rate.String())
		}
	}
	assert.Equal(t, 1, bases)

	after, err := f.currencies.Convert(f.ctx, decimal.NewFromInt(100), "EUR", "JPY")
	require.NoError(t, err)
	assert.True(t, after.Result.Sub(before.Result).Abs().LessThan(dec("0.000000001")))

	_, err = f.currencies.SetBase(f.ctx, "cur_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrencySetBase_ConcurrentKeepsSingleBase(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for _, id := range []string{"cur_1", "cur_2", "cur_3", "cur_4", "cur_2", "cur_3"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, _ = f.currencies.SetBase(f.ctx, id)
		}(id)
	}
	wg.Wait()

	st, err := f.currencies.Stats(f.ctx)
	require.NoError(t, err)
	res, err := f.currencies.List(f.ctx, dto.CurrencyFilter{})
	require.NoError(t, err)
	bases := 0
	for _, c := range res.Items {
		if c.IsBaseCurrency {
			bases++
			assert.Equal(t, st.BaseCurrency, c.Code)
			assert.True(t, c.Rate.Equal(decimal.NewFromInt(1)))
		}
	}
	assert.Equal(t, 1, bases)
}

func TestCurrencyCreate(t *testing.T) {
	f := newFixture(t)

	out, err := f.currencies.Create(f.ctx, dto.CreateCurrencyRequest{Code: "krw", Name: "Won", Symbol: "₩", Rate: dec("0.055")})
	require.NoError(t, err)
	assert.Equal(t, "KRW", out.Code)
	assert.False(t, out.IsBaseCurrency)
	assert.True(t, out.IsActive)

	_, err = f.currencies.Create(f.ctx, dto.CreateCurrencyRequest{Code: "USD", Name: "Dup", Symbol: "$", Rate: dec("1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.currencies.Create(f.ctx, dto.CreateCurrencyRequest{Code: "USDT", Name: "x", Symbol: "x", Rate: dec("1")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "code", domain.FieldErrors(err)[0].Field)

	_, err = f.currencies.Create(f.ctx, dto.CreateCurrencyRequest{Code: "GBP", Name: "Pound", Symbol: "£", Rate: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "rate", domain.FieldErrors(err)[0].Field)
}

func TestCurrencyCreate_AsBase(t *testing.T) {
	f := newFixture(t)

	// 1 VND = 0.00003 GBP
	out, err := f.currencies.Create(f.ctx, dto.CreateCurrencyRequest{
		Code: "GBP", Name: "Pound", Symbol: "£", Rate: dec("0.00003"), IsBaseCurrency: true,
	})
	require.NoError(t, err)
	assert.True(t, out.IsBaseCurrency)
	assert.True(t, out.Rate.Equal(decimal.NewFromInt(1)))

	st, err := f.currencies.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "GBP", st.BaseCurrency)

	conv, err := f.currencies.Convert(f.ctx, decimal.NewFromInt(3), "GBP", "VND")
	require.NoError(t, err)
	assert.True(t, conv.Result.Sub(decimal.NewFromInt(100000)).Abs().LessThan(dec("0.000001")), conv.Result.String())
}

func TestCurrencyBaseGuards(t *testing.T) {
	f := newFixture(t)

	err := f.currencies.Delete(f.ctx, "cur_1")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.currencies.Update(f.ctx, "cur_1", dto.UpdateCurrencyRequest{IsActive: ptr(false)})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.currencies.Update(f.ctx, "cur_1", dto.UpdateCurrencyRequest{Rate: ptr(dec("2"))})
	require.ErrorIs(t, err, domain.ErrConflict)

	out, err := f.currencies.Update(f.ctx, "cur_2", dto.UpdateCurrencyRequest{Rate: ptr(dec("0.000041"))})
	require.NoError(t, err)
	assert.True(t, out.Rate.Equal(dec("0.000041")))

	require.NoError(t, f.currencies.Delete(f.ctx, "cur_5"))
	_, err = f.currencies.GetByID(f.ctx, "cur_5")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrencyStatsAndFilter(t *testing.T) {
	f := newFixture(t)

	st, err := f.currencies.Stats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, st.TotalCurrencies)
	assert.Equal(t, 4, st.ActiveCurrencies)
	assert.Equal(t, st.TotalCurrencies, st.ActiveCurrencies+st.InactiveCurrencies)
	assert.Equal(t, "VND", st.BaseCurrency)
	require.NotNil(t, st.LastUpdated)

	res, err := f.currencies.List(f.ctx, dto.CurrencyFilter{IsActive: ptr(false)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "CNY", res.Items[0].Code)
}
