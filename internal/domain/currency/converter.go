package currency

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// divPrecision dígitos decimales conservados en las divisiones.
const divPrecision = 28

// Convert convierte amount de la moneda con tasa fromRate a la de tasa toRate
// pasando por la moneda base (servicio de dominio):
// enBase = amount / fromRate ; resultado = enBase * toRate
// Se multiplica antes de dividir para redondear una sola vez. Sin política de
// redondeo adicional: precisión completa de decimal.
func Convert(amount, fromRate, toRate decimal.Decimal) (decimal.Decimal, error) {
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("currency: tasa no positiva: %w", domain.ErrInvalidInput)
	}
	return amount.Mul(toRate).DivRound(fromRate, divPrecision), nil
}

// Rebase devuelve copias de list donde newBaseID pasa a ser la moneda base:
// su tasa queda en 1 y el resto se re-expresa como rate / rate_base, de modo que
// cualquier conversión entre dos monedas da el mismo resultado que antes.
func Rebase(list []*entity.CurrencyRate, newBaseID string, now time.Time) ([]*entity.CurrencyRate, error) {
	var base *entity.CurrencyRate
	for _, c := range list {
		if c.ID == newBaseID {
			base = c
			break
		}
	}
	if base == nil {
		return nil, domain.ErrNotFound
	}
	if !base.Rate.IsPositive() {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "rate", "la tasa de la nueva moneda base debe ser positiva", base.Rate.String())
	}
	out := make([]*entity.CurrencyRate, 0, len(list))
	for _, c := range list {
		cp := c.Clone()
		if c.ID == newBaseID {
			cp.Rate = decimal.NewFromInt(1)
			cp.IsBaseCurrency = true
			cp.IsActive = true
		} else {
			cp.Rate = c.Rate.DivRound(base.Rate, divPrecision)
			cp.IsBaseCurrency = false
		}
		if !cp.Rate.Equal(c.Rate) || cp.IsBaseCurrency != c.IsBaseCurrency {
			cp.LastUpdated = now
			cp.UpdatedAt = now
		}
		out = append(out, cp)
	}
	return out, nil
}
