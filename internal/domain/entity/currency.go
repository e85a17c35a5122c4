package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate tasa de una moneda respecto a la moneda base:
// 1 unidad de la moneda base = Rate unidades de esta moneda.
// Solo una moneda puede ser base y su Rate es siempre 1.
type CurrencyRate struct {
	ID             string
	Code           string // ISO 4217, exactamente 3 letras
	Name           string
	Symbol         string
	Rate           decimal.Decimal
	IsBaseCurrency bool
	IsActive       bool
	LastUpdated    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (c *CurrencyRate) Clone() *CurrencyRate {
	cp := *c
	return &cp
}
