package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
)

// CreateCurrencyRequest entrada para registrar una moneda.
type CreateCurrencyRequest struct {
	Code           string          `json:"code" validate:"required,len=3,alpha"`
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	Symbol         string          `json:"symbol" validate:"required,max=10"`
	Rate           decimal.Decimal `json:"rate"`
	IsBaseCurrency bool            `json:"is_base_currency"`
	IsActive       *bool           `json:"is_active"`
}

// UpdateCurrencyRequest campos opcionales. El cambio de moneda base se hace con SetBase.
type UpdateCurrencyRequest struct {
	Code     *string          `json:"code" validate:"omitempty,len=3,alpha"`
	Name     *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Symbol   *string          `json:"symbol" validate:"omitempty,max=10"`
	Rate     *decimal.Decimal `json:"rate"`
	IsActive *bool            `json:"is_active"`
}

// CurrencyFilter filtros de listado.
type CurrencyFilter struct {
	query.Params
	IsActive *bool
}

// CurrencyResponse salida de una moneda.
type CurrencyResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Rate           decimal.Decimal `json:"rate"`
	IsBaseCurrency bool            `json:"is_base_currency"`
	IsActive       bool            `json:"is_active"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// ConvertResponse resultado de una conversión.
type ConvertResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
	Rate   decimal.Decimal `json:"rate"` // unidades de To por 1 unidad de From
}

// CurrencyStatsResponse resumen de monedas.
type CurrencyStatsResponse struct {
	TotalCurrencies    int        `json:"total_currencies"`
	ActiveCurrencies   int        `json:"active_currencies"`
	InactiveCurrencies int        `json:"inactive_currencies"`
	BaseCurrency       string     `json:"base_currency"`
	LastUpdated        *time.Time `json:"last_updated,omitempty"`
}
