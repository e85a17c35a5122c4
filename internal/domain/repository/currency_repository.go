package repository

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// CurrencyRepository puerto de persistencia para CurrencyRate.
type CurrencyRepository interface {
	Create(ctx context.Context, c *entity.CurrencyRate) error
	GetByID(ctx context.Context, id string) (*entity.CurrencyRate, error)
	GetByCode(ctx context.Context, code string) (*entity.CurrencyRate, error)
	Update(ctx context.Context, c *entity.CurrencyRate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.CurrencyRate, error)
	// SaveAll inserta o reemplaza todas las monedas dadas de forma atómica
	// (cambio de moneda base + recálculo de tasas).
	SaveAll(ctx context.Context, list []*entity.CurrencyRate) error
}
