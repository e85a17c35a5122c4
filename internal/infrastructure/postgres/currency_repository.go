package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

const currencyColumns = `id, code, name, symbol, rate, is_base_currency, is_active, last_updated, created_at, updated_at`

// CurrencyRepo implementación del puerto CurrencyRepository sobre PostgreSQL.
type CurrencyRepo struct {
	db DB
	tx *TxRunner
}

// NewCurrencyRepository construye el adaptador de persistencia para monedas.
func NewCurrencyRepository(db DB) *CurrencyRepo {
	return &CurrencyRepo{db: db, tx: NewTxRunner(db)}
}

// Create persiste una nueva moneda.
func (r *CurrencyRepo) Create(ctx context.Context, c *entity.CurrencyRate) error {
	query := `
		INSERT INTO currency_rates (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := queryer(ctx, r.db).Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Symbol, c.Rate, c.IsBaseCurrency, c.IsActive, c.LastUpdated, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return writeError("insert currency", err)
	}
	return nil
}

// GetByID obtiene una moneda por ID.
func (r *CurrencyRepo) GetByID(ctx context.Context, id string) (*entity.CurrencyRate, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene una moneda por código ISO.
func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*entity.CurrencyRate, error) {
	return r.getBy(ctx, "code", code)
}

func (r *CurrencyRepo) getBy(ctx context.Context, column, value string) (*entity.CurrencyRate, error) {
	query := `SELECT ` + currencyColumns + ` FROM currency_rates WHERE ` + column + ` = $1`
	c, err := scanCurrency(queryer(ctx, r.db).QueryRow(ctx, query, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return c, nil
}

// Update actualiza una moneda existente.
func (r *CurrencyRepo) Update(ctx context.Context, c *entity.CurrencyRate) error {
	query := `
		UPDATE currency_rates SET code = $2, name = $3, symbol = $4, rate = $5, is_base_currency = $6,
		       is_active = $7, last_updated = $8, updated_at = $9
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		c.ID, c.Code, c.Name, c.Symbol, c.Rate, c.IsBaseCurrency, c.IsActive, c.LastUpdated, c.UpdatedAt,
	)
	if err != nil {
		return writeError("update currency", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina una moneda por ID.
func (r *CurrencyRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM currency_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete currency: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todas las monedas, de la más reciente a la más antigua.
func (r *CurrencyRepo) List(ctx context.Context) ([]*entity.CurrencyRate, error) {
	query := `SELECT ` + currencyColumns + ` FROM currency_rates ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.CurrencyRate, 0)
	for rows.Next() {
		c, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SaveAll inserta o reemplaza las monedas en una única transacción. La marca de
// moneda base se limpia primero para que el índice único parcial no choque a mitad.
func (r *CurrencyRepo) SaveAll(ctx context.Context, list []*entity.CurrencyRate) error {
	return r.tx.Run(ctx, func(ctx context.Context) error {
		q := queryer(ctx, r.db)
		if _, err := q.Exec(ctx, `UPDATE currency_rates SET is_base_currency = FALSE WHERE is_base_currency`); err != nil {
			return fmt.Errorf("clear base currency: %w", err)
		}
		query := `
			INSERT INTO currency_rates (` + currencyColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET code = EXCLUDED.code, name = EXCLUDED.name, symbol = EXCLUDED.symbol,
			       rate = EXCLUDED.rate, is_base_currency = EXCLUDED.is_base_currency, is_active = EXCLUDED.is_active,
			       last_updated = EXCLUDED.last_updated, updated_at = EXCLUDED.updated_at`
		for _, c := range list {
			if _, err := q.Exec(ctx, query,
				c.ID, c.Code, c.Name, c.Symbol, c.Rate, c.IsBaseCurrency, c.IsActive, c.LastUpdated, c.CreatedAt, c.UpdatedAt,
			); err != nil {
				return writeError("save currency "+c.Code, err)
			}
		}
		return nil
	})
}

func scanCurrency(row scanner) (*entity.CurrencyRate, error) {
	var c entity.CurrencyRate
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &c.Rate, &c.IsBaseCurrency, &c.IsActive,
		&c.LastUpdated, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
