package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/currency"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

// CurrencyUseCase gestiona monedas y tasas. Mantiene exactamente una moneda base:
// las escrituras que afectan a la base se serializan con mu y se persisten con SaveAll.
type CurrencyUseCase struct {
	mu   sync.Mutex
	repo repository.CurrencyRepository
	ids  IDGenerator
	now  Clock
}

// NewCurrencyUseCase construye el caso de uso.
func NewCurrencyUseCase(repo repository.CurrencyRepository, ids IDGenerator, clock Clock) *CurrencyUseCase {
	return &CurrencyUseCase{repo: repo, ids: ids, now: clockOrDefault(clock)}
}

// List busca por código y nombre; filtra por estado.
func (uc *CurrencyUseCase) List(ctx context.Context, f dto.CurrencyFilter) (query.Result[dto.CurrencyResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.CurrencyResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(c *entity.CurrencyRate) []string { return []string{c.Code, c.Name} },
		query.BoolEquals(f.IsActive, func(c *entity.CurrencyRate) bool { return c.IsActive }),
	)
	return query.Map(res, toCurrencyResponse), nil
}

// GetByID obtiene una moneda.
func (uc *CurrencyUseCase) GetByID(ctx context.Context, id string) (*dto.CurrencyResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toCurrencyResponse(c)
	return &out, nil
}

// Create registra una moneda. Rate se expresa respecto a la base actual. Con
// IsBaseCurrency (o si aún no hay base) la nueva moneda pasa a ser la base y el
// resto de tasas se recalculan en la misma escritura.
func (uc *CurrencyUseCase) Create(ctx context.Context, in dto.CreateCurrencyRequest) (*dto.CurrencyResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if !in.Rate.IsPositive() {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "rate", "rate debe ser mayor que 0", in.Rate.String())
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	code := normalizeCode(in.Code)
	if existing, err := uc.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, newDuplicateCode(code)
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.CurrencyRate{
		ID:          uc.ids.NewID(PrefixCurrency),
		Code:        code,
		Name:        strings.TrimSpace(in.Name),
		Symbol:      in.Symbol,
		Rate:        in.Rate,
		IsActive:    true,
		LastUpdated: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	setIf(&c.IsActive, in.IsActive)

	if !in.IsBaseCurrency && findBase(list) != nil {
		if err := uc.repo.Create(ctx, c); err != nil {
			return nil, duplicateCode(err, code)
		}
		out := toCurrencyResponse(c)
		return &out, nil
	}
	rebased, err := currency.Rebase(append(list, c), c.ID, now)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SaveAll(ctx, rebased); err != nil {
		return nil, duplicateCode(err, code)
	}
	for _, r := range rebased {
		if r.ID == c.ID {
			c = r
		}
	}
	out := toCurrencyResponse(c)
	return &out, nil
}

// Update mezcla los campos enviados. La tasa de la moneda base es siempre 1 y la
// base no puede desactivarse (ErrConflict).
func (uc *CurrencyUseCase) Update(ctx context.Context, id string, in dto.UpdateCurrencyRequest) (*dto.CurrencyResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := current.Clone()
	now := uc.now()
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code != c.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != c.ID {
				return nil, newDuplicateCode(code)
			}
		}
		c.Code = code
	}
	if in.Rate != nil {
		if !in.Rate.IsPositive() {
			return nil, domain.NewFieldError(domain.ErrInvalidInput, "rate", "rate debe ser mayor que 0", in.Rate.String())
		}
		if c.IsBaseCurrency && !in.Rate.Equal(decimal.NewFromInt(1)) {
			return nil, domain.NewFieldError(domain.ErrConflict, "rate", "la tasa de la moneda base es siempre 1", in.Rate.String())
		}
		if !in.Rate.Equal(c.Rate) {
			c.Rate = *in.Rate
			c.LastUpdated = now
		}
	}
	if in.IsActive != nil && !*in.IsActive && c.IsBaseCurrency {
		return nil, domain.NewFieldError(domain.ErrConflict, "is_active", "la moneda base no puede desactivarse", false)
	}
	setIf(&c.Name, in.Name)
	setIf(&c.Symbol, in.Symbol)
	setIf(&c.IsActive, in.IsActive)
	c.UpdatedAt = now
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, duplicateCode(err, c.Code)
	}
	out := toCurrencyResponse(c)
	return &out, nil
}

// SetBase convierte la moneda en base: quita la marca al resto y recalcula todas
// las tasas para que las conversiones entre monedas no cambien. Es atómico.
func (uc *CurrencyUseCase) SetBase(ctx context.Context, id string) (*dto.CurrencyResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	rebased, err := currency.Rebase(list, id, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SaveAll(ctx, rebased); err != nil {
		return nil, err
	}
	for _, c := range rebased {
		if c.ID == id {
			out := toCurrencyResponse(c)
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete elimina una moneda. La moneda base no puede eliminarse (ErrConflict).
func (uc *CurrencyUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	c, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if c.IsBaseCurrency {
		return domain.NewFieldError(domain.ErrConflict, "is_base_currency", "la moneda base no puede eliminarse", c.Code)
	}
	return uc.repo.Delete(ctx, id)
}

// Convert convierte amount de la moneda from a la moneda to:
// amount / from.rate * to.rate. Códigos desconocidos devuelven ErrNotFound.
func (uc *CurrencyUseCase) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*dto.ConvertResponse, error) {
	src, err := uc.byCode(ctx, "from", from)
	if err != nil {
		return nil, err
	}
	dst, err := uc.byCode(ctx, "to", to)
	if err != nil {
		return nil, err
	}
	result, err := currency.Convert(amount, src.Rate, dst.Rate)
	if err != nil {
		return nil, err
	}
	unit, err := currency.Convert(decimal.NewFromInt(1), src.Rate, dst.Rate)
	if err != nil {
		return nil, err
	}
	return &dto.ConvertResponse{Amount: amount, From: src.Code, To: dst.Code, Result: result, Rate: unit}, nil
}

// Stats resumen de monedas.
func (uc *CurrencyUseCase) Stats(ctx context.Context) (*dto.CurrencyStatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CurrencyStatsResponse{TotalCurrencies: len(list)}
	for _, c := range list {
		if c.IsActive {
			out.ActiveCurrencies++
		}
		if c.IsBaseCurrency {
			out.BaseCurrency = c.Code
		}
		if out.LastUpdated == nil || c.LastUpdated.After(*out.LastUpdated) {
			t := c.LastUpdated
			out.LastUpdated = &t
		}
	}
	out.InactiveCurrencies = out.TotalCurrencies - out.ActiveCurrencies
	return out, nil
}

func (uc *CurrencyUseCase) get(ctx context.Context, id string) (*entity.CurrencyRate, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CurrencyUseCase) byCode(ctx context.Context, field, code string) (*entity.CurrencyRate, error) {
	c, err := uc.repo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewFieldError(domain.ErrNotFound, field, "moneda no encontrada", code)
	}
	return c, nil
}

func findBase(list []*entity.CurrencyRate) *entity.CurrencyRate {
	for _, c := range list {
		if c.IsBaseCurrency {
			return c
		}
	}
	return nil
}

func toCurrencyResponse(c *entity.CurrencyRate) dto.CurrencyResponse {
	return dto.CurrencyResponse{
		ID:             c.ID,
		Code:           c.Code,
		Name:           c.Name,
		Symbol:         c.Symbol,
		Rate:           c.Rate,
		IsBaseCurrency: c.IsBaseCurrency,
		IsActive:       c.IsActive,
		LastUpdated:    c.LastUpdated,
	}
}
