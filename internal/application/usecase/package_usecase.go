package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

const defaultPackageCurrency = "VND"

var monthsPerYear = decimal.NewFromInt(12)

// PackageUseCase casos de uso de paquetes de suscripción. EnterpriseCount se
// calcula al leer: empresas distintas con una suscripción vigente al paquete.
type PackageUseCase struct {
	repo    repository.PackageRepository
	subRepo repository.SubscriptionRepository
	ids     IDGenerator
	now     Clock
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(repo repository.PackageRepository, subRepo repository.SubscriptionRepository, ids IDGenerator, clock Clock) *PackageUseCase {
	return &PackageUseCase{repo: repo, subRepo: subRepo, ids: ids, now: clockOrDefault(clock)}
}

// List busca por nombre, código y descripción; filtra por categoría, ciclo y estado.
func (uc *PackageUseCase) List(ctx context.Context, f dto.PackageFilter) (query.Result[dto.PackageResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.PackageResponse]{}, err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return query.Result[dto.PackageResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(p *entity.SubscriptionPackage) []string { return []string{p.Name, p.Code, p.Description} },
		query.Equals(f.Category, func(p *entity.SubscriptionPackage) string { return p.Category }),
		query.Equals(f.BillingCycle, func(p *entity.SubscriptionPackage) string { return p.BillingCycle }),
		query.BoolEquals(f.IsActive, func(p *entity.SubscriptionPackage) bool { return p.IsActive }),
	)
	return query.Map(res, func(p *entity.SubscriptionPackage) dto.PackageResponse {
		return toPackageResponse(p, counts[p.ID])
	}), nil
}

// GetByID obtiene un paquete con su número de empresas.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := toPackageResponse(p, counts[p.ID])
	return &out, nil
}

// Create crea un paquete. El precio anual por defecto es 12 mensualidades.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	price, err := buildPrice(*in.Price)
	if err != nil {
		return nil, err
	}
	if in.SetupFee.IsNegative() {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "setup_fee", "setup_fee no puede ser negativo", in.SetupFee.String())
	}
	code := normalizeCode(in.Code)
	if existing, err := uc.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, newDuplicateCode(code)
	}
	now := uc.now()
	p := &entity.SubscriptionPackage{
		ID:           uc.ids.NewID(PrefixPackage),
		Name:         strings.TrimSpace(in.Name),
		Code:         code,
		Description:  in.Description,
		Price:        price,
		Features:     nonNil(slices.Clone(in.Features)),
		Limits:       entity.PackageLimits{Support: entity.SupportBasic},
		IsPopular:    in.IsPopular,
		IsActive:     true,
		Category:     in.Category,
		TrialDays:    in.TrialDays,
		SetupFee:     in.SetupFee,
		BillingCycle: entity.BillingMonthly,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Limits != nil {
		p.Limits = normalizeLimits(*in.Limits)
	}
	setIf(&p.IsActive, in.IsActive)
	if in.BillingCycle != "" {
		p.BillingCycle = in.BillingCycle
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, duplicateCode(err, code)
	}
	out := toPackageResponse(p, 0)
	return &out, nil
}

// Update mezcla los campos enviados; price y limits se reemplazan completos.
func (uc *PackageUseCase) Update(ctx context.Context, id string, in dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := current.Clone()
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code != p.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != p.ID {
				return nil, newDuplicateCode(code)
			}
		}
		p.Code = code
	}
	if in.Price != nil {
		price, err := buildPrice(*in.Price)
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if in.SetupFee != nil {
		if in.SetupFee.IsNegative() {
			return nil, domain.NewFieldError(domain.ErrInvalidInput, "setup_fee", "setup_fee no puede ser negativo", in.SetupFee.String())
		}
		p.SetupFee = *in.SetupFee
	}
	if in.Limits != nil {
		p.Limits = normalizeLimits(*in.Limits)
	}
	if in.Features != nil {
		p.Features = slices.Clone(in.Features)
	}
	setIf(&p.Name, in.Name)
	setIf(&p.Description, in.Description)
	setIf(&p.IsPopular, in.IsPopular)
	setIf(&p.IsActive, in.IsActive)
	setIf(&p.Category, in.Category)
	setIf(&p.TrialDays, in.TrialDays)
	setIf(&p.BillingCycle, in.BillingCycle)
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, duplicateCode(err, p.Code)
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := toPackageResponse(p, counts[p.ID])
	return &out, nil
}

// ToggleStatus invierte IsActive.
func (uc *PackageUseCase) ToggleStatus(ctx context.Context, id string) (*dto.PackageResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !p.IsActive
	return uc.Update(ctx, id, dto.UpdatePackageRequest{IsActive: &active})
}

// Delete elimina el paquete. Se rechaza con ErrConflict mientras tenga empresas suscritas.
func (uc *PackageUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return err
	}
	if n := counts[id]; n > 0 {
		return domain.NewFieldError(domain.ErrConflict, "enterprise_count",
			"no se puede eliminar un paquete con empresas suscritas", n)
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PackageUseCase) get(ctx context.Context, id string) (*entity.SubscriptionPackage, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (uc *PackageUseCase) enterpriseCounts(ctx context.Context) (map[string]int, error) {
	subs, err := uc.subRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return countEnterprisesByPackage(subs, uc.now()), nil
}

// countEnterprisesByPackage cuenta empresas distintas con suscripción vigente por paquete.
func countEnterprisesByPackage(subs []*entity.Subscription, now time.Time) map[string]int {
	seen := make(map[[2]string]bool)
	out := make(map[string]int)
	for _, s := range subs {
		if !s.IsCurrent(now) {
			continue
		}
		key := [2]string{s.PackageID, s.EnterpriseID}
		if seen[key] {
			continue
		}
		seen[key] = true
		out[s.PackageID]++
	}
	return out
}

func buildPrice(in dto.PriceInput) (entity.PackagePrice, error) {
	if in.Monthly.IsNegative() {
		return entity.PackagePrice{}, domain.NewFieldError(domain.ErrInvalidInput, "price.monthly", "el precio no puede ser negativo", in.Monthly.String())
	}
	price := entity.PackagePrice{
		Monthly:  in.Monthly,
		Yearly:   in.Monthly.Mul(monthsPerYear),
		Currency: strings.ToUpper(in.Currency),
	}
	if in.Yearly != nil {
		if in.Yearly.IsNegative() {
			return entity.PackagePrice{}, domain.NewFieldError(domain.ErrInvalidInput, "price.yearly", "el precio no puede ser negativo", in.Yearly.String())
		}
		price.Yearly = *in.Yearly
	}
	if price.Currency == "" {
		price.Currency = defaultPackageCurrency
	}
	return price, nil
}

func normalizeLimits(l entity.PackageLimits) entity.PackageLimits {
	if l.Support == "" {
		l.Support = entity.SupportBasic
	}
	return l
}

func toPackageResponse(p *entity.SubscriptionPackage, enterpriseCount int) dto.PackageResponse {
	return dto.PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Code:            p.Code,
		Description:     p.Description,
		Price:           p.Price,
		Features:        nonNil(p.Features),
		Limits:          p.Limits,
		IsPopular:       p.IsPopular,
		IsActive:        p.IsActive,
		Category:        p.Category,
		TrialDays:       p.TrialDays,
		SetupFee:        p.SetupFee,
		BillingCycle:    p.BillingCycle,
		EnterpriseCount: enterpriseCount,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
