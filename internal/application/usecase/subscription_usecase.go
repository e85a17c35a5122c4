package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/currency"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

const renewalWindow = 7 * 24 * time.Hour

// SubscriptionUseCase asignación de paquetes a empresas.
// Crear o renovar actualiza el plan y vencimiento de la empresa; no es atómico
// entre ambas entidades.
type SubscriptionUseCase struct {
	repo           repository.SubscriptionRepository
	packageRepo    repository.PackageRepository
	enterpriseRepo repository.EnterpriseRepository
	currencyRepo   repository.CurrencyRepository
	ids            IDGenerator
	now            Clock
}

// NewSubscriptionUseCase construye el caso de uso. currencyRepo se usa para
// expresar los ingresos en la moneda base.
func NewSubscriptionUseCase(
	repo repository.SubscriptionRepository,
	packageRepo repository.PackageRepository,
	enterpriseRepo repository.EnterpriseRepository,
	currencyRepo repository.CurrencyRepository,
	ids IDGenerator,
	clock Clock,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		repo:           repo,
		packageRepo:    packageRepo,
		enterpriseRepo: enterpriseRepo,
		currencyRepo:   currencyRepo,
		ids:            ids,
		now:            clockOrDefault(clock),
	}
}

// List busca por empresa y paquete; el filtro de estado usa el estado efectivo.
func (uc *SubscriptionUseCase) List(ctx context.Context, f dto.SubscriptionFilter) (query.Result[dto.SubscriptionResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.SubscriptionResponse]{}, err
	}
	now := uc.now()
	res := query.Apply(list, f.Params,
		func(s *entity.Subscription) []string { return []string{s.EnterpriseName, s.PackageName} },
		query.Equals(f.Status, func(s *entity.Subscription) string { return s.EffectiveStatus(now) }),
		query.Equals(f.EnterpriseID, func(s *entity.Subscription) string { return s.EnterpriseID }),
		query.Equals(f.PackageID, func(s *entity.Subscription) string { return s.PackageID }),
	)
	return query.Map(res, func(s *entity.Subscription) dto.SubscriptionResponse { return toSubscriptionResponse(s, now) }), nil
}

// GetByID obtiene una suscripción.
func (uc *SubscriptionUseCase) GetByID(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toSubscriptionResponse(s, uc.now())
	return &out, nil
}

// Create suscribe una empresa a un paquete activo. Una empresa solo puede tener
// una suscripción vigente (ErrConflict). Con Trial y días de prueba en el
// paquete se crea en estado trial.
func (uc *SubscriptionUseCase) Create(ctx context.Context, in dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	ent, err := uc.enterpriseRepo.GetByID(ctx, in.EnterpriseID)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "enterprise_id", "la empresa no existe", in.EnterpriseID)
	}
	pkg, err := uc.packageRepo.GetByID(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "package_id", "el paquete no existe", in.PackageID)
	}
	if !pkg.IsActive {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "package_id", "el paquete está inactivo", in.PackageID)
	}
	now := uc.now()
	existing, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(existing, func(s *entity.Subscription) bool {
		return s.EnterpriseID == ent.ID && s.IsCurrent(now)
	}) {
		return nil, domain.NewFieldError(domain.ErrConflict, "enterprise_id", "la empresa ya tiene una suscripción vigente", ent.ID)
	}

	cycle := pkg.BillingCycle
	if in.BillingCycle != "" {
		cycle = in.BillingCycle
	}
	if cycle == "" {
		cycle = entity.BillingMonthly
	}
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	s := &entity.Subscription{
		ID:             uc.ids.NewID(PrefixSubscription),
		EnterpriseID:   ent.ID,
		EnterpriseName: ent.Name,
		PackageID:      pkg.ID,
		PackageName:    pkg.Name,
		Status:         entity.SubscriptionActive,
		BillingCycle:   cycle,
		Amount:         pkg.PriceFor(cycle),
		Currency:       pkg.Price.Currency,
		StartDate:      start,
		EndDate:        entity.NextPeriodEnd(start, cycle),
		AutoRenew:      true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Trial && pkg.TrialDays > 0 {
		s.Status = entity.SubscriptionTrial
		s.Amount = decimal.Zero
		s.EndDate = start.AddDate(0, 0, pkg.TrialDays)
	}
	if !s.EndDate.After(now) {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "start_date", "el periodo de la suscripción ya habría terminado", start.Format(time.RFC3339))
	}
	setIf(&s.AutoRenew, in.AutoRenew)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.syncEnterprise(ctx, ent, pkg, s.EndDate, now); err != nil {
		return nil, err
	}
	out := toSubscriptionResponse(s, now)
	return &out, nil
}

// Cancel cancela una suscripción vigente.
func (uc *SubscriptionUseCase) Cancel(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if !current.IsCurrent(now) {
		return nil, domain.NewFieldError(domain.ErrConflict, "status", "solo se cancelan suscripciones vigentes", current.EffectiveStatus(now))
	}
	s := current.Clone()
	s.Status = entity.SubscriptionCancelled
	s.AutoRenew = false
	s.CancelledAt = &now
	s.UpdatedAt = now
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toSubscriptionResponse(s, now)
	return &out, nil
}

// Renew extiende la suscripción un ciclo de facturación desde su fin (o desde
// ahora si ya venció). Una prueba renovada pasa a activa con el precio del paquete.
func (uc *SubscriptionUseCase) Renew(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == entity.SubscriptionCancelled {
		return nil, domain.NewFieldError(domain.ErrConflict, "status", "una suscripción cancelada no se puede renovar", current.Status)
	}
	pkg, err := uc.packageRepo.GetByID(ctx, current.PackageID)
	if err != nil {
		return nil, err
	}
	if current.Status == entity.SubscriptionTrial && pkg == nil {
		return nil, domain.NewFieldError(domain.ErrConflict, "package_id", "el paquete de la prueba ya no existe", current.PackageID)
	}
	now := uc.now()
	if !current.IsCurrent(now) {
		existing, err := uc.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(existing, func(s *entity.Subscription) bool {
			return s.ID != current.ID && s.EnterpriseID == current.EnterpriseID && s.IsCurrent(now)
		}) {
			return nil, domain.NewFieldError(domain.ErrConflict, "enterprise_id", "la empresa ya tiene una suscripción vigente", current.EnterpriseID)
		}
	}
	s := current.Clone()
	from := s.EndDate
	if from.Before(now) {
		from = now
	}
	if s.Status == entity.SubscriptionTrial {
		s.Amount = pkg.PriceFor(s.BillingCycle)
	}
	s.Status = entity.SubscriptionActive
	s.EndDate = entity.NextPeriodEnd(from, s.BillingCycle)
	s.UpdatedAt = now
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	if pkg != nil {
		ent, err := uc.enterpriseRepo.GetByID(ctx, s.EnterpriseID)
		if err != nil {
			return nil, err
		}
		if ent != nil {
			if err := uc.syncEnterprise(ctx, ent, pkg, s.EndDate, now); err != nil {
				return nil, err
			}
		}
	}
	out := toSubscriptionResponse(s, now)
	return &out, nil
}

// Delete elimina el registro de suscripción.
func (uc *SubscriptionUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats resumen de suscripciones e ingresos. Los importes se expresan en la
// moneda base cuando la moneda de la suscripción está registrada.
func (uc *SubscriptionUseCase) Stats(ctx context.Context) (*dto.SubscriptionStatsResponse, error) {
	subs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	pkgs, err := uc.packageRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	toBase, baseCode, err := uc.baseConverter(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	current := func(s *entity.Subscription) bool { return s.IsCurrent(now) }
	amount := func(s *entity.Subscription) decimal.Decimal { return toBase(s.Amount, s.Currency) }
	monthly := func(s *entity.Subscription) decimal.Decimal {
		if s.BillingCycle == entity.BillingYearly {
			return amount(s).DivRound(monthsPerYear, 2)
		}
		return amount(s)
	}

	byStatus := stats.CountBy(subs, func(s *entity.Subscription) string { return s.EffectiveStatus(now) })
	return &dto.SubscriptionStatsResponse{
		TotalSubscriptions:     len(subs),
		ActiveSubscriptions:    byStatus[entity.SubscriptionActive],
		TrialSubscriptions:     byStatus[entity.SubscriptionTrial],
		ExpiredSubscriptions:   byStatus[entity.SubscriptionExpired],
		CancelledSubscriptions: byStatus[entity.SubscriptionCancelled],
		ByStatus:               stats.Series(byStatus, entity.SubscriptionStatuses),
		Currency:               baseCode,
		TotalRevenue:           stats.Sum(subs, amount, current),
		MonthlyRevenue:         stats.Sum(subs, monthly, current),
		RevenueByPackage: stats.Series(stats.SumBy(subs,
			func(s *entity.Subscription) string { return s.PackageName }, amount, current), nil),
		ChurnRate: stats.Percent(byStatus[entity.SubscriptionCancelled], len(subs)),
		ExpiringSoon: stats.Count(subs, func(s *entity.Subscription) bool {
			return s.IsCurrent(now) && s.EndDate.Sub(now) <= renewalWindow
		}),
		TotalPackages:  len(pkgs),
		ActivePackages: stats.Count(pkgs, func(p *entity.SubscriptionPackage) bool { return p.IsActive }),
	}, nil
}

func (uc *SubscriptionUseCase) get(ctx context.Context, id string) (*entity.Subscription, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// syncEnterprise refleja el paquete vigente en el plan y vencimiento de la empresa.
func (uc *SubscriptionUseCase) syncEnterprise(ctx context.Context, ent *entity.Enterprise, pkg *entity.SubscriptionPackage, expiry, now time.Time) error {
	e := ent.Clone()
	if slices.Contains(entity.SubscriptionPlans, pkg.Category) {
		e.SubscriptionPlan = pkg.Category
	}
	e.SubscriptionExpiry = expiry
	e.UpdatedAt = now
	return uc.enterpriseRepo.Update(ctx, e)
}

// baseConverter devuelve una función que expresa un importe en la moneda base.
// Importes en monedas no registradas se suman sin convertir.
func (uc *SubscriptionUseCase) baseConverter(ctx context.Context) (func(decimal.Decimal, string) decimal.Decimal, string, error) {
	identity := func(d decimal.Decimal, _ string) decimal.Decimal { return d }
	if uc.currencyRepo == nil {
		return identity, "", nil
	}
	list, err := uc.currencyRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	rates := make(map[string]decimal.Decimal, len(list))
	var base *entity.CurrencyRate
	for _, c := range list {
		rates[c.Code] = c.Rate
		if c.IsBaseCurrency {
			base = c
		}
	}
	if base == nil {
		return identity, "", nil
	}
	return func(d decimal.Decimal, code string) decimal.Decimal {
		rate, ok := rates[code]
		if !ok {
			return d
		}
		v, err := currency.Convert(d, rate, base.Rate)
		if err != nil {
			return d
		}
		return v.Round(2)
	}, base.Code, nil
}

func toSubscriptionResponse(s *entity.Subscription, now time.Time) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:             s.ID,
		EnterpriseID:   s.EnterpriseID,
		EnterpriseName: s.EnterpriseName,
		PackageID:      s.PackageID,
		PackageName:    s.PackageName,
		Status:         s.EffectiveStatus(now),
		BillingCycle:   s.BillingCycle,
		Amount:         s.Amount,
		Currency:       s.Currency,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		DaysRemaining:  s.DaysRemaining(now),
		AutoRenew:      s.AutoRenew,
		CancelledAt:    s.CancelledAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
