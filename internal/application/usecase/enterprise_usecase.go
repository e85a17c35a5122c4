package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

const (
	defaultSubscriptionDays = 30
	expiringWindow          = 30 * 24 * time.Hour
	growthWindow            = 30 * 24 * time.Hour
)

// EnterpriseUseCase aplica reglas de negocio para empresas (casos de uso).
type EnterpriseUseCase struct {
	repo   repository.EnterpriseRepository
	btRepo repository.BusinessTypeRepository
	ids    IDGenerator
	now    Clock
}

// NewEnterpriseUseCase construye el caso de uso con los puertos de persistencia.
func NewEnterpriseUseCase(repo repository.EnterpriseRepository, btRepo repository.BusinessTypeRepository, ids IDGenerator, clock Clock) *EnterpriseUseCase {
	return &EnterpriseUseCase{repo: repo, btRepo: btRepo, ids: ids, now: clockOrDefault(clock)}
}

// List busca por nombre, código, email, NIT y contacto; filtra por estado, plan y tipo de negocio.
func (uc *EnterpriseUseCase) List(ctx context.Context, f dto.EnterpriseFilter) (query.Result[dto.EnterpriseResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.EnterpriseResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(e *entity.Enterprise) []string {
			return []string{e.Name, e.Code, e.Email, e.TaxCode, e.ContactPerson.Name}
		},
		query.Equals(f.Status, func(e *entity.Enterprise) string { return e.Status }),
		query.Equals(f.SubscriptionPlan, func(e *entity.Enterprise) string { return e.SubscriptionPlan }),
		query.Equals(f.BusinessTypeID, func(e *entity.Enterprise) string { return e.BusinessType.ID }),
	)
	now := uc.now()
	return query.Map(res, func(e *entity.Enterprise) dto.EnterpriseResponse { return toEnterpriseResponse(e, now) }), nil
}

// GetByID obtiene una empresa. Devuelve domain.ErrNotFound si no existe.
func (uc *EnterpriseUseCase) GetByID(ctx context.Context, id string) (*dto.EnterpriseResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toEnterpriseResponse(e, uc.now())
	return &out, nil
}

// Create registra una empresa. El código se normaliza a mayúsculas y debe ser único;
// límites y funcionalidades se heredan del tipo de negocio si no se indican.
func (uc *EnterpriseUseCase) Create(ctx context.Context, in dto.CreateEnterpriseRequest) (*dto.EnterpriseResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	code := normalizeCode(in.Code)
	if existing, err := uc.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, newDuplicateCode(code)
	}
	bt, err := uc.businessType(ctx, in.BusinessTypeID)
	if err != nil {
		return nil, err
	}
	features := bt.Features
	if in.Features != nil {
		if err := checkFeatures(in.Features); err != nil {
			return nil, err
		}
		features = in.Features
	}

	now := uc.now()
	e := &entity.Enterprise{
		ID:                 uc.ids.NewID(PrefixEnterprise),
		Name:               strings.TrimSpace(in.Name),
		Code:               code,
		BusinessType:       bt.Ref(),
		TaxCode:            in.TaxCode,
		Address:            in.Address,
		Phone:              in.Phone,
		Email:              in.Email,
		Website:            in.Website,
		Status:             entity.EnterprisePending,
		SubscriptionPlan:   entity.PlanBasic,
		SubscriptionExpiry: now.AddDate(0, 0, defaultSubscriptionDays),
		UserLimit:          bt.DefaultUserLimit,
		Features:           slices.Clone(features),
		RegistrationDate:   now,
		LastActivity:       now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.ContactPerson != nil {
		e.ContactPerson = *in.ContactPerson
	}
	if in.Status != "" {
		e.Status = in.Status
	}
	if in.SubscriptionPlan != "" {
		e.SubscriptionPlan = in.SubscriptionPlan
	}
	if in.SubscriptionExpiry != nil {
		e.SubscriptionExpiry = *in.SubscriptionExpiry
	}
	if in.UserLimit != nil {
		e.UserLimit = *in.UserLimit
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, duplicateCode(err, code)
	}
	out := toEnterpriseResponse(e, now)
	return &out, nil
}

// Update mezcla los campos enviados sobre la empresa existente.
func (uc *EnterpriseUseCase) Update(ctx context.Context, id string, in dto.UpdateEnterpriseRequest) (*dto.EnterpriseResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	e := current.Clone()
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code != e.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != e.ID {
				return nil, newDuplicateCode(code)
			}
		}
		e.Code = code
	}
	if in.BusinessTypeID != nil && *in.BusinessTypeID != e.BusinessType.ID {
		bt, err := uc.businessType(ctx, *in.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		e.BusinessType = bt.Ref()
	}
	if in.Features != nil {
		if err := checkFeatures(in.Features); err != nil {
			return nil, err
		}
		e.Features = slices.Clone(in.Features)
	}
	setIf(&e.Name, in.Name)
	setIf(&e.TaxCode, in.TaxCode)
	setIf(&e.Address, in.Address)
	setIf(&e.Phone, in.Phone)
	setIf(&e.Email, in.Email)
	setIf(&e.Website, in.Website)
	setIf(&e.Status, in.Status)
	setIf(&e.SubscriptionPlan, in.SubscriptionPlan)
	setIf(&e.SubscriptionExpiry, in.SubscriptionExpiry)
	setIf(&e.UserLimit, in.UserLimit)
	setIf(&e.CurrentUserCount, in.CurrentUserCount)
	if in.ContactPerson != nil {
		e.ContactPerson = *in.ContactPerson
	}
	now := uc.now()
	e.UpdatedAt = now
	e.LastActivity = now
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, duplicateCode(err, e.Code)
	}
	out := toEnterpriseResponse(e, now)
	return &out, nil
}

// UpdateStatus aprueba, suspende o desactiva una empresa.
func (uc *EnterpriseUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.EnterpriseResponse, error) {
	if !slices.Contains(entity.EnterpriseStatuses, status) {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "status",
			"status debe ser uno de ["+strings.Join(entity.EnterpriseStatuses, " ")+"]", status)
	}
	return uc.Update(ctx, id, dto.UpdateEnterpriseRequest{Status: &status})
}

// Delete elimina una empresa junto con sus suscripciones.
func (uc *EnterpriseUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// HasActiveFeature informa si la empresa tiene la funcionalidad habilitada, está
// activa y su suscripción no venció. Devuelve false (sin error) si la empresa no existe.
// Solo devuelve error ante fallos de infraestructura.
func (uc *EnterpriseUseCase) HasActiveFeature(ctx context.Context, enterpriseID, feature string) (bool, error) {
	if enterpriseID == "" || feature == "" {
		return false, fmt.Errorf("feature: enterpriseID y feature son obligatorios")
	}
	e, err := uc.repo.GetByID(ctx, enterpriseID)
	if err != nil {
		return false, err
	}
	if e == nil {
		return false, nil
	}
	return e.Status == entity.EnterpriseActive && e.HasFeature(feature) && !e.IsSubscriptionExpired(uc.now()), nil
}

// Stats recalcula el resumen de empresas. Las cuentas por estado suman el total.
func (uc *EnterpriseUseCase) Stats(ctx context.Context) (*dto.EnterpriseStatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	byStatus := stats.CountBy(list, func(e *entity.Enterprise) string { return e.Status })
	out := &dto.EnterpriseStatsResponse{
		TotalEnterprises:     len(list),
		ActiveEnterprises:    byStatus[entity.EnterpriseActive],
		PendingEnterprises:   byStatus[entity.EnterprisePending],
		SuspendedEnterprises: byStatus[entity.EnterpriseSuspended],
		InactiveEnterprises:  byStatus[entity.EnterpriseInactive],
		ByPlan: stats.Series(stats.CountBy(list, func(e *entity.Enterprise) string { return e.SubscriptionPlan }),
			entity.SubscriptionPlans),
		ByBusinessType: stats.Series(stats.CountBy(list, func(e *entity.Enterprise) string { return e.BusinessType.Name }), nil),
		ExpiringSoon: stats.Count(list, func(e *entity.Enterprise) bool {
			return !e.IsSubscriptionExpired(now) && e.SubscriptionExpiry.Sub(now) <= expiringWindow
		}),
		Expired: stats.Count(list, func(e *entity.Enterprise) bool { return e.IsSubscriptionExpired(now) }),
	}
	for _, e := range list {
		out.TotalUsers += e.CurrentUserCount
		out.TotalUserLimit += e.UserLimit
	}
	out.UserUtilization = stats.Percent(out.TotalUsers, out.TotalUserLimit)
	recent := registeredBetween(list, now.Add(-growthWindow), now)
	previous := registeredBetween(list, now.Add(-2*growthWindow), now.Add(-growthWindow))
	out.NewThisMonth = recent
	out.GrowthRate = stats.GrowthRate(recent, previous)
	return out, nil
}

func (uc *EnterpriseUseCase) get(ctx context.Context, id string) (*entity.Enterprise, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (uc *EnterpriseUseCase) businessType(ctx context.Context, id string) (*entity.BusinessType, error) {
	bt, err := uc.btRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bt == nil {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "business_type_id", "el tipo de negocio no existe", id)
	}
	if !bt.IsActive {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, "business_type_id", "el tipo de negocio está inactivo", id)
	}
	return bt, nil
}

func registeredBetween(list []*entity.Enterprise, from, to time.Time) int {
	return stats.Count(list, func(e *entity.Enterprise) bool {
		return e.RegistrationDate.After(from) && !e.RegistrationDate.After(to)
	})
}

func checkFeatures(features []string) error {
	for _, f := range features {
		if !entity.IsKnownFeature(f) {
			return domain.NewFieldError(domain.ErrInvalidInput, "features", "funcionalidad desconocida", f)
		}
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func toEnterpriseResponse(e *entity.Enterprise, now time.Time) dto.EnterpriseResponse {
	return dto.EnterpriseResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Code:               e.Code,
		BusinessType:       e.BusinessType,
		TaxCode:            e.TaxCode,
		Address:            e.Address,
		Phone:              e.Phone,
		Email:              e.Email,
		Website:            e.Website,
		ContactPerson:      e.ContactPerson,
		Status:             e.Status,
		SubscriptionPlan:   e.SubscriptionPlan,
		SubscriptionExpiry: e.SubscriptionExpiry,
		DaysUntilExpiry:    e.DaysUntilExpiry(now),
		IsExpired:          e.IsSubscriptionExpired(now),
		UserLimit:          e.UserLimit,
		CurrentUserCount:   e.CurrentUserCount,
		Features:           nonNil(e.Features),
		RegistrationDate:   e.RegistrationDate,
		LastActivity:       e.LastActivity,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
