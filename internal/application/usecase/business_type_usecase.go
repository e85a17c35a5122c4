package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
	"github.com/jhoicas/Enterprise-admin-api/pkg/validator"
)

const defaultUserLimit = 10

// BusinessTypeUseCase casos de uso de tipos de negocio. El número de empresas
// asociadas se calcula en cada lectura a partir del repositorio de empresas.
type BusinessTypeUseCase struct {
	repo           repository.BusinessTypeRepository
	enterpriseRepo repository.EnterpriseRepository
	ids            IDGenerator
	now            Clock
}

// NewBusinessTypeUseCase construye el caso de uso.
func NewBusinessTypeUseCase(repo repository.BusinessTypeRepository, enterpriseRepo repository.EnterpriseRepository, ids IDGenerator, clock Clock) *BusinessTypeUseCase {
	return &BusinessTypeUseCase{repo: repo, enterpriseRepo: enterpriseRepo, ids: ids, now: clockOrDefault(clock)}
}

// List busca por nombre, código y descripción; filtra por categoría y estado.
func (uc *BusinessTypeUseCase) List(ctx context.Context, f dto.BusinessTypeFilter) (query.Result[dto.BusinessTypeResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.BusinessTypeResponse]{}, err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return query.Result[dto.BusinessTypeResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(b *entity.BusinessType) []string { return []string{b.Name, b.Code, b.Description} },
		query.Equals(f.Category, func(b *entity.BusinessType) string { return b.Category }),
		query.BoolEquals(f.IsActive, func(b *entity.BusinessType) bool { return b.IsActive }),
	)
	return query.Map(res, func(b *entity.BusinessType) dto.BusinessTypeResponse {
		return toBusinessTypeResponse(b, counts[b.ID])
	}), nil
}

// GetByID obtiene un tipo de negocio con su número de empresas.
func (uc *BusinessTypeUseCase) GetByID(ctx context.Context, id string) (*dto.BusinessTypeResponse, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := toBusinessTypeResponse(b, counts[b.ID])
	return &out, nil
}

// Create crea un tipo de negocio. Devuelve ErrDuplicate (campo code) si el código ya existe.
func (uc *BusinessTypeUseCase) Create(ctx context.Context, in dto.CreateBusinessTypeRequest) (*dto.BusinessTypeResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	if err := checkCategory(in.Category); err != nil {
		return nil, err
	}
	if err := checkFeatures(in.Features); err != nil {
		return nil, err
	}
	code := normalizeCode(in.Code)
	if existing, err := uc.repo.GetByCode(ctx, code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, newDuplicateCode(code)
	}
	now := uc.now()
	b := &entity.BusinessType{
		ID:               uc.ids.NewID(PrefixBusinessType),
		Name:             strings.TrimSpace(in.Name),
		Code:             code,
		Description:      in.Description,
		Category:         in.Category,
		Features:         slices.Clone(in.Features),
		DefaultUserLimit: defaultUserLimit,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if b.Features == nil {
		b.Features = []string{}
	}
	setIf(&b.DefaultUserLimit, in.DefaultUserLimit)
	setIf(&b.IsActive, in.IsActive)
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, duplicateCode(err, code)
	}
	out := toBusinessTypeResponse(b, 0)
	return &out, nil
}

// Update mezcla los campos enviados. Las empresas ya creadas conservan su copia del tipo.
func (uc *BusinessTypeUseCase) Update(ctx context.Context, id string, in dto.UpdateBusinessTypeRequest) (*dto.BusinessTypeResponse, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	current, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	b := current.Clone()
	if in.Code != nil {
		code := normalizeCode(*in.Code)
		if code != b.Code {
			existing, err := uc.repo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != b.ID {
				return nil, newDuplicateCode(code)
			}
		}
		b.Code = code
	}
	if in.Category != nil {
		if err := checkCategory(*in.Category); err != nil {
			return nil, err
		}
		b.Category = *in.Category
	}
	if in.Features != nil {
		if err := checkFeatures(in.Features); err != nil {
			return nil, err
		}
		b.Features = slices.Clone(in.Features)
	}
	setIf(&b.Name, in.Name)
	setIf(&b.Description, in.Description)
	setIf(&b.DefaultUserLimit, in.DefaultUserLimit)
	setIf(&b.IsActive, in.IsActive)
	b.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, duplicateCode(err, b.Code)
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return nil, err
	}
	out := toBusinessTypeResponse(b, counts[b.ID])
	return &out, nil
}

// ToggleStatus invierte IsActive.
func (uc *BusinessTypeUseCase) ToggleStatus(ctx context.Context, id string) (*dto.BusinessTypeResponse, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	active := !b.IsActive
	return uc.Update(ctx, id, dto.UpdateBusinessTypeRequest{IsActive: &active})
}

// Delete elimina el tipo de negocio. Se rechaza con ErrConflict mientras tenga empresas.
func (uc *BusinessTypeUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	counts, err := uc.enterpriseCounts(ctx)
	if err != nil {
		return err
	}
	if n := counts[id]; n > 0 {
		return domain.NewFieldError(domain.ErrConflict, "enterprise_count",
			"no se puede eliminar un tipo de negocio con empresas asociadas", n)
	}
	return uc.repo.Delete(ctx, id)
}

// Catalog categorías y funcionalidades admitidas.
func (uc *BusinessTypeUseCase) Catalog() dto.CatalogResponse {
	return dto.CatalogResponse{
		Categories: slices.Clone(entity.BusinessCategories),
		Features:   slices.Clone(entity.FeatureCatalog),
	}
}

// Stats resumen de tipos de negocio.
func (uc *BusinessTypeUseCase) Stats(ctx context.Context) (*dto.BusinessTypeStatsResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	enterprises, err := uc.enterpriseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	active := stats.Count(list, func(b *entity.BusinessType) bool { return b.IsActive })
	return &dto.BusinessTypeStatsResponse{
		TotalTypes:    len(list),
		ActiveTypes:   active,
		InactiveTypes: len(list) - active,
		ByCategory: stats.Series(stats.CountBy(list, func(b *entity.BusinessType) string { return b.Category }),
			entity.BusinessCategories),
		TotalEnterprises: len(enterprises),
		EnterprisesByType: stats.Series(stats.CountBy(enterprises, func(e *entity.Enterprise) string {
			return e.BusinessType.Name
		}), nil),
	}, nil
}

func (uc *BusinessTypeUseCase) get(ctx context.Context, id string) (*entity.BusinessType, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BusinessTypeUseCase) enterpriseCounts(ctx context.Context) (map[string]int, error) {
	enterprises, err := uc.enterpriseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.CountBy(enterprises, func(e *entity.Enterprise) string { return e.BusinessType.ID }), nil
}

func checkCategory(category string) error {
	if !slices.Contains(entity.BusinessCategories, category) {
		return domain.NewFieldError(domain.ErrInvalidInput, "category",
			"category debe ser una de ["+strings.Join(entity.BusinessCategories, " ")+"]", category)
	}
	return nil
}

func toBusinessTypeResponse(b *entity.BusinessType, enterpriseCount int) dto.BusinessTypeResponse {
	return dto.BusinessTypeResponse{
		ID:               b.ID,
		Name:             b.Name,
		Code:             b.Code,
		Description:      b.Description,
		Category:         b.Category,
		Features:         nonNil(b.Features),
		DefaultUserLimit: b.DefaultUserLimit,
		IsActive:         b.IsActive,
		EnterpriseCount:  enterpriseCount,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
