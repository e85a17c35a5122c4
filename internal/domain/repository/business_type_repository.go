package repository

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// BusinessTypeRepository puerto de persistencia para BusinessType.
type BusinessTypeRepository interface {
	Create(ctx context.Context, bt *entity.BusinessType) error
	GetByID(ctx context.Context, id string) (*entity.BusinessType, error)
	GetByCode(ctx context.Context, code string) (*entity.BusinessType, error)
	Update(ctx context.Context, bt *entity.BusinessType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.BusinessType, error)
}
