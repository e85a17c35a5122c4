package repository

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// EnterpriseRepository define el puerto de persistencia para Enterprise (DIP).
// La implementación vive en infrastructure (memory o postgres).
// Get* devuelven (nil, nil) cuando el registro no existe.
type EnterpriseRepository interface {
	Create(ctx context.Context, enterprise *entity.Enterprise) error
	GetByID(ctx context.Context, id string) (*entity.Enterprise, error)
	GetByCode(ctx context.Context, code string) (*entity.Enterprise, error)
	Update(ctx context.Context, enterprise *entity.Enterprise) error
	Delete(ctx context.Context, id string) error
	// List devuelve la colección completa ordenada por fecha de creación descendente.
	List(ctx context.Context) ([]*entity.Enterprise, error)
}
