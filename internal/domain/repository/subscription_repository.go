package repository

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// PackageRepository puerto de persistencia para SubscriptionPackage.
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.SubscriptionPackage) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPackage, error)
	GetByCode(ctx context.Context, code string) (*entity.SubscriptionPackage, error)
	Update(ctx context.Context, pkg *entity.SubscriptionPackage) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.SubscriptionPackage, error)
}

// SubscriptionRepository puerto de persistencia para Subscription.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	Update(ctx context.Context, sub *entity.Subscription) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Subscription, error)
}
