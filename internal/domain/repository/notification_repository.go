package repository

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, n *entity.Notification) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Notification, error)
}
