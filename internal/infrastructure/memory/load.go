package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"
)

// Repositories devuelve un repositorio por colección sobre el almacén.
func (s *Store) Repositories() seed.Repositories {
	return seed.Repositories{
		BusinessTypes: NewBusinessTypeRepo(s),
		Enterprises:   NewEnterpriseRepo(s),
		Packages:      NewPackageRepo(s),
		Subscriptions: NewSubscriptionRepo(s),
		Currencies:    NewCurrencyRepo(s),
		Notifications: NewNotificationRepo(s),
		Users:         NewUserRepo(s),
	}
}

// Open crea el almacén, carga ds (si no es nil) sin latencia y después activa latency.
func Open(ctx context.Context, latency time.Duration, ds *seed.Dataset) (*Store, error) {
	s, err := NewStore(0)
	if err != nil {
		return nil, err
	}
	if ds != nil {
		if err := seed.Load(ctx, s.Repositories(), ds); err != nil {
			return nil, err
		}
	}
	s.SetLatency(latency)
	return s, nil
}
