package postgres

import "github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"

// Repositories devuelve un repositorio por tabla sobre el mismo pool.
func Repositories(db DB) seed.Repositories {
	return seed.Repositories{
		BusinessTypes: NewBusinessTypeRepository(db),
		Enterprises:   NewEnterpriseRepository(db),
		Packages:      NewPackageRepository(db),
		Subscriptions: NewSubscriptionRepository(db),
		Currencies:    NewCurrencyRepository(db),
		Notifications: NewNotificationRepository(db),
		Users:         NewUserRepository(db),
	}
}
