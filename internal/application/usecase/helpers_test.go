package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/idgen"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock reloj manipulable desde los tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	ctx   context.Context
	clock *fakeClock
	repos seed.Repositories

	enterprises   *EnterpriseUseCase
	businessTypes *BusinessTypeUseCase
	packages      *PackageUseCase
	subscriptions *SubscriptionUseCase
	currencies    *CurrencyUseCase
	notifications *NotificationUseCase
	users         *UserUseCase
}

// newFixture levanta el almacén en memoria con el conjunto de datos de demostración.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	ds, err := seed.Build(testNow, seed.Credentials{Email: "admin@example.com", Password: "admin123"})
	require.NoError(t, err)
	store, err := memory.Open(ctx, 0, ds)
	require.NoError(t, err)
	ids, err := idgen.NewSnowflake(1)
	require.NoError(t, err)

	clock := &fakeClock{now: testNow}
	r := store.Repositories()
	return &fixture{
		ctx:           ctx,
		clock:         clock,
		repos:         r,
		enterprises:   NewEnterpriseUseCase(r.Enterprises, r.BusinessTypes, ids, clock.Now),
		businessTypes: NewBusinessTypeUseCase(r.BusinessTypes, r.Enterprises, ids, clock.Now),
		packages:      NewPackageUseCase(r.Packages, r.Subscriptions, ids, clock.Now),
		subscriptions: NewSubscriptionUseCase(r.Subscriptions, r.Packages, r.Enterprises, r.Currencies, ids, clock.Now),
		currencies:    NewCurrencyUseCase(r.Currencies, ids, clock.Now),
		notifications: NewNotificationUseCase(r.Notifications, r.Users, ids, clock.Now),
		users:         NewUserUseCase(r.Users),
	}
}

func ptr[T any](v T) *T { return &v }
