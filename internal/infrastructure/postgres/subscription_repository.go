package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, enterprise_id, enterprise_name, package_id, package_name, status, billing_cycle,
	amount, currency, start_date, end_date, auto_renew, cancelled_at, created_at, updated_at`

// SubscriptionRepo implementación del puerto SubscriptionRepository sobre PostgreSQL.
type SubscriptionRepo struct {
	db Queryer
}

// NewSubscriptionRepository construye el adaptador de persistencia para suscripciones.
func NewSubscriptionRepository(db Queryer) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// Create persiste una nueva suscripción.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := queryer(ctx, r.db).Exec(ctx, query,
		s.ID, s.EnterpriseID, s.EnterpriseName, s.PackageID, s.PackageName, s.Status, s.BillingCycle,
		s.Amount, s.Currency, s.StartDate, s.EndDate, s.AutoRenew, s.CancelledAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return writeError("insert subscription", err)
	}
	return nil
}

// GetByID obtiene una suscripción por ID.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	s, err := scanSubscription(queryer(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

// Update actualiza una suscripción existente.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions SET enterprise_name = $2, package_id = $3, package_name = $4, status = $5,
		       billing_cycle = $6, amount = $7, currency = $8, start_date = $9, end_date = $10,
		       auto_renew = $11, cancelled_at = $12, updated_at = $13
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		s.ID, s.EnterpriseName, s.PackageID, s.PackageName, s.Status, s.BillingCycle, s.Amount, s.Currency,
		s.StartDate, s.EndDate, s.AutoRenew, s.CancelledAt, s.UpdatedAt,
	)
	if err != nil {
		return writeError("update subscription", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina una suscripción por ID.
func (r *SubscriptionRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todas las suscripciones, de la más reciente a la más antigua.
func (r *SubscriptionRepo) List(ctx context.Context) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSubscription(row scanner) (*entity.Subscription, error) {
	var s entity.Subscription
	if err := row.Scan(&s.ID, &s.EnterpriseID, &s.EnterpriseName, &s.PackageID, &s.PackageName, &s.Status,
		&s.BillingCycle, &s.Amount, &s.Currency, &s.StartDate, &s.EndDate, &s.AutoRenew, &s.CancelledAt,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
