package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

var _ repository.PackageRepository = (*PackageRepo)(nil)

const packageColumns = `id, name, code, description, price_monthly, price_yearly, price_currency, features, limits,
	is_popular, is_active, category, trial_days, setup_fee, billing_cycle, created_at, updated_at`

// PackageRepo implementación del puerto PackageRepository sobre PostgreSQL.
type PackageRepo struct {
	db Queryer
}

// NewPackageRepository construye el adaptador de persistencia para paquetes de suscripción.
func NewPackageRepository(db Queryer) *PackageRepo {
	return &PackageRepo{db: db}
}

// Create persiste un nuevo paquete.
func (r *PackageRepo) Create(ctx context.Context, p *entity.SubscriptionPackage) error {
	limits, err := jsonb(p.Limits)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO subscription_packages (` + packageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = queryer(ctx, r.db).Exec(ctx, query,
		p.ID, p.Name, p.Code, p.Description, p.Price.Monthly, p.Price.Yearly, p.Price.Currency,
		nonNilStrings(p.Features), limits, p.IsPopular, p.IsActive, p.Category, p.TrialDays, p.SetupFee,
		p.BillingCycle, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeError("insert package", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPackage, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene un paquete por código.
func (r *PackageRepo) GetByCode(ctx context.Context, code string) (*entity.SubscriptionPackage, error) {
	return r.getBy(ctx, "code", code)
}

func (r *PackageRepo) getBy(ctx context.Context, column, value string) (*entity.SubscriptionPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM subscription_packages WHERE ` + column + ` = $1`
	p, err := scanPackage(queryer(ctx, r.db).QueryRow(ctx, query, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return p, nil
}

// Update actualiza un paquete existente.
func (r *PackageRepo) Update(ctx context.Context, p *entity.SubscriptionPackage) error {
	limits, err := jsonb(p.Limits)
	if err != nil {
		return err
	}
	query := `
		UPDATE subscription_packages SET name = $2, code = $3, description = $4, price_monthly = $5,
		       price_yearly = $6, price_currency = $7, features = $8, limits = $9, is_popular = $10,
		       is_active = $11, category = $12, trial_days = $13, setup_fee = $14, billing_cycle = $15,
		       updated_at = $16
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		p.ID, p.Name, p.Code, p.Description, p.Price.Monthly, p.Price.Yearly, p.Price.Currency,
		nonNilStrings(p.Features), limits, p.IsPopular, p.IsActive, p.Category, p.TrialDays, p.SetupFee,
		p.BillingCycle, p.UpdatedAt,
	)
	if err != nil {
		return writeError("update package", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina un paquete por ID.
func (r *PackageRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM subscription_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todos los paquetes, del más reciente al más antiguo.
func (r *PackageRepo) List(ctx context.Context) ([]*entity.SubscriptionPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM subscription_packages ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.SubscriptionPackage, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPackage(row scanner) (*entity.SubscriptionPackage, error) {
	var (
		p      entity.SubscriptionPackage
		limits []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Price.Monthly, &p.Price.Yearly, &p.Price.Currency,
		&p.Features, &limits, &p.IsPopular, &p.IsActive, &p.Category, &p.TrialDays, &p.SetupFee,
		&p.BillingCycle, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSONB(limits, &p.Limits); err != nil {
		return nil, err
	}
	return &p, nil
}
