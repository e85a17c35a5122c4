package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

// Asegura que EnterpriseRepo implementa repository.EnterpriseRepository.
var _ repository.EnterpriseRepository = (*EnterpriseRepo)(nil)

const enterpriseColumns = `id, name, code, business_type, tax_code, address, phone, email, website, contact_person,
	status, subscription_plan, subscription_expiry, user_limit, current_user_count, features,
	registration_date, last_activity, created_at, updated_at`

// EnterpriseRepo implementación del puerto EnterpriseRepository sobre PostgreSQL.
// El tipo de negocio y la persona de contacto se guardan embebidos en JSONB.
type EnterpriseRepo struct {
	db Queryer
}

// NewEnterpriseRepository construye el adaptador de persistencia para empresas.
func NewEnterpriseRepository(db Queryer) *EnterpriseRepo {
	return &EnterpriseRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *EnterpriseRepo) Create(ctx context.Context, e *entity.Enterprise) error {
	bt, contact, err := enterpriseDocs(e)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO enterprises (business_type_id, ` + enterpriseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = queryer(ctx, r.db).Exec(ctx, query,
		e.BusinessType.ID, e.ID, e.Name, e.Code, bt, e.TaxCode, e.Address, e.Phone, e.Email, e.Website, contact,
		e.Status, e.SubscriptionPlan, e.SubscriptionExpiry, e.UserLimit, e.CurrentUserCount, nonNilStrings(e.Features),
		e.RegistrationDate, e.LastActivity, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return writeError("insert enterprise", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *EnterpriseRepo) GetByID(ctx context.Context, id string) (*entity.Enterprise, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene una empresa por código.
func (r *EnterpriseRepo) GetByCode(ctx context.Context, code string) (*entity.Enterprise, error) {
	return r.getBy(ctx, "code", code)
}

func (r *EnterpriseRepo) getBy(ctx context.Context, column, value string) (*entity.Enterprise, error) {
	query := `SELECT ` + enterpriseColumns + ` FROM enterprises WHERE ` + column + ` = $1`
	e, err := scanEnterprise(queryer(ctx, r.db).QueryRow(ctx, query, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enterprise: %w", err)
	}
	return e, nil
}

// Update actualiza una empresa existente.
func (r *EnterpriseRepo) Update(ctx context.Context, e *entity.Enterprise) error {
	bt, contact, err := enterpriseDocs(e)
	if err != nil {
		return err
	}
	query := `
		UPDATE enterprises SET business_type_id = $2, name = $3, code = $4, business_type = $5, tax_code = $6,
		       address = $7, phone = $8, email = $9, website = $10, contact_person = $11, status = $12,
		       subscription_plan = $13, subscription_expiry = $14, user_limit = $15, current_user_count = $16,
		       features = $17, last_activity = $18, updated_at = $19
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		e.ID, e.BusinessType.ID, e.Name, e.Code, bt, e.TaxCode, e.Address, e.Phone, e.Email, e.Website, contact,
		e.Status, e.SubscriptionPlan, e.SubscriptionExpiry, e.UserLimit, e.CurrentUserCount, nonNilStrings(e.Features),
		e.LastActivity, e.UpdatedAt,
	)
	if err != nil {
		return writeError("update enterprise", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina una empresa por ID (sus suscripciones se eliminan en cascada).
func (r *EnterpriseRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM enterprises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enterprise: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todas las empresas, de la más reciente a la más antigua.
func (r *EnterpriseRepo) List(ctx context.Context) ([]*entity.Enterprise, error) {
	query := `SELECT ` + enterpriseColumns + ` FROM enterprises ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list enterprises: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Enterprise, 0)
	for rows.Next() {
		e, err := scanEnterprise(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enterprise: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func enterpriseDocs(e *entity.Enterprise) (bt, contact []byte, err error) {
	if bt, err = jsonb(e.BusinessType); err != nil {
		return nil, nil, err
	}
	if contact, err = jsonb(e.ContactPerson); err != nil {
		return nil, nil, err
	}
	return bt, contact, nil
}

func scanEnterprise(row scanner) (*entity.Enterprise, error) {
	var (
		e           entity.Enterprise
		bt, contact []byte
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Code, &bt, &e.TaxCode, &e.Address, &e.Phone, &e.Email, &e.Website, &contact,
		&e.Status, &e.SubscriptionPlan, &e.SubscriptionExpiry, &e.UserLimit, &e.CurrentUserCount, &e.Features,
		&e.RegistrationDate, &e.LastActivity, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if err := fromJSONB(bt, &e.BusinessType); err != nil {
		return nil, err
	}
	if err := fromJSONB(contact, &e.ContactPerson); err != nil {
		return nil, err
	}
	return &e, nil
}
