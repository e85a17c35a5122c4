package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

var _ repository.BusinessTypeRepository = (*BusinessTypeRepo)(nil)

const businessTypeColumns = `id, name, code, description, category, features, default_user_limit, is_active, created_at, updated_at`

// BusinessTypeRepo implementación del puerto BusinessTypeRepository sobre PostgreSQL.
// EnterpriseCount no se persiste: lo calcula el caso de uso.
type BusinessTypeRepo struct {
	db Queryer
}

// NewBusinessTypeRepository construye el adaptador de persistencia para tipos de negocio.
func NewBusinessTypeRepository(db Queryer) *BusinessTypeRepo {
	return &BusinessTypeRepo{db: db}
}

// Create persiste un nuevo tipo de negocio.
func (r *BusinessTypeRepo) Create(ctx context.Context, bt *entity.BusinessType) error {
	query := `
		INSERT INTO business_types (` + businessTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := queryer(ctx, r.db).Exec(ctx, query,
		bt.ID, bt.Name, bt.Code, bt.Description, bt.Category, nonNilStrings(bt.Features),
		bt.DefaultUserLimit, bt.IsActive, bt.CreatedAt, bt.UpdatedAt,
	)
	if err != nil {
		return writeError("insert business type", err)
	}
	return nil
}

// GetByID obtiene un tipo de negocio por ID.
func (r *BusinessTypeRepo) GetByID(ctx context.Context, id string) (*entity.BusinessType, error) {
	return r.getBy(ctx, "id", id)
}

// GetByCode obtiene un tipo de negocio por código.
func (r *BusinessTypeRepo) GetByCode(ctx context.Context, code string) (*entity.BusinessType, error) {
	return r.getBy(ctx, "code", code)
}

func (r *BusinessTypeRepo) getBy(ctx context.Context, column, value string) (*entity.BusinessType, error) {
	query := `SELECT ` + businessTypeColumns + ` FROM business_types WHERE ` + column + ` = $1`
	bt, err := scanBusinessType(queryer(ctx, r.db).QueryRow(ctx, query, value))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business type: %w", err)
	}
	return bt, nil
}

// Update actualiza un tipo de negocio existente.
func (r *BusinessTypeRepo) Update(ctx context.Context, bt *entity.BusinessType) error {
	query := `
		UPDATE business_types SET name = $2, code = $3, description = $4, category = $5, features = $6,
		       default_user_limit = $7, is_active = $8, updated_at = $9
		 WHERE id = $1`
	tag, err := queryer(ctx, r.db).Exec(ctx, query,
		bt.ID, bt.Name, bt.Code, bt.Description, bt.Category, nonNilStrings(bt.Features),
		bt.DefaultUserLimit, bt.IsActive, bt.UpdatedAt,
	)
	if err != nil {
		return writeError("update business type", err)
	}
	return notFoundIfNone(tag)
}

// Delete elimina un tipo de negocio por ID.
func (r *BusinessTypeRepo) Delete(ctx context.Context, id string) error {
	tag, err := queryer(ctx, r.db).Exec(ctx, `DELETE FROM business_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete business type: %w", err)
	}
	return notFoundIfNone(tag)
}

// List devuelve todos los tipos de negocio, del más reciente al más antiguo.
func (r *BusinessTypeRepo) List(ctx context.Context) ([]*entity.BusinessType, error) {
	query := `SELECT ` + businessTypeColumns + ` FROM business_types ORDER BY created_at DESC, id DESC`
	rows, err := queryer(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list business types: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.BusinessType, 0)
	for rows.Next() {
		bt, err := scanBusinessType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business type: %w", err)
		}
		list = append(list, bt)
	}
	return list, rows.Err()
}

func scanBusinessType(row scanner) (*entity.BusinessType, error) {
	var bt entity.BusinessType
	if err := row.Scan(&bt.ID, &bt.Name, &bt.Code, &bt.Description, &bt.Category, &bt.Features,
		&bt.DefaultUserLimit, &bt.IsActive, &bt.CreatedAt, &bt.UpdatedAt); err != nil {
		return nil, err
	}
	return &bt, nil
}
