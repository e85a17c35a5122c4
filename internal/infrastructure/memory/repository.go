package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

// record entidades almacenables: se guardan y devuelven como copias.
type record[T any] interface {
	Clone() T
}

// Repo repositorio genérico sobre una tabla. Las entidades entran y salen
// clonadas, de modo que los llamadores nunca comparten memoria con el almacén.
type Repo[T record[T]] struct {
	store   *Store
	table   string
	id      func(T) string
	code    func(T) string // nil si la tabla no tiene código único
	created func(T) time.Time
	// onDelete borra los dependientes dentro de la misma transacción.
	onDelete func(txn *memdb.Txn, id string) error
}

var (
	_ repository.EnterpriseRepository   = (*Repo[*entity.Enterprise])(nil)
	_ repository.BusinessTypeRepository = (*Repo[*entity.BusinessType])(nil)
	_ repository.PackageRepository      = (*Repo[*entity.SubscriptionPackage])(nil)
	_ repository.SubscriptionRepository = (*Repo[*entity.Subscription])(nil)
	_ repository.CurrencyRepository     = (*Repo[*entity.CurrencyRate])(nil)
	_ repository.NotificationRepository = (*Repo[*entity.Notification])(nil)
)

// NewEnterpriseRepo repositorio de empresas. Borrar una empresa borra sus
// suscripciones, igual que ON DELETE CASCADE en PostgreSQL.
func NewEnterpriseRepo(s *Store) *Repo[*entity.Enterprise] {
	return &Repo[*entity.Enterprise]{
		store: s, table: TableEnterprise,
		id:      func(e *entity.Enterprise) string { return e.ID },
		code:    func(e *entity.Enterprise) string { return e.Code },
		created: func(e *entity.Enterprise) time.Time { return e.CreatedAt },
		onDelete: func(txn *memdb.Txn, id string) error {
			if _, err := txn.DeleteAll(TableSubscription, indexEnterprise, id); err != nil {
				return fmt.Errorf("memory: %s: %w", TableSubscription, err)
			}
			return nil
		},
	}
}

// NewBusinessTypeRepo repositorio de tipos de negocio.
func NewBusinessTypeRepo(s *Store) *Repo[*entity.BusinessType] {
	return &Repo[*entity.BusinessType]{
		store: s, table: TableBusinessType,
		id:      func(b *entity.BusinessType) string { return b.ID },
		code:    func(b *entity.BusinessType) string { return b.Code },
		created: func(b *entity.BusinessType) time.Time { return b.CreatedAt },
	}
}

// NewPackageRepo repositorio de paquetes.
func NewPackageRepo(s *Store) *Repo[*entity.SubscriptionPackage] {
	return &Repo[*entity.SubscriptionPackage]{
		store: s, table: TablePackage,
		id:      func(p *entity.SubscriptionPackage) string { return p.ID },
		code:    func(p *entity.SubscriptionPackage) string { return p.Code },
		created: func(p *entity.SubscriptionPackage) time.Time { return p.CreatedAt },
	}
}

// NewSubscriptionRepo repositorio de suscripciones.
func NewSubscriptionRepo(s *Store) *Repo[*entity.Subscription] {
	return &Repo[*entity.Subscription]{
		store: s, table: TableSubscription,
		id:      func(v *entity.Subscription) string { return v.ID },
		created: func(v *entity.Subscription) time.Time { return v.CreatedAt },
	}
}

// NewCurrencyRepo repositorio de monedas.
func NewCurrencyRepo(s *Store) *Repo[*entity.CurrencyRate] {
	return &Repo[*entity.CurrencyRate]{
		store: s, table: TableCurrency,
		id:      func(c *entity.CurrencyRate) string { return c.ID },
		code:    func(c *entity.CurrencyRate) string { return c.Code },
		created: func(c *entity.CurrencyRate) time.Time { return c.CreatedAt },
	}
}

// NewNotificationRepo repositorio de notificaciones.
func NewNotificationRepo(s *Store) *Repo[*entity.Notification] {
	return &Repo[*entity.Notification]{
		store: s, table: TableNotification,
		id:      func(n *entity.Notification) string { return n.ID },
		created: func(n *entity.Notification) time.Time { return n.CreatedAt },
	}
}

// Create inserta v. Devuelve domain.ErrDuplicate si el ID o el código ya existen.
func (r *Repo[T]) Create(ctx context.Context, v T) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	txn := r.store.db.Txn(true)
	defer txn.Abort()
	existing, err := txn.First(r.table, indexID, r.id(v))
	if err != nil {
		return fmt.Errorf("memory: %s: %w", r.table, err)
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	if err := r.insert(txn, v); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *Repo[T]) GetByID(ctx context.Context, id string) (T, error) {
	return r.first(ctx, indexID, id)
}

// GetByCode devuelve (nil, nil) si no existe.
func (r *Repo[T]) GetByCode(ctx context.Context, code string) (T, error) {
	return r.first(ctx, indexCode, code)
}

// Update reemplaza el registro. domain.ErrNotFound si no existe.
func (r *Repo[T]) Update(ctx context.Context, v T) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	txn := r.store.db.Txn(true)
	defer txn.Abort()
	existing, err := txn.First(r.table, indexID, r.id(v))
	if err != nil {
		return fmt.Errorf("memory: %s: %w", r.table, err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if err := r.insert(txn, v); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// Delete elimina por ID. domain.ErrNotFound si no existe.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	txn := r.store.db.Txn(true)
	defer txn.Abort()
	existing, err := txn.First(r.table, indexID, id)
	if err != nil {
		return fmt.Errorf("memory: %s: %w", r.table, err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if r.onDelete != nil {
		if err := r.onDelete(txn, id); err != nil {
			return err
		}
	}
	if err := txn.Delete(r.table, existing); err != nil {
		return fmt.Errorf("memory: %s: %w", r.table, err)
	}
	txn.Commit()
	return nil
}

// List devuelve copias de todos los registros, del más reciente al más antiguo.
func (r *Repo[T]) List(ctx context.Context) ([]T, error) {
	if err := r.store.wait(ctx); err != nil {
		return nil, err
	}
	txn := r.store.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(r.table, indexID)
	if err != nil {
		return nil, fmt.Errorf("memory: %s: %w", r.table, err)
	}
	out := make([]T, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, obj.(T).Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := r.created(out[i]), r.created(out[j])
		if ci.Equal(cj) {
			return r.id(out[i]) > r.id(out[j])
		}
		return ci.After(cj)
	})
	return out, nil
}

// SaveAll inserta o reemplaza todos los registros en una única transacción:
// o se aplican todos o ninguno.
func (r *Repo[T]) SaveAll(ctx context.Context, list []T) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	txn := r.store.db.Txn(true)
	defer txn.Abort()
	for _, v := range list {
		if err := r.insert(txn, v); err != nil {
			return err
		}
	}
	txn.Commit()
	return nil
}

func (r *Repo[T]) first(ctx context.Context, index, value string) (T, error) {
	var zero T
	if err := r.store.wait(ctx); err != nil {
		return zero, err
	}
	txn := r.store.db.Txn(false)
	defer txn.Abort()
	obj, err := txn.First(r.table, index, value)
	if err != nil {
		return zero, fmt.Errorf("memory: %s: %w", r.table, err)
	}
	if obj == nil {
		return zero, nil
	}
	return obj.(T).Clone(), nil
}

// insert comprueba la unicidad del código dentro de la transacción y guarda una copia.
func (r *Repo[T]) insert(txn *memdb.Txn, v T) error {
	if r.code != nil {
		other, err := txn.First(r.table, indexCode, r.code(v))
		if err != nil {
			return fmt.Errorf("memory: %s: %w", r.table, err)
		}
		if other != nil && r.id(other.(T)) != r.id(v) {
			return domain.ErrDuplicate
		}
	}
	if err := txn.Insert(r.table, v.Clone()); err != nil {
		return fmt.Errorf("memory: %s: %w", r.table, err)
	}
	return nil
}
