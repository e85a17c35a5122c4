package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

// UserRepo repositorio de usuarios; el email es único sin distinguir mayúsculas.
type UserRepo struct {
	*Repo[*entity.User]
}

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepo repositorio de usuarios.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{Repo: &Repo[*entity.User]{
		store: s, table: TableUser,
		id:      func(u *entity.User) string { return u.ID },
		created: func(u *entity.User) time.Time { return u.CreatedAt },
	}}
}

// Create inserta el usuario. domain.ErrDuplicate si el ID o el email ya existen.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if err := r.store.wait(ctx); err != nil {
		return err
	}
	txn := r.store.db.Txn(true)
	defer txn.Abort()
	byID, err := txn.First(TableUser, indexID, u.ID)
	if err != nil {
		return err
	}
	byEmail, err := txn.First(TableUser, indexEmail, strings.ToLower(u.Email))
	if err != nil {
		return err
	}
	if byID != nil || byEmail != nil {
		return domain.ErrDuplicate
	}
	if err := txn.Insert(TableUser, u.Clone()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// FindByEmail búsqueda sin distinguir mayúsculas. (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, indexEmail, strings.ToLower(strings.TrimSpace(email)))
}
