package usecase

import (
	"context"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/auth"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/repository"
)

// UserUseCase lectura de usuarios (destinatarios de notificaciones).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	query.Params
	Role         string
	EnterpriseID string
	Status       string
}

// List busca por nombre y email; filtra por rol, empresa y estado.
func (uc *UserUseCase) List(ctx context.Context, f UserFilter) (query.Result[dto.UserResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return query.Result[dto.UserResponse]{}, err
	}
	res := query.Apply(list, f.Params,
		func(u *entity.User) []string { return []string{u.Name, u.Email} },
		query.Equals(f.Role, func(u *entity.User) string { return u.Role }),
		query.Equals(f.EnterpriseID, func(u *entity.User) string { return u.EnterpriseID }),
		query.Equals(f.Status, func(u *entity.User) string { return u.Status }),
	)
	return query.Map(res, auth.ToUserResponse), nil
}

// GetByID obtiene un usuario. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := auth.ToUserResponse(user)
	return &out, nil
}
