package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

func TestUserList(t *testing.T) {
	f := newFixture(t)

	res, err := f.users.List(f.ctx, UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)

	res, err = f.users.List(f.ctx, UserFilter{Role: entity.RoleManager})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "usr_manager_abc", res.Items[0].ID)

	res, err = f.users.List(f.ctx, UserFilter{Params: query.Params{Search: "saoviet"}, EnterpriseID: "ent_2"})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "binh.tran@saoviet.vn", res.Items[0].Email)
}

func TestUserGetByID(t *testing.T) {
	f := newFixture(t)

	u, err := f.users.GetByID(f.ctx, "usr_admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Empty(t, u.EnterpriseID)

	_, err = f.users.GetByID(f.ctx, "usr_ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
