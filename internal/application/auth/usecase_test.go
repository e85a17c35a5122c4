package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/Enterprise-admin-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*AuthUseCase, *memory.UserRepo) {
	t.Helper()
	store, err := memory.NewStore(0)
	require.NoError(t, err)
	repo := memory.NewUserRepo(store)
	return NewAuthUseCase(repo, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "enterprise-admin"}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, RegisterInput{EnterpriseID: "ent_1", Email: " Gestor@Empresa.VN ", Password: "secreta123", Role: entity.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, "gestor@empresa.vn", user.Email)
	assert.Equal(t, "gestor@empresa.vn", user.Name)
	assert.Equal(t, entity.UserActive, user.Status)

	_, err = uc.RegisterUser(ctx, RegisterInput{Email: "gestor@empresa.vn", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "email", domain.FieldErrors(err)[0].Field)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "GESTOR@empresa.vn", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ent_1", claims.EnterpriseID)
	assert.Equal(t, entity.RoleManager, claims.Role)
}

func TestLogin_Failures(t *testing.T) {
	uc, repo := newAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, RegisterInput{Email: "a@b.vn", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.vn", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.vn", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "no-es-email", Password: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "email", domain.FieldErrors(err)[0].Field)

	u, err := repo.FindByEmail(ctx, "a@b.vn")
	require.NoError(t, err)
	u.Status = entity.UserSuspended
	require.NoError(t, repo.Update(ctx, u))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.vn", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
