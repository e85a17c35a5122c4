package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

func TestPackageDelete_RefusedWithSubscribedEnterprises(t *testing.T) {
	f := newFixture(t)

	pkg, err := f.packages.GetByID(f.ctx, "pkg_2")
	require.NoError(t, err)
	require.Equal(t, 2, pkg.EnterpriseCount)

	err = f.packages.Delete(f.ctx, "pkg_2")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "enterprise_count", domain.FieldErrors(err)[0].Field)

	res, err := f.packages.List(f.ctx, dto.PackageFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(res.Items))
	for _, p := range res.Items {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "pkg_2")
}

func TestPackage_ExpiredSubscriptionsDoNotCount(t *testing.T) {
	f := newFixture(t)

	basic, err := f.packages.GetByID(f.ctx, "pkg_1")
	require.NoError(t, err)
	assert.Equal(t, 0, basic.EnterpriseCount)
	require.NoError(t, f.packages.Delete(f.ctx, "pkg_1"))
}

func TestPackageCreate(t *testing.T) {
	f := newFixture(t)

	out, err := f.packages.Create(f.ctx, dto.CreatePackageRequest{
		Name:     "Gói Khởi nghiệp",
		Code:     "startup",
		Price:    &dto.PriceInput{Monthly: decimal.NewFromInt(200000)},
		Category: entity.PackageCustom,
	})
	require.NoError(t, err)
	assert.Equal(t, "STARTUP", out.Code)
	assert.Equal(t, "VND", out.Price.Currency)
	assert.True(t, out.Price.Yearly.Equal(decimal.NewFromInt(2400000)))
	assert.Equal(t, entity.BillingMonthly, out.BillingCycle)
	assert.Equal(t, entity.SupportBasic, out.Limits.Support)
	assert.Equal(t, 0, out.Limits.Users)

	_, err = f.packages.Create(f.ctx, dto.CreatePackageRequest{
		Name: "Dup", Code: "PREMIUM", Price: &dto.PriceInput{}, Category: entity.PackageBasic,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.packages.Create(f.ctx, dto.CreatePackageRequest{Name: "Sin precio", Code: "NOPRICE", Category: entity.PackageBasic})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "price", domain.FieldErrors(err)[0].Field)

	_, err = f.packages.Create(f.ctx, dto.CreatePackageRequest{
		Name: "Neg", Code: "NEG", Price: &dto.PriceInput{Monthly: decimal.NewFromInt(-1)}, Category: entity.PackageBasic,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "price.monthly", domain.FieldErrors(err)[0].Field)
}

func TestPackageUpdateAndToggle(t *testing.T) {
	f := newFixture(t)

	out, err := f.packages.Update(f.ctx, "pkg_1", dto.UpdatePackageRequest{
		Limits: &entity.PackageLimits{Users: 15},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, out.Limits.Users)
	assert.Equal(t, 0, out.Limits.StorageGB, "limits se reemplaza completo")

	out, err = f.packages.ToggleStatus(f.ctx, "pkg_1")
	require.NoError(t, err)
	assert.False(t, out.IsActive)

	res, err := f.packages.List(f.ctx, dto.PackageFilter{IsActive: ptr(false)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "pkg_1", res.Items[0].ID)

	res, err = f.packages.List(f.ctx, dto.PackageFilter{BillingCycle: entity.BillingYearly})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "pkg_3", res.Items[0].ID)
}
