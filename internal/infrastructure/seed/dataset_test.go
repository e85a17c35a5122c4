package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ds, err := Build(now, Credentials{Email: "admin@example.com", Password: "s3cret"})
	require.NoError(t, err)

	t.Run("empresas pendientes", func(t *testing.T) {
		require.Len(t, ds.Enterprises, 3)
		for _, e := range ds.Enterprises {
			assert.Equal(t, entity.EnterprisePending, e.Status)
		}
	})

	t.Run("una sola moneda base con tasa 1", func(t *testing.T) {
		bases := 0
		for _, c := range ds.Currencies {
			if c.IsBaseCurrency {
				bases++
				assert.Equal(t, "1", c.Rate.String())
				assert.Equal(t, "VND", c.Code)
			}
		}
		assert.Equal(t, 1, bases)
	})

	t.Run("códigos únicos", func(t *testing.T) {
		seen := map[string]bool{}
		for _, b := range ds.BusinessTypes {
			assert.False(t, seen["bt:"+b.Code])
			seen["bt:"+b.Code] = true
		}
		for _, p := range ds.Packages {
			assert.False(t, seen["pkg:"+p.Code])
			seen["pkg:"+p.Code] = true
		}
		assert.True(t, seen["bt:TECH"])
	})

	t.Run("referencias válidas", func(t *testing.T) {
		bts := map[string]bool{}
		for _, b := range ds.BusinessTypes {
			bts[b.ID] = true
		}
		ents := map[string]bool{}
		for _, e := range ds.Enterprises {
			assert.True(t, bts[e.BusinessType.ID])
			ents[e.ID] = true
		}
		for _, s := range ds.Subscriptions {
			assert.True(t, ents[s.EnterpriseID])
		}
	})

	t.Run("contraseña del administrador hasheada", func(t *testing.T) {
		admin := ds.Users[0]
		assert.Equal(t, entity.RoleAdmin, admin.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")))
	})
}
