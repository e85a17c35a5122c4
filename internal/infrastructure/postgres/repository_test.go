package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

var testTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type stubRow struct {
	scanFn func(dest ...any) error
}

func (s stubRow) Scan(dest ...any) error { return s.scanFn(dest...) }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func techType() *entity.BusinessType {
	return &entity.BusinessType{
		ID: "bt_1", Name: "Công nghệ", Code: "TECH", Category: "technology",
		Features: []string{entity.FeatureCRM}, DefaultUserLimit: 50, IsActive: true,
		CreatedAt: testTime, UpdatedAt: testTime,
	}
}

func TestBusinessTypeRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewBusinessTypeRepository(mock)
	bt := techType()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO business_types`)).
		WithArgs(bt.ID, bt.Name, bt.Code, bt.Description, bt.Category, bt.Features,
			bt.DefaultUserLimit, bt.IsActive, bt.CreatedAt, bt.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Create(context.Background(), bt))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO business_types`)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
	assert.ErrorIs(t, repo.Create(context.Background(), bt), domain.ErrDuplicate)
}

func TestBusinessTypeRepo_GetByCode(t *testing.T) {
	mock := newMock(t)
	repo := NewBusinessTypeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM business_types WHERE code = $1`)).
		WithArgs("TECH").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "code", "description", "category", "features",
			"default_user_limit", "is_active", "created_at", "updated_at"}).
			AddRow("bt_1", "Công nghệ", "TECH", "", "technology", []string{"crm", "reports"}, 50, true, testTime, testTime))

	bt, err := repo.GetByCode(context.Background(), "TECH")
	require.NoError(t, err)
	require.NotNil(t, bt)
	assert.Equal(t, []string{"crm", "reports"}, bt.Features)
	assert.Equal(t, 50, bt.DefaultUserLimit)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM business_types WHERE id = $1`)).
		WithArgs("bt_x").
		WillReturnError(pgx.ErrNoRows)
	bt, err = repo.GetByID(context.Background(), "bt_x")
	require.NoError(t, err)
	assert.Nil(t, bt)
}

func TestBusinessTypeRepo_UpdateAndDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewBusinessTypeRepository(mock)
	bt := techType()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE business_types SET`)).
		WithArgs(bt.ID, bt.Name, bt.Code, bt.Description, bt.Category, bt.Features,
			bt.DefaultUserLimit, bt.IsActive, bt.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), bt), domain.ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM business_types WHERE id = $1`)).
		WithArgs("bt_1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), "bt_1"))
}

func TestBusinessTypeRepo_List(t *testing.T) {
	mock := newMock(t)
	repo := NewBusinessTypeRepository(mock)

	cols := []string{"id", "name", "code", "description", "category", "features", "default_user_limit", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM business_types ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("bt_2", "Bán lẻ", "RETAIL", "", "retail", []string{}, 20, true, testTime, testTime).
			AddRow("bt_1", "Công nghệ", "TECH", "", "technology", []string{}, 50, true, testTime.Add(-time.Hour), testTime))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bt_2", list[0].ID)
	assert.Equal(t, "bt_1", list[1].ID)
}

func TestCurrencyRepo_SaveAllInTransaction(t *testing.T) {
	mock := newMock(t)
	repo := NewCurrencyRepository(mock)
	list := []*entity.CurrencyRate{
		{ID: "cur_1", Code: "VND", Rate: decimal.NewFromInt(25000), IsActive: true},
		{ID: "cur_2", Code: "USD", Rate: decimal.NewFromInt(1), IsBaseCurrency: true, IsActive: true},
	}
	args := func(c *entity.CurrencyRate) []any {
		return []any{c.ID, c.Code, c.Name, c.Symbol, pgxmock.AnyArg(), c.IsBaseCurrency, c.IsActive, c.LastUpdated, c.CreatedAt, c.UpdatedAt}
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE currency_rates SET is_base_currency = FALSE WHERE is_base_currency`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	for _, c := range list {
		mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO UPDATE`)).
			WithArgs(args(c)...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.SaveAll(context.Background(), list))
}

func TestCurrencyRepo_SaveAllRollsBack(t *testing.T) {
	mock := newMock(t)
	repo := NewCurrencyRepository(mock)
	c := &entity.CurrencyRate{ID: "cur_9", Code: "USD", Rate: decimal.NewFromInt(1)}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE currency_rates SET is_base_currency = FALSE`)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO UPDATE`)).
		WithArgs(c.ID, c.Code, c.Name, c.Symbol, pgxmock.AnyArg(), c.IsBaseCurrency, c.IsActive, c.LastUpdated, c.CreatedAt, c.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.SaveAll(context.Background(), []*entity.CurrencyRate{c}), domain.ErrDuplicate)
}

func TestScanCurrency(t *testing.T) {
	row := stubRow{scanFn: func(dest ...any) error {
		require.Len(t, dest, 10)
		*(dest[0].(*string)) = "cur_2"
		*(dest[1].(*string)) = "USD"
		*(dest[4].(*decimal.Decimal)) = decimal.RequireFromString("0.00004")
		*(dest[5].(*bool)) = false
		*(dest[6].(*bool)) = true
		return nil
	}}
	c, err := scanCurrency(row)
	require.NoError(t, err)
	assert.Equal(t, "USD", c.Code)
	assert.Equal(t, "0.00004", c.Rate.String())
	assert.True(t, c.IsActive)
}

func TestScanEnterprise_DecodesDocuments(t *testing.T) {
	row := stubRow{scanFn: func(dest ...any) error {
		require.Len(t, dest, 20)
		*(dest[0].(*string)) = "ent_1"
		*(dest[3].(*[]byte)) = []byte(`{"id":"bt_1","name":"Công nghệ","code":"TECH","category":"technology"}`)
		*(dest[9].(*[]byte)) = []byte(`{"name":"Nguyễn Văn An","email":"an@abc.vn"}`)
		*(dest[15].(*[]string)) = []string{"crm"}
		return nil
	}}
	e, err := scanEnterprise(row)
	require.NoError(t, err)
	assert.Equal(t, "TECH", e.BusinessType.Code)
	assert.Equal(t, "Nguyễn Văn An", e.ContactPerson.Name)
	assert.True(t, e.HasFeature("crm"))

	_, err = scanEnterprise(stubRow{scanFn: func(dest ...any) error {
		*(dest[3].(*[]byte)) = []byte(`{`)
		return nil
	}})
	assert.Error(t, err)
}

func TestScanNotification_DecodesDocuments(t *testing.T) {
	row := stubRow{scanFn: func(dest ...any) error {
		require.Len(t, dest, 19)
		*(dest[0].(*string)) = "ntf_1"
		*(dest[5].(*[]byte)) = []byte(`{"id":"usr_admin","role":"admin"}`)
		*(dest[6].(*[]byte)) = []byte(`{"type":"role","roles":["manager"]}`)
		*(dest[7].(*string)) = entity.NotificationSent
		*(dest[10].(*[]byte)) = []byte(`[{"user_id":"usr_manager_abc","read_at":"2026-03-01T09:00:00Z"}]`)
		*(dest[11].(*[]byte)) = []byte(`[]`)
		*(dest[14].(*int)) = 1
		return nil
	}}
	n, err := scanNotification(row)
	require.NoError(t, err)
	assert.Equal(t, "usr_admin", n.Sender.ID)
	assert.Equal(t, []string{entity.RoleManager}, n.Recipients.Roles)
	assert.True(t, n.HasRead("usr_manager_abc"))
	assert.Empty(t, n.Actions)
	assert.Equal(t, 1, n.Metadata.TotalRecipients)
}

func TestNotificationRepo_UpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewNotificationRepository(mock)
	n := &entity.Notification{ID: "ntf_x", UpdatedAt: testTime}

	anyArgs := make([]any, 18)
	for i := range anyArgs {
		anyArgs[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications SET`)).
		WithArgs(anyArgs...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, repo.Update(context.Background(), n), domain.ErrNotFound)
}

func TestUserRepo_FindByEmailLowercases(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE lower(email) = $1 LIMIT 1`)).
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "enterprise_id", "email", "password_hash", "name", "role", "status", "created_at", "updated_at"}).
			AddRow("usr_admin", "", "Admin@Example.com", "hash", "Admin", entity.RoleAdmin, entity.UserActive, testTime, testTime))

	u, err := repo.FindByEmail(context.Background(), " ADMIN@example.com ")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "usr_admin", u.ID)
}

func TestWriteError(t *testing.T) {
	assert.ErrorIs(t, writeError("x", &pgconn.PgError{Code: uniqueViolationCode}), domain.ErrDuplicate)
	other := errors.New("conn reset")
	assert.ErrorIs(t, writeError("x", other), other)
	assert.NotErrorIs(t, writeError("x", other), domain.ErrDuplicate)
}
