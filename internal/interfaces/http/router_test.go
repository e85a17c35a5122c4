package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/auth"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/idgen"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/Enterprise-admin-api/internal/interfaces/http"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
	employeeEmail = "binh.tran@saoviet.vn"
)

type envelope[T any] struct {
	Status     string              `json:"status"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Data       T                   `json:"data"`
	Count      *int                `json:"count"`
	Total      *int                `json:"total"`
	Pagination *dto.Pagination     `json:"pagination"`
	Errors     []domain.FieldError `json:"errors"`
}

// newAPI levanta la API completa sobre el almacén en memoria con los datos de demostración.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	ds, err := seed.Build(time.Now().UTC(), seed.Credentials{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)
	store, err := memory.Open(ctx, 0, ds)
	require.NoError(t, err)
	ids, err := idgen.NewSnowflake(1)
	require.NoError(t, err)
	r := store.Repositories()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(r.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		EnterpriseUC:   usecase.NewEnterpriseUseCase(r.Enterprises, r.BusinessTypes, ids, nil),
		BusinessTypeUC: usecase.NewBusinessTypeUseCase(r.BusinessTypes, r.Enterprises, ids, nil),
		PackageUC:      usecase.NewPackageUseCase(r.Packages, r.Subscriptions, ids, nil),
		SubscriptionUC: usecase.NewSubscriptionUseCase(r.Subscriptions, r.Packages, r.Enterprises, r.Currencies, ids, nil),
		CurrencyUC:     usecase.NewCurrencyUseCase(r.Currencies, ids, nil),
		NotificationUC: usecase.NewNotificationUseCase(r.Notifications, r.Users, ids, nil),
		UserUC:         usecase.NewUserUseCase(r.Users),
		JWTSecret:      testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) envelope[T] {
	t.Helper()
	defer resp.Body.Close()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

func TestHealthAndUnknownRoute(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.StatusSuccess, decode[map[string]string](t, resp).Status)

	resp = call(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	env := decode[any](t, resp)
	assert.Equal(t, dto.StatusError, env.Status)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestLoginAndMe(t *testing.T) {
	app := newAPI(t)

	resp := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[any](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decode[any](t, resp)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "email", env.Errors[0].Field)

	token := login(t, app, adminEmail, adminPassword)
	resp = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserResponse](t, resp)
	assert.Equal(t, adminEmail, me.Data.Email)
	assert.Equal(t, "admin", me.Data.Role)
}

func TestEnterprises_ListPaginatedAndForbiddenForEmployees(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, adminEmail, adminPassword)

	resp := call(t, app, http.MethodGet, "/api/enterprises?limit=2", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode[[]dto.EnterpriseResponse](t, resp)
	require.NotNil(t, env.Count)
	require.NotNil(t, env.Total)
	assert.Equal(t, 2, *env.Count)
	assert.Equal(t, 3, *env.Total)
	require.NotNil(t, env.Pagination)
	require.NotNil(t, env.Pagination.Next)
	assert.Equal(t, 2, env.Pagination.Next.Page)
	assert.Nil(t, env.Pagination.Prev)

	resp = call(t, app, http.MethodGet, "/api/enterprises?search=saoviet&status=all", admin, nil)
	env = decode[[]dto.EnterpriseResponse](t, resp)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "ent_2", env.Data[0].ID)

	resp = call(t, app, http.MethodGet, "/api/enterprises/ent_missing", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	employee := login(t, app, employeeEmail, seed.DemoPassword)
	resp = call(t, app, http.MethodGet, "/api/enterprises", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBusinessTypes_CreateValidateAndDeleteGuard(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, adminEmail, adminPassword)

	resp := call(t, app, http.MethodPost, "/api/business-types", admin, map[string]any{"name": "Giáo dục"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decode[any](t, resp)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.NotEmpty(t, env.Errors)

	resp = call(t, app, http.MethodPost, "/api/business-types", admin, map[string]any{
		"name": "Giáo dục", "code": "edu", "category": "education", "features": []string{"reports"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.BusinessTypeResponse](t, resp)
	assert.Equal(t, "EDU", created.Data.Code)
	assert.Equal(t, 0, created.Data.EnterpriseCount)

	resp = call(t, app, http.MethodPost, "/api/business-types", admin, map[string]any{
		"name": "Otra", "code": "EDU", "category": "education",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[any](t, resp).Code)

	resp = call(t, app, http.MethodDelete, "/api/business-types/bt_1", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	guard := decode[any](t, resp)
	require.NotEmpty(t, guard.Errors)
	assert.Equal(t, "enterprise_count", guard.Errors[0].Field)

	resp = call(t, app, http.MethodDelete, "/api/business-types/"+created.Data.ID, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/business-types?is_active=maybe", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrencies_ConvertAndStats(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, adminEmail, adminPassword)

	resp := call(t, app, http.MethodGet, "/api/currencies/convert?amount=100&from=USD&to=VND", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conv := decode[dto.ConvertResponse](t, resp)
	assert.True(t, conv.Data.Result.Equal(decimal.RequireFromString("2500000")), conv.Data.Result.String())

	resp = call(t, app, http.MethodGet, "/api/currencies/convert?amount=abc&from=USD&to=VND", admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decode[any](t, resp)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "amount", env.Errors[0].Field)

	resp = call(t, app, http.MethodGet, "/api/currencies/convert?amount=1&from=XXX&to=VND", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/currencies/stats", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.CurrencyStatsResponse](t, resp)
	assert.Equal(t, 5, st.Data.TotalCurrencies)

	resp = call(t, app, http.MethodDelete, "/api/currencies/cur_1", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Las empresas de demostración no están activas: la conversión queda bloqueada.
	employee := login(t, app, employeeEmail, seed.DemoPassword)
	resp = call(t, app, http.MethodGet, "/api/currencies/convert?amount=1&from=USD&to=VND", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = call(t, app, http.MethodGet, "/api/currencies", employee, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNotifications_SendAndInbox(t *testing.T) {
	app := newAPI(t)
	admin := login(t, app, adminEmail, adminPassword)
	employee := login(t, app, employeeEmail, seed.DemoPassword)

	resp := call(t, app, http.MethodPost, "/api/notifications", admin, dto.CreateNotificationRequest{
		Title:      "Cập nhật hệ thống",
		Message:    "Hệ thống sẽ được nâng cấp.",
		Type:       "announcement",
		Priority:   "high",
		Recipients: &dto.RecipientsInput{Type: "role", Roles: []string{"employee"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ntf := decode[dto.NotificationResponse](t, resp)
	assert.Equal(t, "draft", ntf.Data.Status)
	assert.Equal(t, adminEmail, ntf.Data.Sender.Email)

	resp = call(t, app, http.MethodPost, "/api/notifications/"+ntf.Data.ID+"/send", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sent := decode[dto.NotificationResponse](t, resp)
	assert.Equal(t, "sent", sent.Data.Status)
	assert.Equal(t, 1, sent.Data.Metadata.TotalRecipients)

	resp = call(t, app, http.MethodPost, "/api/notifications/"+ntf.Data.ID+"/send", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/notifications/inbox", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox := decode[[]dto.InboxItem](t, resp)
	require.NotEmpty(t, inbox.Data)
	assert.Equal(t, ntf.Data.ID, inbox.Data[0].ID)
	assert.False(t, inbox.Data[0].IsRead)

	resp = call(t, app, http.MethodPost, "/api/notifications/"+ntf.Data.ID+"/read", employee, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	read := decode[dto.NotificationResponse](t, resp)
	assert.Equal(t, 1, read.Data.Metadata.ReadCount)

	resp = call(t, app, http.MethodPost, "/api/notifications/"+ntf.Data.ID+"/read", admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/notifications", employee, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
