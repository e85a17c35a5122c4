package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEncode_SkipsEmptyValues(t *testing.T) {
	active := false
	var nilStatus *string
	q := Query{
		"search":    "abc",
		"status":    nilStatus,
		"plan":      "",
		"is_active": &active,
		"page":      2,
		"limit":     nil,
	}
	assert.Equal(t, "is_active=false&page=2&search=abc", q.Encode())
	assert.Equal(t, "", Query(nil).Encode())
}

func TestDo_DecodesDataAndSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/currencies", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("is_active"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":[{"code":"VND"}],"count":1,"total":4,"pagination":{"next":{"page":2,"limit":1}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithToken("tok"))
	active := true
	var out []struct {
		Code string `json:"code"`
	}
	res, err := c.Get(context.Background(), "/api/currencies", Query{"is_active": &active}, &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "VND", out[0].Code)
	assert.Equal(t, 4, *res.Total)
	assert.Equal(t, 2, res.Pagination.Next.Page)
}

func TestDo_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status":"error","code":"DUPLICATE","message":"recurso duplicado","errors":[{"field":"code","message":"ya existe"}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Post(context.Background(), "/api/currencies", map[string]string{"code": "USD"}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "DUPLICATE", apiErr.Code)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "code", apiErr.Errors[0].Field)
}

func TestDo_TransportFailureBecomesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Get(context.Background(), "/api/health", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, "error", apiErr.Status)
	assert.Equal(t, CodeTransport, apiErr.Code)
	assert.NotEmpty(t, apiErr.Message)
	assert.NotNil(t, errors.Unwrap(apiErr))
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"token":"jwt-123"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.Login(context.Background(), "admin@example.com", "admin123"))
	assert.Equal(t, "jwt-123", c.Token())
}
