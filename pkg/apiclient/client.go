// Package apiclient es el cliente REST de la API de administración. Toda respuesta,
// incluidos los fallos de red, se expone con la forma del envelope de la API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CodeTransport código del envelope sintético cuando la petición no llega a la API.
const CodeTransport = "TRANSPORT_ERROR"

// Cursor referencia a una página.
type Cursor struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination cursores de la respuesta de un listado.
type Pagination struct {
	Next *Cursor `json:"next,omitempty"`
	Prev *Cursor `json:"prev,omitempty"`
}

// FieldError error de un campo de la entrada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Envelope respuesta uniforme de la API. Data queda sin decodificar.
type Envelope struct {
	Status     string          `json:"status"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Count      *int            `json:"count,omitempty"`
	Total      *int            `json:"total,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`
}

// Response envelope más el código HTTP.
type Response struct {
	StatusCode int
	Envelope
}

// APIError respuesta no exitosa. StatusCode es 0 si la petición no llegó a la API.
type APIError struct {
	StatusCode int
	Envelope
	Err error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api: %s", e.Message)
	}
	return fmt.Sprintf("api: status=%d code=%s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Client cliente de la API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient usa un http.Client propio.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout fija el timeout del http.Client.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithToken fija el Bearer token inicial.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient crea un cliente. baseURL es la raíz del servidor (p. ej. "http://localhost:8080").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken cambia el Bearer token de las siguientes peticiones.
func (c *Client) SetToken(token string) { c.token = token }

// Token devuelve el Bearer token actual.
func (c *Client) Token() string { return c.token }

// Query opciones de listado. Los valores nil, vacíos o punteros nil se omiten.
type Query map[string]any

// Encode construye el query string (sin "?"), con las claves ordenadas.
func (q Query) Encode() string {
	values := url.Values{}
	for k, v := range q {
		s, ok := queryValue(v)
		if !ok {
			continue
		}
		values.Set(k, s)
	}
	return values.Encode()
}

func queryValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case *string:
		if t == nil || *t == "" {
			return "", false
		}
		return *t, true
	case *bool:
		if t == nil {
			return "", false
		}
		return fmt.Sprint(*t), true
	case *int:
		if t == nil {
			return "", false
		}
		return fmt.Sprint(*t), true
	case fmt.Stringer:
		s := t.String()
		return s, s != ""
	default:
		return fmt.Sprint(t), true
	}
}

// Get hace GET path?query y decodifica data en out (si no es nil).
func (c *Client) Get(ctx context.Context, path string, q Query, out any) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, q, nil, out)
}

// Post envía body como JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put envía body como JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch envía body como JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete borra el recurso.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do ejecuta la petición. Un status fuera de 2xx o un envelope con status "error"
// devuelve *APIError; los fallos de red también, con StatusCode 0.
func (c *Client) Do(ctx context.Context, method, path string, q Query, body, out any) (*Response, error) {
	target := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	res := &Response{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, &res.Envelope); err != nil {
		return res, &APIError{
			StatusCode: resp.StatusCode,
			Envelope:   Envelope{Status: "error", Code: "INVALID_RESPONSE", Message: strings.TrimSpace(string(raw))},
			Err:        err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || res.Status == "error" {
		return res, &APIError{StatusCode: resp.StatusCode, Envelope: res.Envelope}
	}
	if out != nil && len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, out); err != nil {
			return res, fmt.Errorf("unmarshal data: %w", err)
		}
	}
	return res, nil
}

func transportError(err error) *APIError {
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "tiempo de espera agotado: " + msg
	}
	return &APIError{Envelope: Envelope{Status: "error", Code: CodeTransport, Message: msg}, Err: err}
}

// Login autentica y guarda el token para las siguientes peticiones.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	if _, err := c.Post(ctx, "/api/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}
