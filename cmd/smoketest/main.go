package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Enterprise-admin-api/pkg/apiclient"
	"github.com/jhoicas/Enterprise-admin-api/pkg/logger"
)

type check struct {
	name string
	run  func(ctx context.Context, c *apiclient.Client) (string, error)
}

func main() {
	var (
		baseURL  string
		email    string
		password string
		timeout  time.Duration
	)
	log := logger.New(logger.Config{Env: "development", Level: "info"}).Component("smoketest")

	rootCmd := &cobra.Command{
		Use:          "smoketest",
		Short:        "Prueba de humo de la API: health, login y un recorrido por cada dominio",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := apiclient.NewClient(baseURL, apiclient.WithTimeout(timeout))
			passed, failed := 0, 0
			for _, ch := range checks(email, password) {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				detail, err := ch.run(ctx, client)
				cancel()
				if err != nil {
					failed++
					log.Error().Err(err).Str("check", ch.name).Msg("FAIL")
					continue
				}
				passed++
				log.Info().Str("check", ch.name).Str("detail", detail).Msg("PASS")
			}
			ev := log.Info()
			if failed > 0 {
				ev = log.Error()
			}
			ev.Int("passed", passed).Int("failed", failed).Msg("resumen")
			if failed > 0 {
				return fmt.Errorf("%d comprobaciones fallidas", failed)
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "URL base de la API")
	rootCmd.Flags().StringVar(&email, "email", "admin@example.com", "email del administrador")
	rootCmd.Flags().StringVar(&password, "password", "admin123", "contraseña del administrador")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout por comprobación")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func checks(email, password string) []check {
	list := func(path string, q apiclient.Query) func(ctx context.Context, c *apiclient.Client) (string, error) {
		return func(ctx context.Context, c *apiclient.Client) (string, error) {
			res, err := c.Get(ctx, path, q, nil)
			if err != nil {
				return "", err
			}
			if res.Total == nil || res.Count == nil {
				return "", fmt.Errorf("%s: respuesta sin count/total", path)
			}
			return fmt.Sprintf("count=%d total=%d", *res.Count, *res.Total), nil
		}
	}
	get := func(path string) func(ctx context.Context, c *apiclient.Client) (string, error) {
		return func(ctx context.Context, c *apiclient.Client) (string, error) {
			res, err := c.Get(ctx, path, nil, nil)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("status=%d", res.StatusCode), nil
		}
	}

	return []check{
		{"health", get("/api/health")},
		{"login", func(ctx context.Context, c *apiclient.Client) (string, error) {
			if err := c.Login(ctx, email, password); err != nil {
				return "", err
			}
			return "token obtenido", nil
		}},
		{"auth/me", get("/api/auth/me")},
		{"enterprises", list("/api/enterprises", apiclient.Query{"page": 1, "limit": 5})},
		{"enterprises/stats", get("/api/enterprises/stats")},
		{"business-types", list("/api/business-types", apiclient.Query{"is_active": "all"})},
		{"business-types/catalog", get("/api/business-types/catalog")},
		{"packages", list("/api/subscriptions/packages", nil)},
		{"subscriptions", list("/api/subscriptions", apiclient.Query{"status": "all"})},
		{"subscriptions/stats", get("/api/subscriptions/stats")},
		{"currencies", list("/api/currencies", nil)},
		{"currencies/convert", func(ctx context.Context, c *apiclient.Client) (string, error) {
			var out struct {
				Result string `json:"result"`
			}
			if _, err := c.Get(ctx, "/api/currencies/convert", apiclient.Query{"amount": "100", "from": "USD", "to": "VND"}, &out); err != nil {
				return "", err
			}
			return "100 USD = " + out.Result + " VND", nil
		}},
		{"notifications", list("/api/notifications", nil)},
		{"notifications/stats", get("/api/notifications/stats")},
		{"notifications/inbox", list("/api/notifications/inbox", nil)},
		{"users", list("/api/users", nil)},
	}
}
