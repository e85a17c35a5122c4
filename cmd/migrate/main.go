package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"
	"github.com/jhoicas/Enterprise-admin-api/pkg/config"
	"github.com/jhoicas/Enterprise-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Migraciones y datos de demostración de PostgreSQL",
		SilenceUsage: true,
		Long: `Aplica las migraciones SQL embebidas contra la base configurada.
Variables: DATABASE_URL o DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE.`,
	}
	rootCmd.AddCommand(upCmd(cfg, log), downCmd(cfg, log), versionCmd(cfg, log), seedCmd(cfg, log))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func upCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			log.Info().Msg("migraciones aplicadas")
			return nil
		},
	}
}

func downCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps debe ser >= 1")
			}
			m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			defer m.Close()
			if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("migrate down: %w", err)
			}
			log.Info().Int("steps", steps).Msg("migraciones revertidas")
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "número de migraciones a revertir")
	return cmd
}

func versionCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada del esquema",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := postgres.NewMigrator(cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			defer m.Close()
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info().Msg("sin migraciones aplicadas")
				return nil
			}
			if err != nil {
				return fmt.Errorf("migrate version: %w", err)
			}
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión del esquema")
			return nil
		},
	}
}

func seedCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga los datos de demostración (aplica antes las migraciones)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			ds, err := seed.Build(time.Now().UTC(), seed.Credentials{
				Email:    cfg.Seed.AdminEmail,
				Password: cfg.Seed.AdminPassword,
			})
			if err != nil {
				return err
			}
			if err := seed.Load(ctx, postgres.Repositories(pool), ds); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					log.Warn().Err(err).Msg("la base ya contiene datos de demostración")
					return nil
				}
				return err
			}
			log.Info().
				Int("enterprises", len(ds.Enterprises)).
				Int("users", len(ds.Users)).
				Str("admin", cfg.Seed.AdminEmail).
				Msg("datos de demostración cargados")
			return nil
		},
	}
}
