package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	_ "github.com/jhoicas/Enterprise-admin-api/docs"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/auth"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/idgen"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/memory"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/Enterprise-admin-api/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/Enterprise-admin-api/internal/interfaces/http"
	"github.com/jhoicas/Enterprise-admin-api/pkg/config"
	"github.com/jhoicas/Enterprise-admin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer closeStorage()

	ids, err := idgen.NewSnowflake(cfg.Storage.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("generador de ids")
	}

	enterpriseUC := usecase.NewEnterpriseUseCase(repos.Enterprises, repos.BusinessTypes, ids, nil)
	businessTypeUC := usecase.NewBusinessTypeUseCase(repos.BusinessTypes, repos.Enterprises, ids, nil)
	packageUC := usecase.NewPackageUseCase(repos.Packages, repos.Subscriptions, ids, nil)
	subscriptionUC := usecase.NewSubscriptionUseCase(repos.Subscriptions, repos.Packages, repos.Enterprises, repos.Currencies, ids, nil)
	currencyUC := usecase.NewCurrencyUseCase(repos.Currencies, ids, nil)
	notificationUC := usecase.NewNotificationUseCase(repos.Notifications, repos.Users, ids, nil)
	userUC := usecase.NewUserUseCase(repos.Users)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Enterprise Admin API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		EnterpriseUC:   enterpriseUC,
		BusinessTypeUC: businessTypeUC,
		PackageUC:      packageUC,
		SubscriptionUC: subscriptionUC,
		CurrencyUC:     currencyUC,
		NotificationUC: notificationUC,
		UserUC:         userUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	var dispatcher *scheduler.NotificationDispatcher
	if interval := cfg.Notify.DispatchInterval(); interval > 0 {
		dispatcher = scheduler.NewNotificationDispatcher(notificationUC, log, interval)
		dispatcher.Start(ctx)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if dispatcher != nil {
		dispatcher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage devuelve los repositorios del driver configurado y la función que libera sus recursos.
// memory arranca con los datos de demostración; postgres aplica las migraciones pendientes.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (seed.Repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return seed.Repositories{}, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return seed.Repositories{}, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("PostgreSQL listo")
		return postgres.Repositories(pool), pool.Close, nil
	default:
		ds, err := seed.Build(time.Now().UTC(), seed.Credentials{
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		})
		if err != nil {
			return seed.Repositories{}, nil, err
		}
		store, err := memory.Open(ctx, cfg.Storage.Latency(), ds)
		if err != nil {
			return seed.Repositories{}, nil, err
		}
		log.Warn().Dur("latency", cfg.Storage.Latency()).Msg("almacén en memoria: los datos se pierden al reiniciar")
		return store.Repositories(), func() {}, nil
	}
}
