package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/auth"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	EnterpriseUC   *usecase.EnterpriseUseCase
	BusinessTypeUC *usecase.BusinessTypeUseCase
	PackageUC      *usecase.PackageUseCase
	SubscriptionUC *usecase.SubscriptionUseCase
	CurrencyUC     *usecase.CurrencyUseCase
	NotificationUC *usecase.NotificationUseCase
	UserUC         *usecase.UserUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. Las rutas estáticas (/stats, /catalog,
// /inbox, /convert, /packages) se registran antes que /:id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.Success(fiber.Map{"status": "ok"}, ""))
	})

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", authn, authHandler.Me)

	// Enterprises (solo administradores de plataforma)
	enterprises := api.Group("/enterprises", authn, admin)
	enterpriseHandler := NewEnterpriseHandler(deps.EnterpriseUC)
	enterprises.Get("/", enterpriseHandler.List)
	enterprises.Get("/stats", enterpriseHandler.Stats)
	enterprises.Get("/:id", enterpriseHandler.GetByID)
	enterprises.Post("/", enterpriseHandler.Create)
	enterprises.Put("/:id", enterpriseHandler.Update)
	enterprises.Patch("/:id/status", enterpriseHandler.UpdateStatus)
	enterprises.Delete("/:id", enterpriseHandler.Delete)

	// Business types (lectura para cualquier usuario autenticado)
	businessTypes := api.Group("/business-types", authn)
	btHandler := NewBusinessTypeHandler(deps.BusinessTypeUC)
	businessTypes.Get("/", btHandler.List)
	businessTypes.Get("/catalog", btHandler.Catalog)
	businessTypes.Get("/stats", admin, btHandler.Stats)
	businessTypes.Get("/:id", btHandler.GetByID)
	businessTypes.Post("/", admin, btHandler.Create)
	businessTypes.Put("/:id", admin, btHandler.Update)
	businessTypes.Patch("/:id/toggle", admin, btHandler.Toggle)
	businessTypes.Delete("/:id", admin, btHandler.Delete)

	// Subscriptions y paquetes
	subscriptions := api.Group("/subscriptions", authn)
	pkgHandler := NewPackageHandler(deps.PackageUC)
	subscriptions.Get("/packages", pkgHandler.List)
	subscriptions.Get("/packages/:id", pkgHandler.GetByID)
	subscriptions.Post("/packages", admin, pkgHandler.Create)
	subscriptions.Put("/packages/:id", admin, pkgHandler.Update)
	subscriptions.Patch("/packages/:id/toggle", admin, pkgHandler.Toggle)
	subscriptions.Delete("/packages/:id", admin, pkgHandler.Delete)

	subHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	subscriptions.Get("/", admin, subHandler.List)
	subscriptions.Get("/stats", admin, subHandler.Stats)
	subscriptions.Get("/:id", admin, subHandler.GetByID)
	subscriptions.Post("/", admin, subHandler.Create)
	subscriptions.Post("/:id/cancel", admin, subHandler.Cancel)
	subscriptions.Post("/:id/renew", admin, subHandler.Renew)
	subscriptions.Delete("/:id", admin, subHandler.Delete)

	// Currencies (la conversión requiere la funcionalidad finance fuera del rol admin)
	currencies := api.Group("/currencies", authn)
	curHandler := NewCurrencyHandler(deps.CurrencyUC)
	currencies.Get("/", curHandler.List)
	currencies.Get("/stats", admin, curHandler.Stats)
	currencies.Get("/convert", RequireFeature(entity.FeatureFinance, deps.EnterpriseUC), curHandler.Convert)
	currencies.Get("/:id", curHandler.GetByID)
	currencies.Post("/", admin, curHandler.Create)
	currencies.Put("/:id", admin, curHandler.Update)
	currencies.Patch("/:id/base", admin, curHandler.SetBase)
	currencies.Delete("/:id", admin, curHandler.Delete)

	// Notifications (bandeja, lectura y clic para cualquier usuario autenticado)
	notifications := api.Group("/notifications", authn)
	ntfHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/inbox", ntfHandler.Inbox)
	notifications.Post("/:id/read", ntfHandler.MarkRead)
	notifications.Post("/:id/click", ntfHandler.Click)
	notifications.Get("/", admin, ntfHandler.List)
	notifications.Get("/stats", admin, ntfHandler.Stats)
	notifications.Get("/:id", admin, ntfHandler.GetByID)
	notifications.Post("/", admin, ntfHandler.Create)
	notifications.Put("/:id", admin, ntfHandler.Update)
	notifications.Post("/:id/send", admin, ntfHandler.Send)
	notifications.Delete("/:id", admin, ntfHandler.Delete)

	// Users
	users := api.Group("/users", authn, admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
}
