package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
)

// PriceInput precio de un paquete; Yearly por defecto = Monthly * 12.
type PriceInput struct {
	Monthly  decimal.Decimal  `json:"monthly"`
	Yearly   *decimal.Decimal `json:"yearly"`
	Currency string           `json:"currency" validate:"omitempty,len=3"`
}

// CreatePackageRequest entrada para crear un paquete de suscripción.
type CreatePackageRequest struct {
	Name         string                `json:"name" validate:"required,min=1,max=100"`
	Code         string                `json:"code" validate:"required,min=2,max=30"`
	Description  string                `json:"description" validate:"omitempty,max=500"`
	Price        *PriceInput           `json:"price" validate:"required"`
	Features     []string              `json:"features"`
	Limits       *entity.PackageLimits `json:"limits"`
	IsPopular    bool                  `json:"is_popular"`
	IsActive     *bool                 `json:"is_active"`
	Category     string                `json:"category" validate:"required,oneof=basic premium enterprise custom"`
	TrialDays    int                   `json:"trial_days" validate:"min=0,max=365"`
	SetupFee     decimal.Decimal       `json:"setup_fee"`
	BillingCycle string                `json:"billing_cycle" validate:"omitempty,oneof=monthly yearly"`
}

// UpdatePackageRequest campos opcionales; Price y Limits se reemplazan completos.
type UpdatePackageRequest struct {
	Name         *string               `json:"name" validate:"omitempty,min=1,max=100"`
	Code         *string               `json:"code" validate:"omitempty,min=2,max=30"`
	Description  *string               `json:"description" validate:"omitempty,max=500"`
	Price        *PriceInput           `json:"price"`
	Features     []string              `json:"features"`
	Limits       *entity.PackageLimits `json:"limits"`
	IsPopular    *bool                 `json:"is_popular"`
	IsActive     *bool                 `json:"is_active"`
	Category     *string               `json:"category" validate:"omitempty,oneof=basic premium enterprise custom"`
	TrialDays    *int                  `json:"trial_days" validate:"omitempty,min=0,max=365"`
	SetupFee     *decimal.Decimal      `json:"setup_fee"`
	BillingCycle *string               `json:"billing_cycle" validate:"omitempty,oneof=monthly yearly"`
}

// PackageFilter filtros de listado de paquetes.
type PackageFilter struct {
	query.Params
	Category     string
	BillingCycle string
	IsActive     *bool
}

// PackageResponse salida de un paquete.
type PackageResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Code            string               `json:"code"`
	Description     string               `json:"description"`
	Price           entity.PackagePrice  `json:"price"`
	Features        []string             `json:"features"`
	Limits          entity.PackageLimits `json:"limits"`
	IsPopular       bool                 `json:"is_popular"`
	IsActive        bool                 `json:"is_active"`
	Category        string               `json:"category"`
	TrialDays       int                  `json:"trial_days"`
	SetupFee        decimal.Decimal      `json:"setup_fee"`
	BillingCycle    string               `json:"billing_cycle"`
	EnterpriseCount int                  `json:"enterprise_count"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CreateSubscriptionRequest asigna un paquete a una empresa.
type CreateSubscriptionRequest struct {
	EnterpriseID string     `json:"enterprise_id" validate:"required"`
	PackageID    string     `json:"package_id" validate:"required"`
	BillingCycle string     `json:"billing_cycle" validate:"omitempty,oneof=monthly yearly"`
	StartDate    *time.Time `json:"start_date"`
	Trial        bool       `json:"trial"`
	AutoRenew    *bool      `json:"auto_renew"`
}

// SubscriptionFilter filtros de listado de suscripciones.
type SubscriptionFilter struct {
	query.Params
	Status       string // se compara con el estado efectivo
	EnterpriseID string
	PackageID    string
}

// SubscriptionResponse salida con estado efectivo y días restantes.
type SubscriptionResponse struct {
	ID             string          `json:"id"`
	EnterpriseID   string          `json:"enterprise_id"`
	EnterpriseName string          `json:"enterprise_name"`
	PackageID      string          `json:"package_id"`
	PackageName    string          `json:"package_name"`
	Status         string          `json:"status"`
	BillingCycle   string          `json:"billing_cycle"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	DaysRemaining  int             `json:"days_remaining"`
	AutoRenew      bool            `json:"auto_renew"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SubscriptionStatsResponse resumen de ingresos y estados.
type SubscriptionStatsResponse struct {
	TotalSubscriptions     int                            `json:"total_subscriptions"`
	ActiveSubscriptions    int                            `json:"active_subscriptions"`
	TrialSubscriptions     int                            `json:"trial_subscriptions"`
	ExpiredSubscriptions   int                            `json:"expired_subscriptions"`
	CancelledSubscriptions int                            `json:"cancelled_subscriptions"`
	ByStatus               []stats.Point[int]             `json:"by_status"`
	Currency               string                         `json:"currency,omitempty"` // moneda base de los importes
	TotalRevenue           decimal.Decimal                `json:"total_revenue"`
	MonthlyRevenue         decimal.Decimal                `json:"monthly_revenue"` // MRR: anuales / 12
	RevenueByPackage       []stats.Point[decimal.Decimal] `json:"revenue_by_package"`
	ChurnRate              float64                        `json:"churn_rate"`
	ExpiringSoon           int                            `json:"expiring_soon"` // vencen en 7 días
	TotalPackages          int                            `json:"total_packages"`
	ActivePackages         int                            `json:"active_packages"`
}
