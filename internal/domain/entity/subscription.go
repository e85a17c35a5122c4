package entity

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de paquete.
const (
	PackageBasic      = "basic"
	PackagePremium    = "premium"
	PackageEnterprise = "enterprise"
	PackageCustom     = "custom"
)

// Ciclos de facturación.
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Niveles de soporte incluidos en un paquete.
const (
	SupportBasic     = "basic"
	SupportPriority  = "priority"
	SupportDedicated = "dedicated"
)

// Estados de Subscription.
const (
	SubscriptionActive    = "active"
	SubscriptionTrial     = "trial"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

var (
	PackageCategories    = []string{PackageBasic, PackagePremium, PackageEnterprise, PackageCustom}
	SubscriptionStatuses = []string{SubscriptionActive, SubscriptionTrial, SubscriptionExpired, SubscriptionCancelled}
)

// PackagePrice precio del paquete. Los montos usan decimal (nunca float).
type PackagePrice struct {
	Monthly  decimal.Decimal `json:"monthly"`
	Yearly   decimal.Decimal `json:"yearly"`
	Currency string          `json:"currency"`
}

// PackageLimits límites del paquete; 0 significa ilimitado.
type PackageLimits struct {
	Users     int    `json:"users"`
	StorageGB int    `json:"storage_gb"`
	APICalls  int    `json:"api_calls"`
	Projects  int    `json:"projects"`
	Support   string `json:"support"`
}

// SubscriptionPackage nivel de servicio con precio, límites y funcionalidades.
// EnterpriseCount se calcula al leer a partir de las suscripciones vigentes.
type SubscriptionPackage struct {
	ID              string
	Name            string
	Code            string // único
	Description     string
	Price           PackagePrice
	Features        []string
	Limits          PackageLimits
	IsPopular       bool
	IsActive        bool
	Category        string // basic, premium, enterprise, custom
	TrialDays       int
	SetupFee        decimal.Decimal
	BillingCycle    string // monthly, yearly
	EnterpriseCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p *SubscriptionPackage) Clone() *SubscriptionPackage {
	c := *p
	c.Features = slices.Clone(p.Features)
	return &c
}

// PriceFor devuelve el precio del paquete para el ciclo indicado.
func (p *SubscriptionPackage) PriceFor(cycle string) decimal.Decimal {
	if cycle == BillingYearly {
		return p.Price.Yearly
	}
	return p.Price.Monthly
}

// Subscription asignación de un paquete a una empresa.
type Subscription struct {
	ID             string
	EnterpriseID   string
	EnterpriseName string
	PackageID      string
	PackageName    string
	Status         string // active, trial, expired, cancelled
	BillingCycle   string
	Amount         decimal.Decimal
	Currency       string
	StartDate      time.Time
	EndDate        time.Time
	AutoRenew      bool
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Subscription) Clone() *Subscription {
	c := *s
	if s.CancelledAt != nil {
		t := *s.CancelledAt
		c.CancelledAt = &t
	}
	return &c
}

// EffectiveStatus deriva el estado real: una suscripción active/trial cuya fecha
// de fin ya pasó se reporta como expired aunque no se haya persistido así.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if (s.Status == SubscriptionActive || s.Status == SubscriptionTrial) && !s.EndDate.After(now) {
		return SubscriptionExpired
	}
	return s.Status
}

// IsCurrent informa si la suscripción cuenta como vigente (active o trial sin vencer).
func (s *Subscription) IsCurrent(now time.Time) bool {
	st := s.EffectiveStatus(now)
	return st == SubscriptionActive || st == SubscriptionTrial
}

// DaysRemaining días hasta EndDate (0 si ya venció).
func (s *Subscription) DaysRemaining(now time.Time) int {
	d := daysBetween(now, s.EndDate)
	if d < 0 {
		return 0
	}
	return d
}

// NextPeriodEnd calcula el fin del siguiente período a partir de from.
func NextPeriodEnd(from time.Time, cycle string) time.Time {
	if cycle == BillingYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}
