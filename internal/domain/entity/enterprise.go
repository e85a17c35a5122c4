package entity

import (
	"slices"
	"time"
)

// Estados válidos de Enterprise.
const (
	EnterpriseActive    = "active"
	EnterpriseInactive  = "inactive"
	EnterprisePending   = "pending"
	EnterpriseSuspended = "suspended"
)

// Planes de suscripción asignables a una empresa.
const (
	PlanBasic      = "basic"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

// EnterpriseStatuses y SubscriptionPlans en el orden en que se reportan en estadísticas.
var (
	EnterpriseStatuses = []string{EnterpriseActive, EnterprisePending, EnterpriseSuspended, EnterpriseInactive}
	SubscriptionPlans  = []string{PlanBasic, PlanPremium, PlanEnterprise}
)

// ContactPerson persona de contacto de la empresa.
type ContactPerson struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// BusinessTypeRef copia por valor del tipo de negocio embebida en la empresa.
type BusinessTypeRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Category string `json:"category"`
}

// Enterprise representa una organización/tenant administrada por la plataforma.
// CurrentUserCount <= UserLimit es lo esperado pero no se fuerza (ver DESIGN.md).
type Enterprise struct {
	ID                 string
	Name               string
	Code               string // único, en mayúsculas
	BusinessType       BusinessTypeRef
	TaxCode            string
	Address            string
	Phone              string
	Email              string
	Website            string
	ContactPerson      ContactPerson
	Status             string // active, inactive, pending, suspended
	SubscriptionPlan   string // basic, premium, enterprise
	SubscriptionExpiry time.Time
	UserLimit          int
	CurrentUserCount   int
	Features           []string
	RegistrationDate   time.Time
	LastActivity       time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsSubscriptionExpired informa si la suscripción venció respecto a now.
func (e *Enterprise) IsSubscriptionExpired(now time.Time) bool {
	return !e.SubscriptionExpiry.IsZero() && !e.SubscriptionExpiry.After(now)
}

// DaysUntilExpiry días completos hasta el vencimiento (negativo si ya venció).
func (e *Enterprise) DaysUntilExpiry(now time.Time) int {
	return daysBetween(now, e.SubscriptionExpiry)
}

// HasFeature informa si la empresa tiene habilitada la funcionalidad.
func (e *Enterprise) HasFeature(feature string) bool {
	return slices.Contains(e.Features, feature)
}

// Clone devuelve una copia independiente (los slices no se comparten).
func (e *Enterprise) Clone() *Enterprise {
	c := *e
	c.Features = slices.Clone(e.Features)
	return &c
}

func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}
