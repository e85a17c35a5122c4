package dto

import (
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
)

// CreateEnterpriseRequest entrada para registrar una empresa.
type CreateEnterpriseRequest struct {
	Name               string                `json:"name" validate:"required,min=1,max=200"`
	Code               string                `json:"code" validate:"required,min=2,max=20"`
	BusinessTypeID     string                `json:"business_type_id" validate:"required"`
	TaxCode            string                `json:"tax_code" validate:"omitempty,max=20"`
	Address            string                `json:"address"`
	Phone              string                `json:"phone"`
	Email              string                `json:"email" validate:"required,email"`
	Website            string                `json:"website" validate:"omitempty,url"`
	ContactPerson      *entity.ContactPerson `json:"contact_person"`
	Status             string                `json:"status" validate:"omitempty,oneof=active inactive pending suspended"`
	SubscriptionPlan   string                `json:"subscription_plan" validate:"omitempty,oneof=basic premium enterprise"`
	SubscriptionExpiry *time.Time            `json:"subscription_expiry"`
	UserLimit          *int                  `json:"user_limit" validate:"omitempty,min=1"`
	Features           []string              `json:"features"`
}

// UpdateEnterpriseRequest campos opcionales; los objetos anidados se reemplazan completos.
type UpdateEnterpriseRequest struct {
	Name               *string               `json:"name" validate:"omitempty,min=1,max=200"`
	Code               *string               `json:"code" validate:"omitempty,min=2,max=20"`
	BusinessTypeID     *string               `json:"business_type_id" validate:"omitempty,min=1"`
	TaxCode            *string               `json:"tax_code" validate:"omitempty,max=20"`
	Address            *string               `json:"address"`
	Phone              *string               `json:"phone"`
	Email              *string               `json:"email" validate:"omitempty,email"`
	Website            *string               `json:"website" validate:"omitempty,url"`
	ContactPerson      *entity.ContactPerson `json:"contact_person"`
	Status             *string               `json:"status" validate:"omitempty,oneof=active inactive pending suspended"`
	SubscriptionPlan   *string               `json:"subscription_plan" validate:"omitempty,oneof=basic premium enterprise"`
	SubscriptionExpiry *time.Time            `json:"subscription_expiry"`
	UserLimit          *int                  `json:"user_limit" validate:"omitempty,min=1"`
	CurrentUserCount   *int                  `json:"current_user_count" validate:"omitempty,min=0"`
	Features           []string              `json:"features"`
}

// EnterpriseFilter filtros de listado.
type EnterpriseFilter struct {
	query.Params
	Status           string
	SubscriptionPlan string
	BusinessTypeID   string
}

// EnterpriseResponse salida de una empresa con campos derivados de vencimiento.
type EnterpriseResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Code               string                 `json:"code"`
	BusinessType       entity.BusinessTypeRef `json:"business_type"`
	TaxCode            string                 `json:"tax_code"`
	Address            string                 `json:"address"`
	Phone              string                 `json:"phone"`
	Email              string                 `json:"email"`
	Website            string                 `json:"website"`
	ContactPerson      entity.ContactPerson   `json:"contact_person"`
	Status             string                 `json:"status"`
	SubscriptionPlan   string                 `json:"subscription_plan"`
	SubscriptionExpiry time.Time              `json:"subscription_expiry"`
	DaysUntilExpiry    int                    `json:"days_until_expiry"`
	IsExpired          bool                   `json:"is_expired"`
	UserLimit          int                    `json:"user_limit"`
	CurrentUserCount   int                    `json:"current_user_count"`
	Features           []string               `json:"features"`
	RegistrationDate   time.Time              `json:"registration_date"`
	LastActivity       time.Time              `json:"last_activity"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// EnterpriseStatsResponse resumen para el dashboard de empresas.
type EnterpriseStatsResponse struct {
	TotalEnterprises     int                `json:"total_enterprises"`
	ActiveEnterprises    int                `json:"active_enterprises"`
	PendingEnterprises   int                `json:"pending_enterprises"`
	SuspendedEnterprises int                `json:"suspended_enterprises"`
	InactiveEnterprises  int                `json:"inactive_enterprises"`
	ByPlan               []stats.Point[int] `json:"by_plan"`
	ByBusinessType       []stats.Point[int] `json:"by_business_type"`
	ExpiringSoon         int                `json:"expiring_soon"` // vencen en los próximos 30 días
	Expired              int                `json:"expired"`
	TotalUsers           int                `json:"total_users"`
	TotalUserLimit       int                `json:"total_user_limit"`
	UserUtilization      float64            `json:"user_utilization"` // % de TotalUsers sobre TotalUserLimit
	NewThisMonth         int                `json:"new_this_month"`   // registradas en los últimos 30 días
	GrowthRate           float64            `json:"growth_rate"`      // vs. los 30 días previos
}
