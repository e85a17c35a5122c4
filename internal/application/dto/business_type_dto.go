package dto

import (
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/stats"
)

// CreateBusinessTypeRequest entrada para crear un tipo de negocio.
type CreateBusinessTypeRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=100"`
	Code             string   `json:"code" validate:"required,min=2,max=20"`
	Description      string   `json:"description" validate:"omitempty,max=500"`
	Category         string   `json:"category" validate:"required"`
	Features         []string `json:"features"`
	DefaultUserLimit *int     `json:"default_user_limit" validate:"omitempty,min=1"`
	IsActive         *bool    `json:"is_active"`
}

// UpdateBusinessTypeRequest campos opcionales.
type UpdateBusinessTypeRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Code             *string  `json:"code" validate:"omitempty,min=2,max=20"`
	Description      *string  `json:"description" validate:"omitempty,max=500"`
	Category         *string  `json:"category" validate:"omitempty,min=1"`
	Features         []string `json:"features"`
	DefaultUserLimit *int     `json:"default_user_limit" validate:"omitempty,min=1"`
	IsActive         *bool    `json:"is_active"`
}

// BusinessTypeFilter filtros de listado.
type BusinessTypeFilter struct {
	query.Params
	Category string
	IsActive *bool
}

// BusinessTypeResponse salida; EnterpriseCount se calcula al leer.
type BusinessTypeResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Code             string    `json:"code"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Features         []string  `json:"features"`
	DefaultUserLimit int       `json:"default_user_limit"`
	IsActive         bool      `json:"is_active"`
	EnterpriseCount  int       `json:"enterprise_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BusinessTypeStatsResponse resumen de tipos de negocio.
type BusinessTypeStatsResponse struct {
	TotalTypes        int                `json:"total_types"`
	ActiveTypes       int                `json:"active_types"`
	InactiveTypes     int                `json:"inactive_types"`
	ByCategory        []stats.Point[int] `json:"by_category"`
	TotalEnterprises  int                `json:"total_enterprises"`
	EnterprisesByType []stats.Point[int] `json:"enterprises_by_type"`
}

// CatalogResponse categorías y funcionalidades admitidas.
type CatalogResponse struct {
	Categories []string `json:"categories"`
	Features   []string `json:"features"`
}
