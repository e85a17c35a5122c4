package entity

import (
	"slices"
	"time"
)

// Categorías de tipo de negocio. La lista es fija pero ampliable.
var BusinessCategories = []string{
	"technology", "manufacturing", "retail", "services",
	"finance", "healthcare", "education", "hospitality", "other",
}

// Funcionalidades de la plataforma que pueden habilitarse por tipo de negocio o empresa.
const (
	FeatureHR            = "hr_management"
	FeatureFinance       = "finance"
	FeatureInventory     = "inventory"
	FeatureCRM           = "crm"
	FeatureReports       = "reports"
	FeatureNotifications = "notifications"
	FeatureAPIAccess     = "api_access"
	FeatureMultiBranch   = "multi_branch"
	FeatureStorefront    = "storefront"
	FeatureAuditLogs     = "audit_logs"
)

// FeatureCatalog catálogo cerrado de funcionalidades.
var FeatureCatalog = []string{
	FeatureHR, FeatureFinance, FeatureInventory, FeatureCRM, FeatureReports,
	FeatureNotifications, FeatureAPIAccess, FeatureMultiBranch, FeatureStorefront, FeatureAuditLogs,
}

// IsKnownFeature informa si f pertenece al catálogo.
func IsKnownFeature(f string) bool {
	return slices.Contains(FeatureCatalog, f)
}

// BusinessType plantilla de límites y funcionalidades asignable a una Enterprise.
// EnterpriseCount no se persiste: se calcula al leer.
type BusinessType struct {
	ID               string
	Name             string
	Code             string // único
	Description      string
	Category         string
	Features         []string
	DefaultUserLimit int
	IsActive         bool
	EnterpriseCount  int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Ref devuelve la copia embebible en Enterprise.
func (b *BusinessType) Ref() BusinessTypeRef {
	return BusinessTypeRef{ID: b.ID, Name: b.Name, Code: b.Code, Category: b.Category}
}

func (b *BusinessType) Clone() *BusinessType {
	c := *b
	c.Features = slices.Clone(b.Features)
	return &c
}
