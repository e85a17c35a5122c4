package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
)

// PackageHandler maneja los paquetes de suscripción.
type PackageHandler struct {
	uc *usecase.PackageUseCase
}

// NewPackageHandler construye el handler.
func NewPackageHandler(uc *usecase.PackageUseCase) *PackageHandler {
	return &PackageHandler{uc: uc}
}

// List godoc
// @Summary      Listar paquetes
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        search         query  string  false  "Busca en nombre, código y descripción"
// @Param        category       query  string  false  "basic | premium | enterprise | custom | all"
// @Param        billing_cycle  query  string  false  "monthly | yearly | all"
// @Param        is_active      query  string  false  "true | false | all"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.PackageResponse}
// @Router       /api/subscriptions/packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	active, err := boolQuery(c, "is_active")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), dto.PackageFilter{
		Params:       listParams(c),
		Category:     c.Query("category"),
		BillingCycle: c.Query("billing_cycle"),
		IsActive:     active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// GetByID godoc
// @Summary      Obtener paquete
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.Envelope{data=dto.PackageResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/subscriptions/packages/{id} [get]
func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Crear paquete
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePackageRequest  true  "Datos del paquete"
// @Success      201   {object}  dto.Envelope{data=dto.PackageResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/subscriptions/packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePackageRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "paquete creado")
}

// Update godoc
// @Summary      Actualizar paquete
// @Tags         packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID del paquete"
// @Param        body  body  dto.UpdatePackageRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.PackageResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/subscriptions/packages/{id} [put]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePackageRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "paquete actualizado")
}

// Toggle godoc
// @Summary      Activar o desactivar paquete
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.Envelope{data=dto.PackageResponse}
// @Router       /api/subscriptions/packages/{id}/toggle [patch]
func (h *PackageHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "estado actualizado")
}

// Delete godoc
// @Summary      Eliminar paquete (solo sin empresas suscritas)
// @Tags         packages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/subscriptions/packages/{id} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "paquete eliminado")
}
