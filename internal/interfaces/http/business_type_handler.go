package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
)

// BusinessTypeHandler maneja los tipos de negocio.
type BusinessTypeHandler struct {
	uc *usecase.BusinessTypeUseCase
}

// NewBusinessTypeHandler construye el handler.
func NewBusinessTypeHandler(uc *usecase.BusinessTypeUseCase) *BusinessTypeHandler {
	return &BusinessTypeHandler{uc: uc}
}

// List godoc
// @Summary      Listar tipos de negocio
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "Busca en nombre, código y descripción"
// @Param        category   query  string  false  "Categoría o all"
// @Param        is_active  query  string  false  "true | false | all"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.BusinessTypeResponse}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/business-types [get]
func (h *BusinessTypeHandler) List(c *fiber.Ctx) error {
	active, err := boolQuery(c, "is_active")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), dto.BusinessTypeFilter{
		Params:   listParams(c),
		Category: c.Query("category"),
		IsActive: active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// Catalog godoc
// @Summary      Categorías y funcionalidades disponibles
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CatalogResponse}
// @Router       /api/business-types/catalog [get]
func (h *BusinessTypeHandler) Catalog(c *fiber.Ctx) error {
	return ok(c, h.uc.Catalog(), "")
}

// Stats godoc
// @Summary      Estadísticas de tipos de negocio
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.BusinessTypeStatsResponse}
// @Router       /api/business-types/stats [get]
func (h *BusinessTypeHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// GetByID godoc
// @Summary      Obtener tipo de negocio
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.Envelope{data=dto.BusinessTypeResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/business-types/{id} [get]
func (h *BusinessTypeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Crear tipo de negocio
// @Tags         business-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBusinessTypeRequest  true  "Datos del tipo de negocio"
// @Success      201   {object}  dto.Envelope{data=dto.BusinessTypeResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/business-types [post]
func (h *BusinessTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBusinessTypeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "tipo de negocio creado")
}

// Update godoc
// @Summary      Actualizar tipo de negocio
// @Tags         business-types
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                         true  "ID del tipo de negocio"
// @Param        body  body  dto.UpdateBusinessTypeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.BusinessTypeResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/business-types/{id} [put]
func (h *BusinessTypeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBusinessTypeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "tipo de negocio actualizado")
}

// Toggle godoc
// @Summary      Activar o desactivar tipo de negocio
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.Envelope{data=dto.BusinessTypeResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/business-types/{id}/toggle [patch]
func (h *BusinessTypeHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "estado actualizado")
}

// Delete godoc
// @Summary      Eliminar tipo de negocio (solo sin empresas asociadas)
// @Tags         business-types
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del tipo de negocio"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/business-types/{id} [delete]
func (h *BusinessTypeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "tipo de negocio eliminado")
}
