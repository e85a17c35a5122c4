package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
)

// EnterpriseHandler maneja las peticiones HTTP para el recurso Enterprise.
type EnterpriseHandler struct {
	uc *usecase.EnterpriseUseCase
}

// NewEnterpriseHandler construye el handler inyectando el caso de uso.
func NewEnterpriseHandler(uc *usecase.EnterpriseUseCase) *EnterpriseHandler {
	return &EnterpriseHandler{uc: uc}
}

// List godoc
// @Summary      Listar empresas
// @Tags         enterprises
// @Produce      json
// @Security     BearerAuth
// @Param        search             query  string  false  "Busca en nombre, código, email, NIT y contacto"
// @Param        status             query  string  false  "active | pending | suspended | inactive | all"
// @Param        subscription_plan  query  string  false  "basic | premium | enterprise | all"
// @Param        business_type_id   query  string  false  "ID del tipo de negocio"
// @Param        page               query  int     false  "Página"  default(1)
// @Param        limit              query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.EnterpriseResponse}
// @Router       /api/enterprises [get]
func (h *EnterpriseHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext(), dto.EnterpriseFilter{
		Params:           listParams(c),
		Status:           c.Query("status"),
		SubscriptionPlan: c.Query("subscription_plan"),
		BusinessTypeID:   c.Query("business_type_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// Stats godoc
// @Summary      Estadísticas de empresas
// @Tags         enterprises
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.EnterpriseStatsResponse}
// @Router       /api/enterprises/stats [get]
func (h *EnterpriseHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         enterprises
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope{data=dto.EnterpriseResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/enterprises/{id} [get]
func (h *EnterpriseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Crear empresa
// @Tags         enterprises
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEnterpriseRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Envelope{data=dto.EnterpriseResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/enterprises [post]
func (h *EnterpriseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEnterpriseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "empresa creada")
}

// Update godoc
// @Summary      Actualizar empresa
// @Tags         enterprises
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la empresa"
// @Param        body  body  dto.UpdateEnterpriseRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.EnterpriseResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/enterprises/{id} [put]
func (h *EnterpriseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEnterpriseRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "empresa actualizada")
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la empresa (aprobar, suspender, desactivar)
// @Tags         enterprises
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "ID de la empresa"
// @Param        body  body  dto.StatusUpdateRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Envelope{data=dto.EnterpriseResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/enterprises/{id}/status [patch]
func (h *EnterpriseHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "estado actualizado")
}

// Delete godoc
// @Summary      Eliminar empresa
// @Tags         enterprises
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/enterprises/{id} [delete]
func (h *EnterpriseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "empresa eliminada")
}
