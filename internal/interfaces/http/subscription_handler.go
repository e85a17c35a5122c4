package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
)

// SubscriptionHandler maneja las suscripciones de empresas a paquetes.
type SubscriptionHandler struct {
	uc *usecase.SubscriptionUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// List godoc
// @Summary      Listar suscripciones
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        search         query  string  false  "Busca en empresa y paquete"
// @Param        status         query  string  false  "active | trial | expired | cancelled | all"
// @Param        enterprise_id  query  string  false  "ID de la empresa"
// @Param        package_id     query  string  false  "ID del paquete"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.SubscriptionResponse}
// @Router       /api/subscriptions [get]
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	res, err := h.uc.List(c.UserContext(), dto.SubscriptionFilter{
		Params:       listParams(c),
		Status:       c.Query("status"),
		EnterpriseID: c.Query("enterprise_id"),
		PackageID:    c.Query("package_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// Stats godoc
// @Summary      Estadísticas de suscripciones e ingresos
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.SubscriptionStatsResponse}
// @Router       /api/subscriptions/stats [get]
func (h *SubscriptionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// GetByID godoc
// @Summary      Obtener suscripción
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.Envelope{data=dto.SubscriptionResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Suscribir una empresa a un paquete
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSubscriptionRequest  true  "Empresa, paquete y ciclo"
// @Success      201   {object}  dto.Envelope{data=dto.SubscriptionResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/subscriptions [post]
func (h *SubscriptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubscriptionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "suscripción creada")
}

// Cancel godoc
// @Summary      Cancelar suscripción
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.Envelope{data=dto.SubscriptionResponse}
// @Failure      409  {object}  dto.Envelope
// @Router       /api/subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "suscripción cancelada")
}

// Renew godoc
// @Summary      Renovar suscripción un ciclo de facturación
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.Envelope{data=dto.SubscriptionResponse}
// @Failure      409  {object}  dto.Envelope
// @Router       /api/subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) Renew(c *fiber.Ctx) error {
	out, err := h.uc.Renew(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "suscripción renovada")
}

// Delete godoc
// @Summary      Eliminar suscripción
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "suscripción eliminada")
}
