package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
)

// NotificationHandler maneja la gestión de notificaciones y la bandeja del usuario.
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "Busca en título y mensaje"
// @Param        type       query  string  false  "info | success | warning | error | announcement | all"
// @Param        priority   query  string  false  "low | medium | high | urgent | all"
// @Param        status     query  string  false  "draft | scheduled | sent | failed | all"
// @Param        is_active  query  string  false  "true | false | all"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.NotificationResponse}
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	active, err := boolQuery(c, "is_active")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), dto.NotificationFilter{
		Params:   listParams(c),
		Type:     c.Query("type"),
		Priority: c.Query("priority"),
		Status:   c.Query("status"),
		IsActive: active,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// Stats godoc
// @Summary      Estadísticas de notificaciones
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.NotificationStatsResponse}
// @Router       /api/notifications/stats [get]
func (h *NotificationHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Inbox godoc
// @Summary      Bandeja del usuario autenticado
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.InboxItem}
// @Router       /api/notifications/inbox [get]
func (h *NotificationHandler) Inbox(c *fiber.Ctx) error {
	res, err := h.uc.Inbox(c.UserContext(), GetUserID(c), listParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// GetByID godoc
// @Summary      Obtener notificación
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.Envelope{data=dto.NotificationResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/notifications/{id} [get]
func (h *NotificationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Crear notificación (borrador o programada)
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateNotificationRequest  true  "Contenido y destinatarios"
// @Success      201   {object}  dto.Envelope{data=dto.NotificationResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "notificación creada")
}

// Update godoc
// @Summary      Actualizar notificación (solo borrador o programada)
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                         true  "ID de la notificación"
// @Param        body  body  dto.UpdateNotificationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.NotificationResponse}
// @Failure      409   {object}  dto.Envelope
// @Router       /api/notifications/{id} [put]
func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNotificationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "notificación actualizada")
}

// Send godoc
// @Summary      Enviar notificación ahora
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.Envelope{data=dto.NotificationResponse}
// @Failure      409  {object}  dto.Envelope
// @Router       /api/notifications/{id}/send [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	out, err := h.uc.Send(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "notificación procesada")
}

// MarkRead godoc
// @Summary      Marcar como leída por el usuario autenticado
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.Envelope{data=dto.NotificationResponse}
// @Failure      403  {object}  dto.Envelope
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.uc.MarkRead(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Click godoc
// @Summary      Registrar clic en una acción
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.Envelope{data=dto.NotificationResponse}
// @Router       /api/notifications/{id}/click [post]
func (h *NotificationHandler) Click(c *fiber.Ctx) error {
	out, err := h.uc.RecordClick(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.Envelope
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "notificación eliminada")
}
