package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/usecase"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

// CurrencyHandler maneja las tasas de cambio y la conversión.
type CurrencyHandler struct {
	uc *usecase.CurrencyUseCase
}

// NewCurrencyHandler construye el handler.
func NewCurrencyHandler(uc *usecase.CurrencyUseCase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

// List godoc
// @Summary      Listar monedas
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Param        search     query  string  false  "Busca en código y nombre"
// @Param        is_active  query  string  false  "true | false | all"
// @Param        page       query  int     false  "Página"  default(1)
// @Param        limit      query  int     false  "Tamaño de página (0 = sin paginar)"
// @Success      200  {object}  dto.Envelope{data=[]dto.CurrencyResponse}
// @Router       /api/currencies [get]
func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	active, err := boolQuery(c, "is_active")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.uc.List(c.UserContext(), dto.CurrencyFilter{Params: listParams(c), IsActive: active})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.List(res))
}

// Stats godoc
// @Summary      Estadísticas de monedas
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CurrencyStatsResponse}
// @Router       /api/currencies/stats [get]
func (h *CurrencyHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Convert godoc
// @Summary      Convertir un importe entre monedas
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Param        amount  query  string  true  "Importe decimal"
// @Param        from    query  string  true  "Código de origen"
// @Param        to      query  string  true  "Código de destino"
// @Success      200  {object}  dto.Envelope{data=dto.ConvertResponse}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/currencies/convert [get]
func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("amount"))
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return respondError(c, domain.NewFieldError(domain.ErrInvalidInput, "amount", "debe ser un número decimal", raw))
	}
	out, err := h.uc.Convert(c.UserContext(), amount, c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// GetByID godoc
// @Summary      Obtener moneda
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la moneda"
// @Success      200  {object}  dto.Envelope{data=dto.CurrencyResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/currencies/{id} [get]
func (h *CurrencyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "")
}

// Create godoc
// @Summary      Crear moneda
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCurrencyRequest  true  "Datos de la moneda"
// @Success      201   {object}  dto.Envelope{data=dto.CurrencyResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/currencies [post]
func (h *CurrencyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCurrencyRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return created(c, out, "moneda creada")
}

// Update godoc
// @Summary      Actualizar moneda
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID de la moneda"
// @Param        body  body  dto.UpdateCurrencyRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.CurrencyResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/currencies/{id} [put]
func (h *CurrencyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCurrencyRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "moneda actualizada")
}

// SetBase godoc
// @Summary      Establecer moneda base (recalcula todas las tasas)
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la moneda"
// @Success      200  {object}  dto.Envelope{data=dto.CurrencyResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/currencies/{id}/base [patch]
func (h *CurrencyHandler) SetBase(c *fiber.Ctx) error {
	out, err := h.uc.SetBase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, out, "moneda base actualizada")
}

// Delete godoc
// @Summary      Eliminar moneda (no la base)
// @Tags         currencies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la moneda"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/currencies/{id} [delete]
func (h *CurrencyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return ok(c, nil, "moneda eliminada")
}
