package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/application/query"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

// LocalError guarda el error interno de la petición para RequestLogger.
const LocalError = "request_error"

// respondError es el único punto donde un error se convierte en respuesta HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, code, message := classify(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
	}
	return c.Status(status).JSON(dto.Failure(code, message, domain.FieldErrors(err)))
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", domain.ErrInvalidInput.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND", domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", domain.ErrDuplicate.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error()
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "error interno del servidor"
	}
}

// ErrorHandler responde con el envelope los errores que no pasan por respondError
// (rutas inexistentes, cuerpos demasiado grandes, pánicos recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	switch {
	case status == fiber.StatusNotFound:
		return c.Status(status).JSON(dto.Failure("NOT_FOUND", "ruta no encontrada", nil))
	case status < fiber.StatusInternalServerError:
		return c.Status(status).JSON(dto.Failure("REQUEST_ERROR", fe.Message, nil))
	default:
		c.Locals(LocalError, err)
		return c.Status(status).JSON(dto.Failure("INTERNAL", "error interno del servidor", nil))
	}
}

func ok(c *fiber.Ctx, data any, message string) error {
	return c.JSON(dto.Success(data, message))
}

func created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Success(data, message))
}

// parseBody decodifica el cuerpo JSON; un cuerpo ilegible es un error de entrada.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewFieldError(domain.ErrInvalidInput, "body", "cuerpo inválido", nil)
	}
	return nil
}

// listParams lee search, page y limit. Sin limit no se pagina.
func listParams(c *fiber.Ctx) query.Params {
	return query.Params{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	}
}

// boolQuery interpreta un filtro booleano; vacío o "all" no filtran.
func boolQuery(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" || raw == query.All {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewFieldError(domain.ErrInvalidInput, key, "debe ser true, false o all", raw)
	}
	return &v, nil
}
