package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Enterprise-admin-api/internal/application/dto"
	"github.com/jhoicas/Enterprise-admin-api/internal/domain/entity"
)

// featureChecker es el contrato mínimo que necesita el middleware para verificar funcionalidades.
// Lo implementa *usecase.EnterpriseUseCase.
type featureChecker interface {
	HasActiveFeature(ctx context.Context, enterpriseID, feature string) (bool, error)
}

// RequireFeature verifica que la empresa del token tenga la funcionalidad activa.
// Debe usarse DESPUÉS de AuthMiddleware. Los administradores de plataforma pasan siempre.
//
// Comportamiento:
//   - 403 Forbidden → funcionalidad no incluida, empresa no activa o suscripción vencida.
//   - 503 Service Unavailable → fallo al consultar el almacenamiento.
//   - 401 si el token no trae empresa.
func RequireFeature(feature string, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) == entity.RoleAdmin {
			return c.Next()
		}
		enterpriseID := GetEnterpriseID(c)
		if enterpriseID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Failure("UNAUTHORIZED", "enterprise_id no encontrado en el token", nil))
		}

		active, err := checker.HasActiveFeature(c.UserContext(), enterpriseID, feature)
		if err != nil {
			c.Locals(LocalError, err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Failure("FEATURE_CHECK_FAILED", "no se pudo verificar la funcionalidad, intente más tarde", nil))
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.Failure("FEATURE_DISABLED", "la funcionalidad '"+feature+"' no está activa para esta empresa", nil))
		}
		return c.Next()
	}
}
