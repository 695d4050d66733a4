package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
)

// RequirePermission devolve um middleware Fiber que verifica se o usuário do
// token tem o módulo do painel liberado. Admin passa sempre. Deve ser usado
// DEPOIS do AuthMiddleware.
//
// Comportamento:
//   - 401 Unauthorized → sem claims no contexto (AuthMiddleware ausente).
//   - 403 Forbidden    → módulo não liberado para o usuário.
func RequirePermission(module string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "claims não encontrados no contexto",
			})
		}
		if !claims.HasPermission(module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "o módulo '" + module + "' não está liberado para este usuário",
			})
		}
		return c.Next()
	}
}

// RequireAdmin restringe a rota a administradores. Deve ser usado DEPOIS do
// AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "claims não encontrados no contexto",
			})
		}
		if !claims.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "ADMIN_ONLY",
				Message: "rota restrita a administradores",
			})
		}
		return c.Next()
	}
}
