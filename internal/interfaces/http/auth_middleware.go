package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/pkg/jwt"
)

// LocalClaims chave de c.Locals onde o AuthMiddleware deixa os claims do token.
const LocalClaims = "claims"

// AuthMiddleware valida o Bearer Token JWT e deixa os claims em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// GetClaims devolve os claims do contexto (depois do AuthMiddleware), ou nil.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	v := c.Locals(LocalClaims)
	if v == nil {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// GetUserID devolve o ID do usuário autenticado, ou vazio.
func GetUserID(c *fiber.Ctx) string {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// GetUsername devolve o username do usuário autenticado, ou vazio.
func GetUsername(c *fiber.Ctx) string {
	if claims := GetClaims(c); claims != nil {
		return claims.Username
	}
	return ""
}
