package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// writeError traduz erros da aplicação para o status HTTP e o corpo padrão.
// Falhas do ERP viram 502 para o cliente distinguir indisponibilidade do
// upstream de um bug do próprio painel.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "conta inativa ou sem acesso"})
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, erp.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USERNAME_TAKEN", Message: "username já cadastrado"})
	}

	var authErr *erp.AuthError
	var upAuthErr *erp.UpstreamAuthError
	if errors.As(err, &authErr) || errors.As(err, &upAuthErr) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_AUTH", Message: "falha de autenticação com o ERP"})
	}
	var upErr *erp.UpstreamError
	if errors.As(err, &upErr) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ERP_UNAVAILABLE", Message: "o ERP não respondeu como esperado"})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
