package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/application/service"
)

// CustomerHandler painel de clientes (dados cadastrais do ERP).
type CustomerHandler struct {
	svc *service.CustomerService
}

// NewCustomerHandler constrói o handler de clientes.
func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Details godoc
// @Summary      Dados cadastrais de um cliente
// @Description  O identificador pode ser código, CPF ou CNPJ (com ou sem máscara).
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        identifier  path  string  true  "código, CPF ou CNPJ"
// @Success      200  {object}  erp.PersonRecord
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/customers/{identifier} [get]
func (h *CustomerHandler) Details(c *fiber.Ctx) error {
	person, err := h.svc.Details(c.Context(), c.Params("identifier"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(person)
}

// Statistics godoc
// @Summary      Estatísticas de compra de um cliente
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        code  path  int  true  "código do cliente"
// @Success      200  {object}  erp.PersonStatistics
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/customers/{code}/statistics [get]
func (h *CustomerHandler) Statistics(c *fiber.Ctx) error {
	code, err := strconv.ParseInt(c.Params("code"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código do cliente deve ser numérico"})
	}
	stats, err := h.svc.Statistics(c.Context(), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
