package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/application/service"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// ReceivableHandler contas a receber: títulos e segunda via de boleto.
type ReceivableHandler struct {
	svc *service.ReceivableService
}

// NewReceivableHandler constrói o handler de contas a receber.
func NewReceivableHandler(svc *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{svc: svc}
}

// Search godoc
// @Summary      Busca títulos de contas a receber
// @Description  Exige ao menos um filtro de cliente ou de período.
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  erp.ReceivableFilters  true  "filtros da busca"
// @Success      200  {array}   erp.ReceivableDocument
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/receivables/search [post]
func (h *ReceivableHandler) Search(c *fiber.Ctx) error {
	var filters erp.ReceivableFilters
	if err := c.BodyParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	docs, err := h.svc.Documents(c.Context(), filters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(docs)
}

// BankSlip godoc
// @Summary      Emite a segunda via de boleto das parcelas
// @Tags         receivables
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        body  body  dto.BankSlipIssueRequest  true  "cliente e parcelas"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/receivables/bank-slip [post]
func (h *ReceivableHandler) BankSlip(c *fiber.Ctx) error {
	var in dto.BankSlipIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	pdf, err := h.svc.BankSlip(c.Context(), in.CustomerCode, in.ReceivableCodeList)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="boleto.pdf"`)
	return c.Send(pdf)
}
