package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/application/service"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// FiscalHandler notas fiscais eletrônicas: busca, XML e DANFE.
type FiscalHandler struct {
	svc *service.FiscalService
}

// NewFiscalHandler constrói o handler fiscal.
func NewFiscalHandler(svc *service.FiscalService) *FiscalHandler {
	return &FiscalHandler{svc: svc}
}

// Search godoc
// @Summary      Busca notas fiscais emitidas
// @Description  Exige ao menos um filtro (período, cliente ou número).
// @Tags         fiscal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  erp.InvoiceFilters  true  "filtros da busca"
// @Success      200  {array}   erp.InvoiceRecord
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/search [post]
func (h *FiscalHandler) Search(c *fiber.Ctx) error {
	var filters erp.InvoiceFilters
	if err := c.BodyParser(&filters); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	invoices, err := h.svc.Invoices(c.Context(), filters)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoices)
}

// XML godoc
// @Summary      XML completo da NF-e
// @Tags         fiscal
// @Produce      application/xml
// @Security     BearerAuth
// @Param        accessKey  path  string  true  "chave de acesso (44 dígitos)"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{accessKey}/xml [get]
func (h *FiscalHandler) XML(c *fiber.Ctx) error {
	xml, err := h.svc.XML(c.Context(), c.Params("accessKey"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.SendString(xml.Content)
}

// XMLSummary godoc
// @Summary      Resumo dos campos de interesse do XML da NF-e
// @Tags         fiscal
// @Produce      json
// @Security     BearerAuth
// @Param        accessKey  path  string  true  "chave de acesso (44 dígitos)"
// @Success      200  {object}  erp.InvoiceXMLSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{accessKey}/xml/summary [get]
func (h *FiscalHandler) XMLSummary(c *fiber.Ctx) error {
	summary, err := h.svc.XMLSummary(c.Context(), c.Params("accessKey"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// Danfe godoc
// @Summary      DANFE em PDF da NF-e
// @Tags         fiscal
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        accessKey  path  string  true  "chave de acesso (44 dígitos)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fiscal/invoices/{accessKey}/danfe [get]
func (h *FiscalHandler) Danfe(c *fiber.Ctx) error {
	pdf, err := h.svc.DanfePDF(c.Context(), c.Params("accessKey"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="danfe.pdf"`)
	return c.Send(pdf)
}
