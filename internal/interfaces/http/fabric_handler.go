package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/service"
)

// FabricHandler listagem e relatório de tecidos.
type FabricHandler struct {
	svc *service.FabricService
}

// NewFabricHandler constrói o handler de tecidos.
func NewFabricHandler(svc *service.FabricService) *FabricHandler {
	return &FabricHandler{svc: svc}
}

// List godoc
// @Summary      Lista de tecidos com saldo, custo e ficha técnica
// @Tags         fabrics
// @Produce      json
// @Security     BearerAuth
// @Param        search  query  string  false  "filtro por código, nome ou atributo (sem acentos)"
// @Success      200  {array}   fabric.Entry
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fabrics [get]
func (h *FabricHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.Context(), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Report godoc
// @Summary      Relatório PDF da lista de tecidos
// @Tags         fabrics
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        search  query  string  false  "mesmo filtro da listagem"
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/fabrics/report.pdf [get]
func (h *FabricHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.svc.ReportPDF(c.Context(), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="tecidos.pdf"`)
	return c.Send(pdf)
}
