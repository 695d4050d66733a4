package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/service"
)

// ProductHandler consulta de saldos de produto acabado.
type ProductHandler struct {
	svc *service.ProductService
}

// NewProductHandler constrói o handler de produtos.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// BalanceMatrix godoc
// @Summary      Matriz cor × tamanho de uma referência
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        referenceCode  path   string  true   "referência do produto"
// @Param        mode           query  string  false  "base | sales | production (padrão sales)"
// @Success      200  {object}  dto.BalanceMatrixResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/products/{referenceCode}/balance-matrix [get]
func (h *ProductHandler) BalanceMatrix(c *fiber.Ctx) error {
	m, err := h.svc.BalanceMatrix(c.Context(), c.Params("referenceCode"), c.Query("mode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}
