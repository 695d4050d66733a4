package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/application/service"
)

// ObservationHandler anotações de equipe sobre referências de produto.
type ObservationHandler struct {
	svc *service.ObservationService
}

// NewObservationHandler constrói o handler de observações.
func NewObservationHandler(svc *service.ObservationService) *ObservationHandler {
	return &ObservationHandler{svc: svc}
}

// Create godoc
// @Summary      Registra uma observação sobre uma referência
// @Tags         observations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateObservationRequest  true  "referência e texto"
// @Success      201  {object}  dto.ObservationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/observations [post]
func (h *ObservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateObservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	obs, err := h.svc.Create(c.Context(), in.ReferenceCode, in.Text, GetUsername(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToObservationResponse(obs))
}

// ListByReference godoc
// @Summary      Observações de uma referência
// @Tags         observations
// @Produce      json
// @Security     BearerAuth
// @Param        reference        query  string  true   "referência do produto"
// @Param        includeResolved  query  bool    false  "incluir resolvidas (padrão false)"
// @Success      200  {array}   dto.ObservationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/observations [get]
func (h *ObservationHandler) ListByReference(c *fiber.Ctx) error {
	includeResolved := c.QueryBool("includeResolved", false)
	list, err := h.svc.ListByReference(c.Context(), c.Query("reference"), includeResolved)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToObservationResponses(list))
}

// Pending godoc
// @Summary      Fila de observações abertas, da mais antiga para a mais nova
// @Tags         observations
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "máximo de itens (0 = sem limite)"
// @Success      200  {array}  dto.ObservationResponse
// @Router       /api/observations/pending [get]
func (h *ObservationHandler) Pending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	list, err := h.svc.ListUnresolved(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToObservationResponses(list))
}

// PendingCounts godoc
// @Summary      Quantidade de pendências abertas por referência
// @Tags         observations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PendingCountsRequest  true  "referências a contar"
// @Success      200  {object}  map[string]int
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/observations/pending-counts [post]
func (h *ObservationHandler) PendingCounts(c *fiber.Ctx) error {
	var in dto.PendingCountsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	counts, err := h.svc.PendingCounts(c.Context(), in.ReferenceCodes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(counts)
}

// Resolve godoc
// @Summary      Marca a observação como resolvida
// @Tags         observations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id da observação"
// @Success      204  "resolvida"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/observations/{id}/resolve [post]
func (h *ObservationHandler) Resolve(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id deve ser numérico"})
	}
	if err := h.svc.Resolve(c.Context(), id, GetUsername(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Unresolve godoc
// @Summary      Reabre uma observação resolvida por engano
// @Tags         observations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "id da observação"
// @Success      204  "reaberta"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/observations/{id}/unresolve [post]
func (h *ObservationHandler) Unresolve(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id deve ser numérico"})
	}
	if err := h.svc.Unresolve(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
