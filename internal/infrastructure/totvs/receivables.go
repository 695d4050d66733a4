package totvs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// ReceivableDocuments busca os títulos de contas a receber que casam com os
// filtros informados, na ordem devolvida pelo ERP.
func (c *Client) ReceivableDocuments(ctx context.Context, filters erp.ReceivableFilters) ([]erp.ReceivableDocument, error) {
	payload := map[string]any{
		"order":  "expiredDate",
		"filter": filters,
	}

	var docs []erp.ReceivableDocument
	for raw, err := range c.fetcher.FetchAll(ctx, c.cfg.ReceivableDocumentsEndpoint, payload, c.cfg.PageSize) {
		if err != nil {
			return nil, err
		}
		doc, decErr := erp.DecodeReceivableDocument(raw)
		if decErr != nil {
			c.log.Warn().Err(decErr).RawJSON("item", raw).Msg("título ignorado")
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

type bankSlipResponse struct {
	Content string `json:"content"`
}

// BankSlip pede ao ERP a emissão do boleto das parcelas indicadas e devolve o
// PDF já decodificado.
func (c *Client) BankSlip(ctx context.Context, req erp.BankSlipRequest) ([]byte, error) {
	raw, err := c.fetcher.Do(ctx, http.MethodPost, c.cfg.ReceivableBankSlipEndpoint, nil, req)
	if err != nil {
		return nil, err
	}

	var resp bankSlipResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("deserializar resposta do boleto: %w", err)
	}
	if resp.Content == "" {
		// O ERP pode responder 200 com content vazio quando as parcelas não
		// comportam boleto (já pagas, tipo de cobrança sem registro).
		return nil, fmt.Errorf("boleto: %w", erp.ErrNotFound)
	}

	pdf, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("decodificar PDF do boleto: %w", err)
	}
	return pdf, nil
}
