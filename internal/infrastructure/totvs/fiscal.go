package totvs

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// Invoices busca as notas fiscais que casam com os filtros. O endpoint fiscal
// do TOTVS rejeita pageSize acima de 100, por isso a paginação usa
// FiscalPageSize e não o PageSize geral.
func (c *Client) Invoices(ctx context.Context, filters erp.InvoiceFilters) ([]erp.InvoiceRecord, error) {
	payload := map[string]any{
		"order":  "-issueDate",
		"filter": filters,
		"option": map[string]any{
			"branchCodeList": []int{c.cfg.CompanyCode},
		},
	}

	var invoices []erp.InvoiceRecord
	for raw, err := range c.fetcher.FetchAll(ctx, c.cfg.FiscalInvoicesEndpoint, payload, c.cfg.FiscalPageSize) {
		if err != nil {
			return nil, err
		}
		inv, decErr := erp.DecodeInvoiceRecord(raw)
		if decErr != nil {
			c.log.Warn().Err(decErr).RawJSON("item", raw).Msg("nota fiscal ignorada")
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

type invoiceXMLResponse struct {
	ProcessingType   string `json:"processingType"`
	MainInvoiceXML   string `json:"mainInvoiceXml"`
	CancelInvoiceXML string `json:"cancelInvoiceXml"`
}

// InvoiceXML busca o XML da NF-e pela chave de acesso. O ERP devolve o
// documento em base64; aqui ele já sai decodificado em UTF-8.
func (c *Client) InvoiceXML(ctx context.Context, accessKey string) (*erp.InvoiceXML, error) {
	raw, err := c.fetcher.Do(ctx, http.MethodGet, c.cfg.FiscalXMLEndpoint+"/"+accessKey, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp invoiceXMLResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("deserializar resposta do XML: %w", err)
	}
	if resp.MainInvoiceXML == "" {
		return nil, fmt.Errorf("xml da nota %s: %w", accessKey, erp.ErrNotFound)
	}

	content, err := base64.StdEncoding.DecodeString(resp.MainInvoiceXML)
	if err != nil {
		return nil, fmt.Errorf("decodificar XML da nota %s: %w", accessKey, err)
	}
	return &erp.InvoiceXML{AccessKey: accessKey, Content: string(content)}, nil
}

type danfeResponse struct {
	DanfePDFBase64 string `json:"danfePdfBase64"`
}

// Danfe gera o DANFE em PDF de uma NF-e: busca o XML pela chave de acesso e
// envia ao endpoint de geração, devolvendo o PDF decodificado.
func (c *Client) Danfe(ctx context.Context, accessKey string) ([]byte, error) {
	xmlRaw, err := c.fetcher.Do(ctx, http.MethodGet, c.cfg.FiscalXMLEndpoint+"/"+accessKey, nil, nil)
	if err != nil {
		return nil, err
	}
	var xmlResp invoiceXMLResponse
	if err := json.Unmarshal(xmlRaw, &xmlResp); err != nil {
		return nil, fmt.Errorf("deserializar resposta do XML: %w", err)
	}
	if xmlResp.MainInvoiceXML == "" {
		return nil, fmt.Errorf("xml da nota %s: %w", accessKey, erp.ErrNotFound)
	}

	// O endpoint de DANFE espera o XML ainda em base64, tal como veio.
	payload := map[string]any{"mainInvoiceXml": xmlResp.MainInvoiceXML}
	raw, err := c.fetcher.Do(ctx, http.MethodPost, c.cfg.FiscalDanfeEndpoint, nil, payload)
	if err != nil {
		return nil, err
	}

	var resp danfeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("deserializar resposta do DANFE: %w", err)
	}
	if resp.DanfePDFBase64 == "" {
		return nil, fmt.Errorf("danfe da nota %s: %w", accessKey, erp.ErrNotFound)
	}

	pdf, err := base64.StdEncoding.DecodeString(resp.DanfePDFBase64)
	if err != nil {
		return nil, fmt.Errorf("decodificar PDF do DANFE: %w", err)
	}
	return pdf, nil
}
