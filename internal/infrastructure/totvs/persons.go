package totvs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// IndividualByCode busca uma pessoa física pelo código do ERP.
func (c *Client) IndividualByCode(ctx context.Context, code int64) (*erp.PersonRecord, error) {
	return c.searchPerson(ctx, c.cfg.IndividualsEndpoint, map[string]any{"personCodeList": []int64{code}}, false)
}

// IndividualByCPF busca uma pessoa física pelo CPF (11 dígitos, sem máscara).
func (c *Client) IndividualByCPF(ctx context.Context, cpf string) (*erp.PersonRecord, error) {
	return c.searchPerson(ctx, c.cfg.IndividualsEndpoint, map[string]any{"cpfList": []string{cpf}}, false)
}

// LegalEntityByCode busca uma pessoa jurídica pelo código do ERP.
func (c *Client) LegalEntityByCode(ctx context.Context, code int64) (*erp.PersonRecord, error) {
	return c.searchPerson(ctx, c.cfg.LegalEntitiesEndpoint, map[string]any{"personCodeList": []int64{code}}, true)
}

// LegalEntityByCNPJ busca uma pessoa jurídica pelo CNPJ (14 dígitos, sem máscara).
func (c *Client) LegalEntityByCNPJ(ctx context.Context, cnpj string) (*erp.PersonRecord, error) {
	return c.searchPerson(ctx, c.cfg.LegalEntitiesEndpoint, map[string]any{"cnpjList": []string{cnpj}}, true)
}

// searchPerson faz a busca com pageSize 1: os filtros usados identificam no
// máximo uma pessoa. Nenhum resultado vira erp.ErrNotFound.
func (c *Client) searchPerson(ctx context.Context, endpoint string, filter map[string]any, legalEntity bool) (*erp.PersonRecord, error) {
	payload := map[string]any{
		"filter": filter,
		"expand": "phones,addresses,emails",
	}
	for raw, err := range c.fetcher.FetchAll(ctx, endpoint, payload, 1) {
		if err != nil {
			return nil, err
		}
		rec, decErr := erp.DecodePersonRecord(raw, legalEntity)
		if decErr != nil {
			return nil, fmt.Errorf("registro de pessoa inválido: %w", decErr)
		}
		return &rec, nil
	}
	return nil, erp.ErrNotFound
}

// CustomerStatistics busca os indicadores comerciais de um cliente.
func (c *Client) CustomerStatistics(ctx context.Context, customerCode int64) (*erp.PersonStatistics, error) {
	query := url.Values{}
	query.Set("CustomerCode", strconv.FormatInt(customerCode, 10))
	query.Set("BranchCode", strconv.Itoa(c.cfg.CompanyCode))

	raw, err := c.fetcher.Do(ctx, http.MethodGet, c.cfg.PersonStatsEndpoint, query, nil)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, erp.ErrNotFound
	}
	stats, err := erp.DecodePersonStatistics(json.RawMessage(raw))
	if err != nil {
		return nil, fmt.Errorf("estatísticas do cliente %d: %w", customerCode, err)
	}
	return &stats, nil
}
