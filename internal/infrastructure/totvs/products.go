package totvs

import (
	"context"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// FabricDetails busca os atributos físicos dos tecidos no cadastro de produto
// (campos adicionais 1=largura, 2=gramatura, 3=encolhimento).
func (c *Client) FabricDetails(ctx context.Context) ([]erp.FabricDetailRecord, error) {
	payload := map[string]any{
		"order":  "productCode",
		"expand": "additionalFields",
		"filter": map[string]any{
			"branchInfo":      c.branchInfo(true),
			"classifications": fabricClassifications(),
		},
		"option": map[string]any{
			"additionalFields": []map[string]any{{
				"codeList": []int{1, 2, 3},
			}},
			"branchInfoCode": c.cfg.CompanyCode,
		},
	}

	var records []erp.FabricDetailRecord
	for raw, err := range c.fetcher.FetchAll(ctx, c.cfg.ProductsEndpoint, payload, c.cfg.PageSize) {
		if err != nil {
			return nil, err
		}
		rec, decErr := erp.DecodeFabricDetailRecord(raw)
		if decErr != nil {
			c.log.Warn().Err(decErr).RawJSON("item", raw).Msg("item de produto ignorado")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
