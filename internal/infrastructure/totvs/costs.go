package totvs

import (
	"context"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// FabricCosts busca o custo de reposição (costCode 2) de todos os tecidos.
func (c *Client) FabricCosts(ctx context.Context) ([]erp.CostRecord, error) {
	payload := map[string]any{
		"order": "productCode",
		"filter": map[string]any{
			"branchInfo":      c.branchInfo(true),
			"classifications": fabricClassifications(),
		},
		"option": map[string]any{
			"costs": []map[string]any{{
				"branchCode":   c.cfg.CompanyCode,
				"costCodeList": []int{2},
			}},
		},
	}

	var records []erp.CostRecord
	for raw, err := range c.fetcher.FetchAll(ctx, c.cfg.CostsEndpoint, payload, c.cfg.PageSize) {
		if err != nil {
			return nil, err
		}
		rec, decErr := erp.DecodeCostRecord(raw)
		if decErr != nil {
			c.log.Warn().Err(decErr).RawJSON("item", raw).Msg("item de custo ignorado")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
