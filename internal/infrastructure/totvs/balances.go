package totvs

import (
	"context"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// ProductBalances busca os saldos de todas as variantes (cor×tamanho) de uma
// referência de produto acabado. Registros que não decodificam são registrados
// e pulados; a chamada só falha se a busca em si falhar.
func (c *Client) ProductBalances(ctx context.Context, referenceCode string) ([]erp.BalanceRecord, error) {
	payload := map[string]any{
		"order": "colorCode,productSize",
		"filter": map[string]any{
			"branchInfo":        c.branchInfo(false),
			"referenceCodeList": []string{referenceCode},
		},
		"option": map[string]any{
			"balances": []map[string]any{{
				"branchCode":        c.cfg.CompanyCode,
				"stockCodeList":     []int{1},
				"isSalesOrder":      true,
				"isTransaction":     true,
				"isProductionOrder": true,
			}},
		},
	}
	return c.collectBalances(ctx, payload)
}

// FabricBalances busca os saldos de todos os tecidos (matéria-prima têxtil).
// Tecidos não têm pedidos de venda nem ordens de produção próprias, então só
// as transações de entrada/saída entram no cálculo.
func (c *Client) FabricBalances(ctx context.Context) ([]erp.BalanceRecord, error) {
	payload := map[string]any{
		"order": "colorCode,productSize",
		"filter": map[string]any{
			"branchInfo":      c.branchInfo(true),
			"classifications": fabricClassifications(),
		},
		"option": map[string]any{
			"balances": []map[string]any{{
				"branchCode":        c.cfg.CompanyCode,
				"stockCodeList":     []int{1},
				"isSalesOrder":      false,
				"isTransaction":     true,
				"isProductionOrder": false,
			}},
		},
	}
	return c.collectBalances(ctx, payload)
}

func (c *Client) collectBalances(ctx context.Context, payload map[string]any) ([]erp.BalanceRecord, error) {
	var records []erp.BalanceRecord
	for raw, err := range c.fetcher.FetchAll(ctx, c.cfg.BalancesEndpoint, payload, c.cfg.PageSize) {
		if err != nil {
			return nil, err
		}
		recs, decErr := erp.DecodeBalanceRecords(raw)
		if decErr != nil {
			c.log.Warn().Err(decErr).RawJSON("item", raw).Msg("item de saldo ignorado")
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}
