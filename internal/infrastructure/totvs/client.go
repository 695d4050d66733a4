package totvs

import (
	"github.com/kdu-dev/painel-api/pkg/config"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// Client agrupa os acessos por recurso do ERP sobre um TokenManager e um
// Fetcher compartilhados. Uma instância por processo.
type Client struct {
	cfg     config.ERPConfig
	fetcher *Fetcher
	log     *logger.Logger
}

// NewClient constrói o cliente completo do ERP.
func NewClient(cfg config.ERPConfig, log *logger.Logger) *Client {
	tokens := NewTokenManager(cfg, log)
	return &Client{
		cfg:     cfg,
		fetcher: NewFetcher(cfg, tokens, log),
		log:     log,
	}
}

// NewClientWithFetcher injeta um fetcher pronto (testes).
func NewClientWithFetcher(cfg config.ERPConfig, fetcher *Fetcher, log *logger.Logger) *Client {
	return &Client{cfg: cfg, fetcher: fetcher, log: log}
}

// branchInfo monta o bloco branchInfo comum às buscas de produto.
func (c *Client) branchInfo(rawMaterial bool) map[string]any {
	return map[string]any{
		"branchCode":        c.cfg.CompanyCode,
		"isActive":          true,
		"isFinishedProduct": !rawMaterial,
		"isRawMaterial":     rawMaterial,
		"isBulkMaterial":    false,
		"isOwnProduction":   !rawMaterial,
	}
}

// fabricClassifications classificações que identificam tecidos (matéria-prima
// têxtil) no cadastro: tipo 4000 = matéria-prima, 4001 = subtipos de tecido.
func fabricClassifications() []map[string]any {
	return []map[string]any{
		{"type": 4000, "codeList": []string{"001"}},
		{"type": 4001, "codeList": []string{"001", "002", "003"}},
	}
}
