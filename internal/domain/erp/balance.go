package erp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CalculationMode indica qual ajuste foi aplicado ao saldo bruto de uma variante.
type CalculationMode string

const (
	// ModeBase saldo físico: estoque + entradas - saídas.
	ModeBase CalculationMode = "base"
	// ModeSales saldo base descontando pedidos de venda em aberto.
	ModeSales CalculationMode = "sales"
	// ModeProduction saldo de vendas somando ordens de produção em andamento.
	ModeProduction CalculationMode = "production"
)

// ParseCalculationMode valida o modo recebido da API. Vazio assume base.
func ParseCalculationMode(s string) (CalculationMode, error) {
	switch CalculationMode(s) {
	case "":
		return ModeBase, nil
	case ModeBase, ModeSales, ModeProduction:
		return CalculationMode(s), nil
	default:
		return "", fmt.Errorf("modo de cálculo desconhecido: %q", s)
	}
}

// BalanceRecord é o saldo de uma variante (cor×tamanho) sob um único modo de
// cálculo. Criado por requisição, somente leitura.
type BalanceRecord struct {
	ProductCode   int64           `json:"productCode"`
	ProductName   string          `json:"productName"`
	ProductSKU    string          `json:"productSku"`
	ReferenceCode string          `json:"referenceCode"`
	ColorCode     string          `json:"colorCode"`
	ColorName     string          `json:"colorName"`
	SizeName      string          `json:"sizeName"`
	WarehouseCode int             `json:"warehouseCode"`
	WarehouseName string          `json:"warehouseName"`
	Mode          CalculationMode `json:"mode"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// balanceEntry é uma entrada da lista "balances" no item bruto do ERP.
type balanceEntry struct {
	BranchCode              int     `json:"branchCode"`
	StockCode               int     `json:"stockCode"`
	StockDescription        string  `json:"stockDescription"`
	Stock                   float64 `json:"stock"`
	SalesOrder              float64 `json:"salesOrder"`
	InputTransaction        float64 `json:"inputTransaction"`
	OutputTransaction       float64 `json:"outputTransaction"`
	ProductionOrderProgress float64 `json:"productionOrderProgress"`
	ProductionOrderWaitLib  float64 `json:"productionOrderWaitLib"`
}

// balanceItem é o item bruto do endpoint de saldos do ERP.
type balanceItem struct {
	ProductCode   int64          `json:"productCode"`
	ProductName   string         `json:"productName"`
	ProductSKU    string         `json:"productSku"`
	ReferenceCode string         `json:"referenceCode"`
	ColorCode     string         `json:"colorCode"`
	ColorName     string         `json:"colorName"`
	SizeName      string         `json:"sizeName"`
	Balances      []balanceEntry `json:"balances"`
}

// DecodeBalanceRecords converte um registro bruto do endpoint de saldos nos
// BalanceRecords por modo de cálculo. O ERP reporta os componentes brutos
// (estoque, pedidos, ordens); os três modos são derivados aqui:
//
//	base       = stock + inputTransaction - outputTransaction
//	sales      = base - salesOrder
//	production = sales + productionOrderProgress + productionOrderWaitLib
//
// A primeira entrada de "balances" é a vigente — o ERP devolve uma por
// depósito consultado e a busca fixa um único depósito.
func DecodeBalanceRecords(raw json.RawMessage) ([]BalanceRecord, error) {
	var it balanceItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return nil, fmt.Errorf("decodificar item de saldo: %w", err)
	}
	if it.ProductCode == 0 {
		return nil, fmt.Errorf("item de saldo sem productCode")
	}
	if it.ColorCode == "" || it.SizeName == "" {
		return nil, fmt.Errorf("item de saldo %d sem cor ou tamanho", it.ProductCode)
	}
	if len(it.Balances) == 0 {
		return nil, fmt.Errorf("item de saldo %d sem entradas de balances", it.ProductCode)
	}

	b := it.Balances[0]
	base := decimal.NewFromFloat(b.Stock).
		Add(decimal.NewFromFloat(b.InputTransaction)).
		Sub(decimal.NewFromFloat(b.OutputTransaction))
	sales := base.Sub(decimal.NewFromFloat(b.SalesOrder))
	production := sales.
		Add(decimal.NewFromFloat(b.ProductionOrderProgress)).
		Add(decimal.NewFromFloat(b.ProductionOrderWaitLib))

	mk := func(mode CalculationMode, qty decimal.Decimal) BalanceRecord {
		return BalanceRecord{
			ProductCode:   it.ProductCode,
			ProductName:   it.ProductName,
			ProductSKU:    it.ProductSKU,
			ReferenceCode: it.ReferenceCode,
			ColorCode:     it.ColorCode,
			ColorName:     it.ColorName,
			SizeName:      it.SizeName,
			WarehouseCode: b.StockCode,
			WarehouseName: b.StockDescription,
			Mode:          mode,
			Quantity:      qty,
		}
	}

	return []BalanceRecord{
		mk(ModeBase, base),
		mk(ModeSales, sales),
		mk(ModeProduction, production),
	}, nil
}
