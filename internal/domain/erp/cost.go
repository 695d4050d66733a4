package erp

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CostRecord custo unitário de um produto, tal como reportado pelo ERP.
type CostRecord struct {
	ProductCode   int64           `json:"productCode"`
	ProductName   string          `json:"productName"`
	ReferenceCode string          `json:"referenceCode"`
	CostCode      int             `json:"costCode"`
	CostName      string          `json:"costName"`
	Cost          decimal.Decimal `json:"cost"`
}

type costEntry struct {
	BranchCode int     `json:"branchCode"`
	CostCode   int     `json:"costCode"`
	CostName   string  `json:"costName"`
	Cost       float64 `json:"cost"`
}

type costItem struct {
	ProductCode   int64       `json:"productCode"`
	ProductName   string      `json:"productName"`
	ReferenceCode string      `json:"referenceCode"`
	Costs         []costEntry `json:"costs"`
}

// DecodeCostRecord converte um registro bruto do endpoint de custos.
// O custo vigente é a primeira entrada de "costs" (a busca fixa um único
// costCode, então a lista tem no máximo uma entrada útil).
func DecodeCostRecord(raw json.RawMessage) (CostRecord, error) {
	var it costItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return CostRecord{}, fmt.Errorf("decodificar item de custo: %w", err)
	}
	if it.ProductCode == 0 {
		return CostRecord{}, fmt.Errorf("item de custo sem productCode")
	}
	rec := CostRecord{
		ProductCode:   it.ProductCode,
		ProductName:   it.ProductName,
		ReferenceCode: it.ReferenceCode,
	}
	if len(it.Costs) > 0 {
		c := it.Costs[0]
		rec.CostCode = c.CostCode
		rec.CostName = c.CostName
		rec.Cost = decimal.NewFromFloat(c.Cost)
	}
	return rec, nil
}
