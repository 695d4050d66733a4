package erp

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Códigos dos campos adicionais de tecido no cadastro de produto do ERP.
const (
	fieldWidth     = 1 // Largura (m)
	fieldGrammage  = 2 // Gramatura (g/m²)
	fieldShrinkage = 3 // Encolhimento (%)
)

// FabricDetailRecord atributos físicos de um tecido vindos do cadastro de
// produto. Campos não informados no ERP ficam nil. Atributos fora dos códigos
// conhecidos são preservados em Attributes (o conjunto varia por família de
// produto).
type FabricDetailRecord struct {
	ProductCode int64             `json:"productCode"`
	ProductName string            `json:"productName"`
	Width       *decimal.Decimal  `json:"width,omitempty"`
	Grammage    *decimal.Decimal  `json:"grammage,omitempty"`
	Shrinkage   *decimal.Decimal  `json:"shrinkage,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

type additionalField struct {
	Code  int             `json:"code"`
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

type productItem struct {
	ProductCode      int64             `json:"productCode"`
	ProductName      string            `json:"productName"`
	AdditionalFields []additionalField `json:"additionalFields"`
}

// DecodeFabricDetailRecord converte um registro bruto do endpoint de produtos,
// extraindo largura/gramatura/encolhimento dos additionalFields e preservando
// os demais campos como texto.
func DecodeFabricDetailRecord(raw json.RawMessage) (FabricDetailRecord, error) {
	var it productItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return FabricDetailRecord{}, fmt.Errorf("decodificar item de produto: %w", err)
	}
	if it.ProductCode == 0 {
		return FabricDetailRecord{}, fmt.Errorf("item de produto sem productCode")
	}

	rec := FabricDetailRecord{
		ProductCode: it.ProductCode,
		ProductName: it.ProductName,
	}
	for _, f := range it.AdditionalFields {
		text, ok := fieldValueText(f.Value)
		if !ok {
			continue
		}
		switch f.Code {
		case fieldWidth, fieldGrammage, fieldShrinkage:
			d, err := parseDecimalBR(text)
			if err != nil {
				// Valor não numérico num campo numérico: ignora o campo, não o item.
				continue
			}
			switch f.Code {
			case fieldWidth:
				rec.Width = &d
			case fieldGrammage:
				rec.Grammage = &d
			case fieldShrinkage:
				rec.Shrinkage = &d
			}
		default:
			if f.Name != "" {
				if rec.Attributes == nil {
					rec.Attributes = make(map[string]string)
				}
				rec.Attributes[f.Name] = text
			}
		}
	}
	return rec, nil
}

// fieldValueText normaliza o value do campo adicional, que o ERP devolve ora
// como string ora como número.
func fieldValueText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

// parseDecimalBR aceita tanto "1.40" quanto "1,40" (o ERP mistura os formatos
// em campos adicionais preenchidos à mão).
func parseDecimalBR(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
