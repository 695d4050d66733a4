// Package fabric consolida saldo, custo e atributos físicos dos tecidos em
// uma lista única para o painel de matéria-prima.
package fabric

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// Entry uma linha da lista de tecidos: o saldo agregado do produto mais o
// custo e os atributos físicos quando cadastrados. Campos de junção ausentes
// ficam nil — tecido com saldo mas sem custo ou sem cadastro ainda aparece.
type Entry struct {
	ProductCode int64             `json:"productCode"`
	ProductName string            `json:"productName"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitCost    *decimal.Decimal  `json:"unitCost,omitempty"`
	TotalCost   *decimal.Decimal  `json:"totalCost,omitempty"`
	Width       *decimal.Decimal  `json:"width,omitempty"`
	Grammage    *decimal.Decimal  `json:"grammage,omitempty"`
	Shrinkage   *decimal.Decimal  `json:"shrinkage,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Build junta saldos, custos e cadastro por código de produto. A junção é
// externa à esquerda ancorada nos saldos: todo produto com registro de saldo
// no modo pedido vira uma entrada, mesmo sem par em custos ou cadastro.
// Saldos do mesmo produto (vários depósitos) são somados. A ordem das
// entradas é a ordem de chegada dos saldos.
func Build(balances []erp.BalanceRecord, costs []erp.CostRecord, details []erp.FabricDetailRecord, mode erp.CalculationMode) []Entry {
	costByCode := make(map[int64]erp.CostRecord, len(costs))
	for _, c := range costs {
		if _, ok := costByCode[c.ProductCode]; !ok {
			costByCode[c.ProductCode] = c
		}
	}
	detailByCode := make(map[int64]erp.FabricDetailRecord, len(details))
	for _, d := range details {
		if _, ok := detailByCode[d.ProductCode]; !ok {
			detailByCode[d.ProductCode] = d
		}
	}

	index := map[int64]int{}
	entries := []Entry{}

	for _, b := range balances {
		if b.Mode != mode {
			continue
		}
		i, ok := index[b.ProductCode]
		if !ok {
			e := Entry{
				ProductCode: b.ProductCode,
				ProductName: b.ProductName,
				Quantity:    decimal.Zero,
			}
			if c, ok := costByCode[b.ProductCode]; ok {
				cost := c.Cost
				e.UnitCost = &cost
				if e.ProductName == "" {
					e.ProductName = c.ProductName
				}
			}
			if d, ok := detailByCode[b.ProductCode]; ok {
				e.Width = d.Width
				e.Grammage = d.Grammage
				e.Shrinkage = d.Shrinkage
				e.Attributes = d.Attributes
				if e.ProductName == "" {
					e.ProductName = d.ProductName
				}
			}
			entries = append(entries, e)
			i = len(entries) - 1
			index[b.ProductCode] = i
		}
		entries[i].Quantity = entries[i].Quantity.Add(b.Quantity)
	}

	for i := range entries {
		if entries[i].UnitCost != nil {
			total := entries[i].Quantity.Mul(*entries[i].UnitCost)
			entries[i].TotalCost = &total
		}
	}
	return entries
}

// Filter devolve as entradas cujo código, nome ou atributos textuais contêm
// o texto buscado. A comparação ignora caixa e acentos ("ALGODÃO" casa com
// "algodao") e a ordem relativa das sobreviventes é preservada. Texto vazio
// devolve a lista inalterada.
func Filter(entries []Entry, searchText string) []Entry {
	needle := normalizeSearch(searchText)
	if needle == "" {
		return entries
	}
	out := []Entry{}
	for _, e := range entries {
		if entryMatches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func entryMatches(e Entry, needle string) bool {
	if strings.Contains(normalizeSearch(strconv.FormatInt(e.ProductCode, 10)), needle) {
		return true
	}
	if strings.Contains(normalizeSearch(e.ProductName), needle) {
		return true
	}
	for name, value := range e.Attributes {
		if strings.Contains(normalizeSearch(name), needle) ||
			strings.Contains(normalizeSearch(value), needle) {
			return true
		}
	}
	return false
}

// normalizeSearch minúsculas sem marcas diacríticas, para busca tolerante a
// acentuação.
func normalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.ToLower(strings.TrimSpace(plain))
}
