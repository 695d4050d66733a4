// Package matrix monta a grade cor×tamanho de saldos de um produto acabado.
//
// A ordem das colunas não é alfabética: tamanhos de letra seguem o rank de
// confecção (RN, BB, PP, P, M, G, GG, XG, EG, EGG), numéricos ordenam pelo
// valor, tamanhos com número à frente ("2 ANOS") pelo número, e qualquer
// tamanho fora desses esquemas vai para o fim na ordem de chegada. As linhas
// (cores) preservam a ordem de chegada do ERP, que reflete a prioridade de
// catálogo.
package matrix

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// Status de reposição de uma célula, derivado da quantidade.
const (
	StatusCritical   = "critical"
	StatusLow        = "low"
	StatusSufficient = "sufficient"
)

// lowThreshold abaixo disto (e acima de zero) a célula é marcada "low".
var lowThreshold = decimal.NewFromInt(10)

// Cell uma célula cor×tamanho. Célula sem variante cadastrada tem quantidade
// zero e ProductCode zero — a grade é sempre retangular.
type Cell struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	ProductCode int64           `json:"productCode,omitempty"`
}

// Row uma linha (cor) da grade, com o total da linha ao final.
type Row struct {
	ColorCode string          `json:"colorCode"`
	ColorName string          `json:"colorName"`
	Cells     []Cell          `json:"cells"`
	Total     decimal.Decimal `json:"total"`
}

// Matrix a grade completa com totais por linha, por coluna e geral.
type Matrix struct {
	Mode         erp.CalculationMode `json:"mode"`
	Sizes        []string            `json:"sizes"`
	Rows         []Row               `json:"rows"`
	ColumnTotals []decimal.Decimal   `json:"columnTotals"`
	GrandTotal   decimal.Decimal     `json:"grandTotal"`
}

// Build monta a grade a partir dos registros de saldo de uma referência.
// Para cada célula prevalece o registro no modo pedido; na ausência dele cai
// para o modo base — nunca trata modo ausente como zero se existe valor base.
// Lista vazia devolve grade vazia válida, não erro.
func Build(records []erp.BalanceRecord, mode erp.CalculationMode) *Matrix {
	m := &Matrix{
		Mode:         mode,
		Sizes:        []string{},
		Rows:         []Row{},
		ColumnTotals: []decimal.Decimal{},
		GrandTotal:   decimal.Zero,
	}
	if len(records) == 0 {
		return m
	}

	type cellKey struct{ color, size string }
	type colorInfo struct{ code, name string }

	var colors []colorInfo
	seenColor := map[string]bool{}
	var sizes []string
	seenSize := map[string]bool{}
	requested := map[cellKey]erp.BalanceRecord{}
	fallback := map[cellKey]erp.BalanceRecord{}

	for _, r := range records {
		if r.ColorCode == "" || r.SizeName == "" {
			continue
		}
		if !seenColor[r.ColorCode] {
			seenColor[r.ColorCode] = true
			name := r.ColorName
			if name == "" {
				name = r.ColorCode
			}
			colors = append(colors, colorInfo{code: r.ColorCode, name: name})
		}
		if !seenSize[r.SizeName] {
			seenSize[r.SizeName] = true
			sizes = append(sizes, r.SizeName)
		}
		k := cellKey{r.ColorCode, r.SizeName}
		switch r.Mode {
		case mode:
			if _, ok := requested[k]; !ok {
				requested[k] = r
			}
		case erp.ModeBase:
			if _, ok := fallback[k]; !ok {
				fallback[k] = r
			}
		}
	}

	m.Sizes = sortSizes(sizes)
	m.ColumnTotals = make([]decimal.Decimal, len(m.Sizes))
	for i := range m.ColumnTotals {
		m.ColumnTotals[i] = decimal.Zero
	}

	for _, c := range colors {
		row := Row{
			ColorCode: c.code,
			ColorName: c.name,
			Cells:     make([]Cell, len(m.Sizes)),
			Total:     decimal.Zero,
		}
		for i, size := range m.Sizes {
			cell := Cell{Quantity: decimal.Zero, Status: StatusCritical}
			rec, ok := requested[cellKey{c.code, size}]
			if !ok {
				rec, ok = fallback[cellKey{c.code, size}]
			}
			if ok {
				cell.Quantity = rec.Quantity
				cell.Status = statusFor(rec.Quantity)
				cell.ProductCode = rec.ProductCode
			}
			row.Cells[i] = cell
			row.Total = row.Total.Add(cell.Quantity)
			m.ColumnTotals[i] = m.ColumnTotals[i].Add(cell.Quantity)
		}
		m.GrandTotal = m.GrandTotal.Add(row.Total)
		m.Rows = append(m.Rows, row)
	}

	return m
}

func statusFor(qty decimal.Decimal) string {
	switch {
	case qty.Sign() <= 0:
		return StatusCritical
	case qty.LessThan(lowThreshold):
		return StatusLow
	default:
		return StatusSufficient
	}
}

// letterRank rank de confecção dos tamanhos de letra. UN/ÚNICO fecham o grupo.
var letterRank = map[string]int{
	"RN": 0, "BB": 1,
	"PP": 10, "P": 20, "M": 30, "G": 40, "GG": 50,
	"XG": 60, "EG": 70, "EGG": 80,
	"UN": 999, "UNICO": 999, "ÚNICO": 999,
}

const (
	groupLetter = iota
	groupNumeric
	groupLeadingNumber
	groupUnknown
)

type sizeKey struct {
	group int
	rank  int
	seen  int // posição de chegada, desempate do grupo desconhecido
	upper string
}

// sortSizes ordena estável: letras rankeadas, depois numéricos, depois
// número-à-frente, e por fim os não reconhecidos na ordem de chegada.
func sortSizes(sizes []string) []string {
	type entry struct {
		key sizeKey
		val string
	}
	entries := make([]entry, len(sizes))
	for i, s := range sizes {
		entries[i] = entry{key: classifySize(s, i), val: s}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		ka, kb := entries[a].key, entries[b].key
		if ka.group != kb.group {
			return ka.group < kb.group
		}
		if ka.group == groupUnknown {
			return ka.seen < kb.seen
		}
		if ka.rank != kb.rank {
			return ka.rank < kb.rank
		}
		return ka.upper < kb.upper
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.val
	}
	return out
}

func classifySize(size string, seen int) sizeKey {
	upper := strings.ToUpper(strings.TrimSpace(size))

	if rank, ok := letterRank[upper]; ok {
		return sizeKey{group: groupLetter, rank: rank, seen: seen, upper: upper}
	}

	if n, err := strconv.Atoi(upper); err == nil {
		return sizeKey{group: groupNumeric, rank: n, seen: seen, upper: upper}
	}

	// "1 ANO", "2 ANOS", "10A": número à frente ordena pelo número.
	digits := 0
	for digits < len(upper) && upper[digits] >= '0' && upper[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		if n, err := strconv.Atoi(upper[:digits]); err == nil {
			return sizeKey{group: groupLeadingNumber, rank: n, seen: seen, upper: upper}
		}
	}

	return sizeKey{group: groupUnknown, rank: 0, seen: seen, upper: upper}
}
