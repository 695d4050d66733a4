package matrix_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/matrix"
)

func rec(color, size string, mode erp.CalculationMode, qty float64) erp.BalanceRecord {
	return erp.BalanceRecord{
		ProductCode: 1000,
		ColorCode:   color,
		ColorName:   "Cor " + color,
		SizeName:    size,
		Mode:        mode,
		Quantity:    decimal.NewFromFloat(qty),
	}
}

// A ordem das colunas é determinística independentemente da ordem de chegada:
// letras rankeadas (PP < P < M) antes dos numéricos.
func TestBuild_OrdemDeTamanhos(t *testing.T) {
	records := []erp.BalanceRecord{
		rec("01", "M", erp.ModeSales, 5),
		rec("01", "P", erp.ModeSales, 3),
		rec("01", "PP", erp.ModeSales, 2),
		rec("01", "40", erp.ModeSales, 7),
	}

	m := matrix.Build(records, erp.ModeSales)

	assert.Equal(t, []string{"PP", "P", "M", "40"}, m.Sizes)

	// Mesma entrada embaralhada produz a mesma ordem.
	shuffled := []erp.BalanceRecord{records[3], records[0], records[2], records[1]}
	m2 := matrix.Build(shuffled, erp.ModeSales)
	assert.Equal(t, m.Sizes, m2.Sizes)
}

// Tamanhos não reconhecidos vão para depois de todos os reconhecidos, na
// ordem de chegada (estável).
func TestBuild_TamanhosNaoReconhecidosNoFim(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "ZZTOP", erp.ModeBase, 1),
		rec("01", "G", erp.ModeBase, 1),
		rec("01", "AVULSO", erp.ModeBase, 1),
		rec("01", "38", erp.ModeBase, 1),
		rec("01", "2 ANOS", erp.ModeBase, 1),
	}, erp.ModeBase)

	assert.Equal(t, []string{"G", "38", "2 ANOS", "ZZTOP", "AVULSO"}, m.Sizes)
}

// As linhas (cores) preservam a ordem de chegada do ERP, sem reordenar.
func TestBuild_OrdemDeCoresPorChegada(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("09", "M", erp.ModeBase, 1),
		rec("01", "M", erp.ModeBase, 2),
		rec("05", "M", erp.ModeBase, 3),
	}, erp.ModeBase)

	require.Len(t, m.Rows, 3)
	assert.Equal(t, "09", m.Rows[0].ColorCode)
	assert.Equal(t, "01", m.Rows[1].ColorCode)
	assert.Equal(t, "05", m.Rows[2].ColorCode)
}

// Célula sem registro no modo pedido cai para o valor base; célula sem
// variante alguma vale zero e a grade continua retangular.
func TestBuild_FallbackParaBase(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "P", erp.ModeSales, 4),
		rec("01", "M", erp.ModeBase, 9), // sem registro "sales" para esta célula
		rec("02", "P", erp.ModeSales, 1),
	}, erp.ModeSales)

	require.Equal(t, []string{"P", "M"}, m.Sizes)
	require.Len(t, m.Rows, 2)

	// linha 01: P=4 (sales), M=9 (fallback base)
	assert.True(t, m.Rows[0].Cells[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, m.Rows[0].Cells[1].Quantity.Equal(decimal.NewFromInt(9)))

	// linha 02: M não tem variante -> zero explícito
	assert.True(t, m.Rows[1].Cells[1].Quantity.IsZero())
	assert.Equal(t, matrix.StatusCritical, m.Rows[1].Cells[1].Status)

	// todas as linhas têm o mesmo número de células
	for _, row := range m.Rows {
		assert.Len(t, row.Cells, len(m.Sizes))
	}
}

// A soma das células emitidas é igual à soma das quantidades de entrada do
// modo pedido (com fallback para base onde o modo falta).
func TestBuild_Totais(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "P", erp.ModeSales, 4),
		rec("01", "M", erp.ModeSales, 6),
		rec("02", "P", erp.ModeSales, 10),
	}, erp.ModeSales)

	require.Len(t, m.Rows, 2)
	assert.True(t, m.Rows[0].Total.Equal(decimal.NewFromInt(10)), "total da linha 01")
	assert.True(t, m.Rows[1].Total.Equal(decimal.NewFromInt(10)), "total da linha 02")

	require.Len(t, m.ColumnTotals, 2)
	assert.True(t, m.ColumnTotals[0].Equal(decimal.NewFromInt(14)), "total da coluna P")
	assert.True(t, m.ColumnTotals[1].Equal(decimal.NewFromInt(6)), "total da coluna M")

	assert.True(t, m.GrandTotal.Equal(decimal.NewFromInt(20)))
}

// Quantidades fracionárias (tecidos em metros) somam sem erro de ponto
// flutuante.
func TestBuild_QuantidadeFracionaria(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "UN", erp.ModeBase, 0.1),
		rec("02", "UN", erp.ModeBase, 0.2),
	}, erp.ModeBase)

	assert.True(t, m.GrandTotal.Equal(decimal.NewFromFloat(0.3)))
}

// Lista vazia devolve grade vazia válida, não erro.
func TestBuild_Vazio(t *testing.T) {
	m := matrix.Build(nil, erp.ModeBase)

	require.NotNil(t, m)
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.Sizes)
	assert.True(t, m.GrandTotal.IsZero())
}

// O registro no modo pedido prevalece sobre o base quando ambos existem.
func TestBuild_ModoPedidoPrevalece(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "M", erp.ModeBase, 100),
		rec("01", "M", erp.ModeSales, 60),
	}, erp.ModeSales)

	require.Len(t, m.Rows, 1)
	assert.True(t, m.Rows[0].Cells[0].Quantity.Equal(decimal.NewFromInt(60)))
}

func TestStatusDaCelula(t *testing.T) {
	m := matrix.Build([]erp.BalanceRecord{
		rec("01", "P", erp.ModeBase, -2),
		rec("01", "M", erp.ModeBase, 5),
		rec("01", "G", erp.ModeBase, 50),
	}, erp.ModeBase)

	require.Len(t, m.Rows, 1)
	assert.Equal(t, matrix.StatusCritical, m.Rows[0].Cells[0].Status)
	assert.Equal(t, matrix.StatusLow, m.Rows[0].Cells[1].Status)
	assert.Equal(t, matrix.StatusSufficient, m.Rows[0].Cells[2].Status)
}
