package fabric_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/fabric"
)

func balance(code int64, name string, mode erp.CalculationMode, qty float64) erp.BalanceRecord {
	return erp.BalanceRecord{
		ProductCode: code,
		ProductName: name,
		ColorCode:   "01",
		SizeName:    "UN",
		Mode:        mode,
		Quantity:    decimal.NewFromFloat(qty),
	}
}

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// Junção externa à esquerda ancorada nos saldos: tecido com custo mas sem
// cadastro (e vice-versa) aparece com o lado ausente nil.
func TestBuild_JuncaoExterna(t *testing.T) {
	balances := []erp.BalanceRecord{
		balance(100, "TECIDO A", erp.ModeSales, 50),
		balance(200, "TECIDO B", erp.ModeSales, 30),
	}
	costs := []erp.CostRecord{
		{ProductCode: 100, ProductName: "TECIDO A", Cost: decimal.NewFromFloat(12.5)},
	}
	details := []erp.FabricDetailRecord{
		{ProductCode: 200, ProductName: "TECIDO B", Width: dec(1.4), Grammage: dec(180)},
	}

	list := fabric.Build(balances, costs, details, erp.ModeSales)

	require.Len(t, list, 2)

	a := list[0]
	assert.Equal(t, int64(100), a.ProductCode)
	require.NotNil(t, a.UnitCost)
	assert.True(t, a.UnitCost.Equal(decimal.NewFromFloat(12.5)))
	assert.Nil(t, a.Width, "tecido A não tem cadastro")
	assert.Nil(t, a.Grammage)

	b := list[1]
	assert.Equal(t, int64(200), b.ProductCode)
	assert.Nil(t, b.UnitCost, "tecido B não tem custo")
	assert.Nil(t, b.TotalCost)
	require.NotNil(t, b.Width)
	assert.True(t, b.Width.Equal(decimal.NewFromFloat(1.4)))
}

// Saldos do mesmo produto em depósitos distintos somam numa única entrada, e
// o custo total acompanha a soma.
func TestBuild_SomaSaldosDoMesmoProduto(t *testing.T) {
	balances := []erp.BalanceRecord{
		balance(100, "TECIDO A", erp.ModeBase, 10.5),
		balance(100, "TECIDO A", erp.ModeBase, 4.5),
	}
	costs := []erp.CostRecord{
		{ProductCode: 100, Cost: decimal.NewFromInt(2)},
	}

	list := fabric.Build(balances, costs, nil, erp.ModeBase)

	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(15)))
	require.NotNil(t, list[0].TotalCost)
	assert.True(t, list[0].TotalCost.Equal(decimal.NewFromInt(30)))
}

// Registros de outro modo de cálculo não entram na lista.
func TestBuild_IgnoraOutrosModos(t *testing.T) {
	balances := []erp.BalanceRecord{
		balance(100, "TECIDO A", erp.ModeBase, 99),
		balance(100, "TECIDO A", erp.ModeSales, 7),
	}

	list := fabric.Build(balances, nil, nil, erp.ModeSales)

	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(7)))
}

func TestBuild_Vazio(t *testing.T) {
	list := fabric.Build(nil, nil, nil, erp.ModeBase)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

// O filtro ignora caixa e acentos e preserva a ordem relativa.
func TestFilter_CaixaEAcentos(t *testing.T) {
	list := []fabric.Entry{
		{ProductCode: 1, ProductName: "MALHA ALGODÃO AZUL"},
		{ProductCode: 2, ProductName: "VISCOSE ESTAMPADA"},
		{ProductCode: 3, ProductName: "algodão cru"},
	}

	out := fabric.Filter(list, "ALGODAO")

	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ProductCode)
	assert.Equal(t, int64(3), out[1].ProductCode)
}

// Filtrar uma lista já filtrada com o mesmo texto devolve o mesmo resultado.
func TestFilter_Idempotente(t *testing.T) {
	list := []fabric.Entry{
		{ProductCode: 1, ProductName: "MALHA AZUL"},
		{ProductCode: 2, ProductName: "VISCOSE"},
		{ProductCode: 3, ProductName: "AZULEJO"},
	}

	once := fabric.Filter(list, "azul")
	twice := fabric.Filter(once, "azul")

	assert.Equal(t, once, twice)
}

// O filtro também casa com código do produto e com atributos textuais.
func TestFilter_CodigoEAtributos(t *testing.T) {
	list := []fabric.Entry{
		{ProductCode: 4321, ProductName: "TECIDO X"},
		{ProductCode: 9, ProductName: "TECIDO Y", Attributes: map[string]string{"Composição": "97% algodão 3% elastano"}},
	}

	assert.Len(t, fabric.Filter(list, "432"), 1)
	assert.Len(t, fabric.Filter(list, "elastano"), 1)
	assert.Len(t, fabric.Filter(list, "composicao"), 1)
}

func TestFilter_TextoVazioNaoFiltra(t *testing.T) {
	list := []fabric.Entry{{ProductCode: 1}, {ProductCode: 2}}
	assert.Equal(t, list, fabric.Filter(list, "  "))
}
