// Package pdf gera o relatório impresso da lista de tecidos.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + data de emissão (+ filtro aplicado)        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Código | Tecido | Largura | Gram. | Encolh. |       │
//	│          Saldo | Custo Unit. | Custo Total                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: totais de saldo e de custo                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain/fabric"
)

var _ ports.FabricReportGenerator = (*FabricReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// FabricReportGenerator implementa ports.FabricReportGenerator com Maroto v2.
type FabricReportGenerator struct {
	companyName string
	now         func() time.Time
}

// NewFabricReportGenerator constrói o gerador. companyName sai no cabeçalho.
func NewFabricReportGenerator(companyName string) *FabricReportGenerator {
	return &FabricReportGenerator{companyName: companyName, now: time.Now}
}

// Generate gera o PDF da lista e devolve os bytes.
func (g *FabricReportGenerator) Generate(entries []fabric.Entry) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Relatório de Tecidos", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, e := range entries {
		m.AddRows(entryRow(e))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *FabricReportGenerator) headerRow() core.Row {
	emitted := g.now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE TECIDOS", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(g.companyName, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Emitido em "+emitted, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Código", 1, align.Left),
		h("Tecido", 4, align.Left),
		h("Larg.", 1, align.Right),
		h("Gram.", 1, align.Right),
		h("Encolh.", 1, align.Right),
		h("Saldo", 1, align.Right),
		h("Custo Unit.", 1, align.Right),
		h("Custo Total", 2, align.Right),
	)
}

func entryRow(e fabric.Entry) core.Row {
	c := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		c(fmt.Sprintf("%d", e.ProductCode), 1, align.Left),
		c(e.ProductName, 4, align.Left),
		c(decimalOrDash(e.Width), 1, align.Right),
		c(decimalOrDash(e.Grammage), 1, align.Right),
		c(decimalOrDash(e.Shrinkage), 1, align.Right),
		c(e.Quantity.StringFixed(2), 1, align.Right),
		c(decimalOrDash(e.UnitCost), 1, align.Right),
		c(decimalOrDash(e.TotalCost), 2, align.Right),
	)
}

func totalsRow(entries []fabric.Entry) core.Row {
	totalQty := decimal.Zero
	totalCost := decimal.Zero
	for _, e := range entries {
		totalQty = totalQty.Add(e.Quantity)
		if e.TotalCost != nil {
			totalCost = totalCost.Add(*e.TotalCost)
		}
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("%d tecidos", len(entries)), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		})),
		col.New(4).Add(
			text.New("Saldo total: "+totalQty.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Custo total: R$ "+totalCost.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 5,
			}),
		),
	)
}

func decimalOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return d.StringFixed(2)
}
