// Package ports declara as portas da camada de aplicação para o ERP e para
// geração de relatórios. As implementações concretas ficam em infrastructure.
package ports

import (
	"context"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/fabric"
)

// ProductERP acesso aos saldos de produto acabado.
type ProductERP interface {
	ProductBalances(ctx context.Context, referenceCode string) ([]erp.BalanceRecord, error)
}

// FabricERP acesso aos dados de tecidos (saldos, custos e cadastro).
type FabricERP interface {
	FabricBalances(ctx context.Context) ([]erp.BalanceRecord, error)
	FabricCosts(ctx context.Context) ([]erp.CostRecord, error)
	FabricDetails(ctx context.Context) ([]erp.FabricDetailRecord, error)
}

// CustomerERP acesso ao cadastro e às estatísticas de pessoas.
type CustomerERP interface {
	IndividualByCode(ctx context.Context, code int64) (*erp.PersonRecord, error)
	IndividualByCPF(ctx context.Context, cpf string) (*erp.PersonRecord, error)
	LegalEntityByCode(ctx context.Context, code int64) (*erp.PersonRecord, error)
	LegalEntityByCNPJ(ctx context.Context, cnpj string) (*erp.PersonRecord, error)
	CustomerStatistics(ctx context.Context, customerCode int64) (*erp.PersonStatistics, error)
}

// ReceivableERP acesso a contas a receber e emissão de boletos.
type ReceivableERP interface {
	ReceivableDocuments(ctx context.Context, filters erp.ReceivableFilters) ([]erp.ReceivableDocument, error)
	BankSlip(ctx context.Context, req erp.BankSlipRequest) ([]byte, error)
}

// FiscalERP acesso às notas fiscais eletrônicas.
type FiscalERP interface {
	Invoices(ctx context.Context, filters erp.InvoiceFilters) ([]erp.InvoiceRecord, error)
	InvoiceXML(ctx context.Context, accessKey string) (*erp.InvoiceXML, error)
	Danfe(ctx context.Context, accessKey string) ([]byte, error)
}

// FabricReportGenerator gera o relatório em PDF da lista de tecidos.
type FabricReportGenerator interface {
	Generate(entries []fabric.Entry) ([]byte, error)
}
