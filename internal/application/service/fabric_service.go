package service

import (
	"context"
	"sync"

	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/fabric"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// FabricService lista consolidada de tecidos (saldo ⟕ custo ⟕ cadastro).
type FabricService struct {
	client ports.FabricERP
	report ports.FabricReportGenerator
	log    *logger.Logger
}

// NewFabricService constrói o serviço de tecidos.
func NewFabricService(client ports.FabricERP, report ports.FabricReportGenerator, log *logger.Logger) *FabricService {
	return &FabricService{client: client, report: report, log: log}
}

// List busca saldos, custos e cadastro em paralelo, junta por código de
// produto e aplica o filtro de texto (vazio devolve tudo). Tecidos usam o
// saldo base: matéria-prima não tem pedidos de venda nem ordens próprias.
func (s *FabricService) List(ctx context.Context, filterText string) ([]fabric.Entry, error) {
	var (
		wg       sync.WaitGroup
		balances []erp.BalanceRecord
		costs    []erp.CostRecord
		details  []erp.FabricDetailRecord
		errBal   error
		errCost  error
		errDet   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		balances, errBal = s.client.FabricBalances(ctx)
	}()
	go func() {
		defer wg.Done()
		costs, errCost = s.client.FabricCosts(ctx)
	}()
	go func() {
		defer wg.Done()
		details, errDet = s.client.FabricDetails(ctx)
	}()
	wg.Wait()

	for _, err := range []error{errBal, errCost, errDet} {
		if err != nil {
			return nil, err
		}
	}

	list := fabric.Build(balances, costs, details, erp.ModeBase)
	s.log.Debug().
		Int("fabrics", len(list)).
		Str("filter", filterText).
		Msg("lista de tecidos montada")
	return fabric.Filter(list, filterText), nil
}

// ReportPDF gera o relatório em PDF da lista filtrada.
func (s *FabricService) ReportPDF(ctx context.Context, filterText string) ([]byte, error) {
	list, err := s.List(ctx, filterText)
	if err != nil {
		return nil, err
	}
	return s.report.Generate(list)
}
