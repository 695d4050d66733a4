package service

import (
	"context"
	"fmt"

	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// ReceivableService contas a receber: consulta de títulos e emissão de boleto.
type ReceivableService struct {
	client      ports.ReceivableERP
	companyCode int
	log         *logger.Logger
}

// NewReceivableService constrói o serviço de contas a receber.
func NewReceivableService(client ports.ReceivableERP, companyCode int, log *logger.Logger) *ReceivableService {
	return &ReceivableService{client: client, companyCode: companyCode, log: log}
}

// Documents busca os títulos que casam com os filtros. Exige ao menos um
// filtro de cliente ou de período para não varrer a carteira inteira.
func (s *ReceivableService) Documents(ctx context.Context, filters erp.ReceivableFilters) ([]erp.ReceivableDocument, error) {
	if len(filters.CustomerCodeList) == 0 && len(filters.CustomerCpfCnpjList) == 0 &&
		filters.StartExpiredDate == "" && filters.StartIssueDate == "" {
		return nil, fmt.Errorf("%w: informe cliente ou período", domain.ErrInvalidInput)
	}
	return s.client.ReceivableDocuments(ctx, filters)
}

// BankSlip emite o boleto das parcelas indicadas e devolve o PDF.
func (s *ReceivableService) BankSlip(ctx context.Context, customerCode int64, receivableCodes []int64) ([]byte, error) {
	if customerCode <= 0 {
		return nil, fmt.Errorf("%w: código de cliente inválido", domain.ErrInvalidInput)
	}
	if len(receivableCodes) == 0 {
		return nil, fmt.Errorf("%w: nenhuma parcela informada", domain.ErrInvalidInput)
	}

	pdf, err := s.client.BankSlip(ctx, erp.BankSlipRequest{
		BranchCode:         s.companyCode,
		CustomerCode:       customerCode,
		ReceivableCodeList: receivableCodes,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("customer", customerCode).
		Int("installments", len(receivableCodes)).
		Msg("boleto emitido")
	return pdf, nil
}
