package service

import (
	"context"
	"fmt"

	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// InvoiceXMLSummarizer extrai os campos de conferência do XML de uma NF-e.
type InvoiceXMLSummarizer func(erp.InvoiceXML) (*erp.InvoiceXMLSummary, error)

// FiscalService notas fiscais: consulta, XML e DANFE.
type FiscalService struct {
	client    ports.FiscalERP
	summarize InvoiceXMLSummarizer
	log       *logger.Logger
}

// NewFiscalService constrói o serviço fiscal.
func NewFiscalService(client ports.FiscalERP, summarize InvoiceXMLSummarizer, log *logger.Logger) *FiscalService {
	return &FiscalService{client: client, summarize: summarize, log: log}
}

// Invoices busca as notas fiscais que casam com os filtros. Exige ao menos um
// filtro (cliente, período ou chave) para não varrer o histórico inteiro.
func (s *FiscalService) Invoices(ctx context.Context, filters erp.InvoiceFilters) ([]erp.InvoiceRecord, error) {
	if filters.StartIssueDate == "" && len(filters.CustomerCodeList) == 0 &&
		len(filters.CustomerCpfCnpjList) == 0 && len(filters.InvoiceNumberList) == 0 {
		return nil, fmt.Errorf("%w: informe cliente, período ou número de nota", domain.ErrInvalidInput)
	}
	return s.client.Invoices(ctx, filters)
}

// XMLSummary busca o XML da NF-e e devolve os campos de conferência.
func (s *FiscalService) XMLSummary(ctx context.Context, accessKey string) (*erp.InvoiceXMLSummary, error) {
	if len(accessKey) != 44 {
		return nil, fmt.Errorf("%w: chave de acesso deve ter 44 dígitos", domain.ErrInvalidInput)
	}
	xml, err := s.client.InvoiceXML(ctx, accessKey)
	if err != nil {
		return nil, err
	}
	return s.summarize(*xml)
}

// XML busca o documento completo da NF-e.
func (s *FiscalService) XML(ctx context.Context, accessKey string) (*erp.InvoiceXML, error) {
	if len(accessKey) != 44 {
		return nil, fmt.Errorf("%w: chave de acesso deve ter 44 dígitos", domain.ErrInvalidInput)
	}
	return s.client.InvoiceXML(ctx, accessKey)
}

// DanfePDF gera o DANFE em PDF da NF-e.
func (s *FiscalService) DanfePDF(ctx context.Context, accessKey string) ([]byte, error) {
	if len(accessKey) != 44 {
		return nil, fmt.Errorf("%w: chave de acesso deve ter 44 dígitos", domain.ErrInvalidInput)
	}
	return s.client.Danfe(ctx, accessKey)
}
