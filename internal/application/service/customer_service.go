package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// CustomerService painel do cliente: cadastro e indicadores comerciais.
type CustomerService struct {
	client ports.CustomerERP
	log    *logger.Logger
}

// NewCustomerService constrói o serviço de clientes.
func NewCustomerService(client ports.CustomerERP, log *logger.Logger) *CustomerService {
	return &CustomerService{client: client, log: log}
}

// Details busca o cadastro de uma pessoa pelo identificador informado:
// 11 dígitos é CPF, 14 é CNPJ, qualquer outro número é código do ERP (tenta
// pessoa física e depois jurídica).
func (s *CustomerService) Details(ctx context.Context, identifier string) (*erp.PersonRecord, error) {
	digits := onlyDigits(identifier)
	if digits == "" {
		return nil, fmt.Errorf("%w: identificador vazio", domain.ErrInvalidInput)
	}

	switch len(digits) {
	case 11:
		return s.client.IndividualByCPF(ctx, digits)
	case 14:
		return s.client.LegalEntityByCNPJ(ctx, digits)
	}

	code, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: identificador %q", domain.ErrInvalidInput, identifier)
	}
	person, err := s.client.IndividualByCode(ctx, code)
	if err == nil {
		return person, nil
	}
	if !errors.Is(err, erp.ErrNotFound) {
		return nil, err
	}
	return s.client.LegalEntityByCode(ctx, code)
}

// Statistics busca os indicadores comerciais de um cliente pelo código.
func (s *CustomerService) Statistics(ctx context.Context, customerCode int64) (*erp.PersonStatistics, error) {
	if customerCode <= 0 {
		return nil, fmt.Errorf("%w: código de cliente inválido", domain.ErrInvalidInput)
	}
	return s.client.CustomerStatistics(ctx, customerCode)
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
