// Package service orquestra as buscas no ERP e a montagem das estruturas de
// apresentação do painel.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kdu-dev/painel-api/internal/application/dto"
	"github.com/kdu-dev/painel-api/internal/application/ports"
	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/matrix"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// ProductService consulta de saldos de produto acabado.
type ProductService struct {
	client ports.ProductERP
	log    *logger.Logger
}

// NewProductService constrói o serviço de produtos.
func NewProductService(client ports.ProductERP, log *logger.Logger) *ProductService {
	return &ProductService{client: client, log: log}
}

// BalanceMatrix busca os saldos de uma referência e monta a grade
// cor×tamanho no modo de cálculo pedido, devolvendo também os registros de
// variante usados na montagem. Referência sem nenhum registro de saldo
// devolve domain.ErrNotFound.
func (s *ProductService) BalanceMatrix(ctx context.Context, referenceCode, modeStr string) (*dto.BalanceMatrixResponse, error) {
	referenceCode = strings.TrimSpace(referenceCode)
	if referenceCode == "" {
		return nil, fmt.Errorf("%w: referência vazia", domain.ErrInvalidInput)
	}
	mode, err := erp.ParseCalculationMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	records, err := s.client.ProductBalances(ctx, referenceCode)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("referência %s: %w", referenceCode, domain.ErrNotFound)
	}

	s.log.Debug().
		Str("reference", referenceCode).
		Str("mode", string(mode)).
		Int("records", len(records)).
		Msg("grade de saldos montada")
	return &dto.BalanceMatrixResponse{
		ReferenceCode: referenceCode,
		Matrix:        matrix.Build(records, mode),
		Records:       records,
	}, nil
}
