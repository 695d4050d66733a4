package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

type fakeReceivableERP struct {
	docs       []erp.ReceivableDocument
	slip       []byte
	gotRequest erp.BankSlipRequest
}

func (f *fakeReceivableERP) ReceivableDocuments(_ context.Context, filters erp.ReceivableFilters) ([]erp.ReceivableDocument, error) {
	return f.docs, nil
}

func (f *fakeReceivableERP) BankSlip(_ context.Context, req erp.BankSlipRequest) ([]byte, error) {
	f.gotRequest = req
	if f.slip == nil {
		return nil, erp.ErrNotFound
	}
	return f.slip, nil
}

// A busca sem filtro de cliente nem período é rejeitada.
func TestDocuments_ExigeFiltro(t *testing.T) {
	s := NewReceivableService(&fakeReceivableERP{}, 1, svcLogger())

	_, err := s.Documents(context.Background(), erp.ReceivableFilters{})
	require.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDocuments_PorCliente(t *testing.T) {
	client := &fakeReceivableERP{docs: []erp.ReceivableDocument{{ReceivableCode: 1}}}
	s := NewReceivableService(client, 1, svcLogger())

	docs, err := s.Documents(context.Background(), erp.ReceivableFilters{CustomerCodeList: []int64{10}})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

// O boleto leva a filial configurada, não uma escolhida pelo chamador.
func TestBankSlip(t *testing.T) {
	client := &fakeReceivableERP{slip: []byte("%PDF-1.7")}
	s := NewReceivableService(client, 3, svcLogger())

	pdf, err := s.BankSlip(context.Background(), 10, []int64{111, 222})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 3, client.gotRequest.BranchCode)
	assert.Equal(t, int64(10), client.gotRequest.CustomerCode)
	assert.Equal(t, []int64{111, 222}, client.gotRequest.ReceivableCodeList)
}

func TestBankSlip_SemParcelas(t *testing.T) {
	s := NewReceivableService(&fakeReceivableERP{}, 1, svcLogger())

	_, err := s.BankSlip(context.Background(), 10, nil)
	require.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestBankSlip_NaoDisponivel(t *testing.T) {
	s := NewReceivableService(&fakeReceivableERP{}, 1, svcLogger())

	_, err := s.BankSlip(context.Background(), 10, []int64{1})
	require.True(t, errors.Is(err, erp.ErrNotFound))
}
