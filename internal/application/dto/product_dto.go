package dto

import (
	"github.com/kdu-dev/painel-api/internal/domain/erp"
	"github.com/kdu-dev/painel-api/internal/domain/matrix"
)

// BalanceMatrixResponse grade cor × tamanho de uma referência mais os
// registros de variante usados na montagem, para quem precisa do detalhe
// por depósito e por modo.
type BalanceMatrixResponse struct {
	ReferenceCode string              `json:"referenceCode"`
	Matrix        *matrix.Matrix      `json:"matrix"`
	Records       []erp.BalanceRecord `json:"records"`
}
