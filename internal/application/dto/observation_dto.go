package dto

import (
	"time"

	"github.com/kdu-dev/painel-api/internal/domain/entity"
)

// CreateObservationRequest nova anotação sobre uma referência de produto.
type CreateObservationRequest struct {
	ReferenceCode string `json:"referenceCode"`
	Text          string `json:"text"`
}

// PendingCountsRequest referências cujas pendências abertas devem ser contadas.
type PendingCountsRequest struct {
	ReferenceCodes []string `json:"referenceCodes"`
}

// ObservationResponse uma anotação de equipe, resolvida ou não.
type ObservationResponse struct {
	ID            int64      `json:"id"`
	ReferenceCode string     `json:"referenceCode"`
	Text          string     `json:"text"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	Resolved      bool       `json:"resolved"`
	ResolvedBy    string     `json:"resolvedBy,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
}

// ToObservationResponse converte a entidade para o corpo de resposta.
func ToObservationResponse(o *entity.Observation) ObservationResponse {
	return ObservationResponse{
		ID:            o.ID,
		ReferenceCode: o.ReferenceCode,
		Text:          o.Text,
		CreatedBy:     o.CreatedBy,
		CreatedAt:     o.CreatedAt,
		Resolved:      o.Resolved,
		ResolvedBy:    o.ResolvedBy,
		ResolvedAt:    o.ResolvedAt,
	}
}

// ToObservationResponses converte a lista preservando a ordem.
func ToObservationResponses(list []*entity.Observation) []ObservationResponse {
	out := make([]ObservationResponse, 0, len(list))
	for _, o := range list {
		out = append(out, ToObservationResponse(o))
	}
	return out
}
