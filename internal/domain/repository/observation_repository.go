package repository

import (
	"context"

	"github.com/kdu-dev/painel-api/internal/domain/entity"
)

// ObservationRepository porta de persistência das observações de produto.
type ObservationRepository interface {
	Create(ctx context.Context, obs *entity.Observation) error
	GetByID(ctx context.Context, id int64) (*entity.Observation, error)
	ListByReference(ctx context.Context, referenceCode string, includeResolved bool) ([]*entity.Observation, error)
	ListUnresolved(ctx context.Context, limit int) ([]*entity.Observation, error)
	CountUnresolvedByReference(ctx context.Context, referenceCodes []string) (map[string]int, error)
	Resolve(ctx context.Context, id int64, resolvedBy string) error
	Unresolve(ctx context.Context, id int64) error
}
