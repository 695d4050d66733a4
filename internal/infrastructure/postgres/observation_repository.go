package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/entity"
	"github.com/kdu-dev/painel-api/internal/domain/repository"
)

var _ repository.ObservationRepository = (*ObservationRepo)(nil)

// ObservationRepo implementação do porto ObservationRepository sobre PostgreSQL.
type ObservationRepo struct {
	pool *pgxpool.Pool
}

// NewObservationRepository constrói o adaptador de persistência de observações.
func NewObservationRepository(pool *pgxpool.Pool) *ObservationRepo {
	return &ObservationRepo{pool: pool}
}

const selectObservation = `
	SELECT id, reference_code, observation, created_by, created_at, resolved, COALESCE(resolved_by, ''), resolved_at
	FROM product_observations`

// Create persiste uma nova observação e preenche o ID gerado.
func (r *ObservationRepo) Create(ctx context.Context, obs *entity.Observation) error {
	query := `
		INSERT INTO product_observations (reference_code, observation, created_by, created_at, resolved)
		VALUES ($1, $2, $3, $4, false)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		obs.ReferenceCode, obs.Text, obs.CreatedBy, obs.CreatedAt,
	).Scan(&obs.ID)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// GetByID busca uma observação por ID.
func (r *ObservationRepo) GetByID(ctx context.Context, id int64) (*entity.Observation, error) {
	var o entity.Observation
	err := r.pool.QueryRow(ctx, selectObservation+` WHERE id = $1`, id).Scan(
		&o.ID, &o.ReferenceCode, &o.Text, &o.CreatedBy, &o.CreatedAt,
		&o.Resolved, &o.ResolvedBy, &o.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get observation: %w", err)
	}
	return &o, nil
}

// ListByReference lista as observações de uma referência, mais recentes
// primeiro. includeResolved falso devolve só as abertas.
func (r *ObservationRepo) ListByReference(ctx context.Context, referenceCode string, includeResolved bool) ([]*entity.Observation, error) {
	query := selectObservation + ` WHERE reference_code = $1`
	if !includeResolved {
		query += ` AND NOT resolved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, referenceCode)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

// ListUnresolved lista as observações abertas de todas as referências, mais
// antigas primeiro (fila de pendências). limit <= 0 devolve todas.
func (r *ObservationRepo) ListUnresolved(ctx context.Context, limit int) ([]*entity.Observation, error) {
	query := selectObservation + ` WHERE NOT resolved ORDER BY created_at ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list unresolved observations: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

// CountUnresolvedByReference conta as observações abertas por referência.
// Referências sem pendências não aparecem no mapa.
func (r *ObservationRepo) CountUnresolvedByReference(ctx context.Context, referenceCodes []string) (map[string]int, error) {
	if len(referenceCodes) == 0 {
		return map[string]int{}, nil
	}
	query := `
		SELECT reference_code, COUNT(*)
		FROM product_observations
		WHERE NOT resolved AND reference_code = ANY($1)
		GROUP BY reference_code`

	rows, err := r.pool.Query(ctx, query, referenceCodes)
	if err != nil {
		return nil, fmt.Errorf("count unresolved observations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var ref string
		var n int
		if err := rows.Scan(&ref, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[ref] = n
	}
	return counts, rows.Err()
}

// Resolve marca uma observação como resolvida. Resolver de novo é idempotente.
func (r *ObservationRepo) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	query := `
		UPDATE product_observations
		SET resolved = true, resolved_by = $2, resolved_at = $3
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, resolvedBy, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("resolve observation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Unresolve reabre uma observação resolvida por engano.
func (r *ObservationRepo) Unresolve(ctx context.Context, id int64) error {
	query := `
		UPDATE product_observations
		SET resolved = false, resolved_by = NULL, resolved_at = NULL
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("unresolve observation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanObservations(rows pgx.Rows) ([]*entity.Observation, error) {
	var list []*entity.Observation
	for rows.Next() {
		var o entity.Observation
		if err := rows.Scan(
			&o.ID, &o.ReferenceCode, &o.Text, &o.CreatedBy, &o.CreatedAt,
			&o.Resolved, &o.ResolvedBy, &o.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
