package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kdu-dev/painel-api/internal/domain"
	"github.com/kdu-dev/painel-api/internal/domain/entity"
	"github.com/kdu-dev/painel-api/internal/domain/repository"
	"github.com/kdu-dev/painel-api/pkg/logger"
)

// ObservationService anotações de equipe sobre referências de produto.
type ObservationService struct {
	repo repository.ObservationRepository
	log  *logger.Logger
}

// NewObservationService constrói o serviço de observações.
func NewObservationService(repo repository.ObservationRepository, log *logger.Logger) *ObservationService {
	return &ObservationService{repo: repo, log: log}
}

// Create registra uma observação aberta para a referência.
func (s *ObservationService) Create(ctx context.Context, referenceCode, text, createdBy string) (*entity.Observation, error) {
	referenceCode = strings.TrimSpace(referenceCode)
	text = strings.TrimSpace(text)
	if referenceCode == "" || text == "" {
		return nil, fmt.Errorf("%w: referência e texto são obrigatórios", domain.ErrInvalidInput)
	}

	obs := &entity.Observation{
		ReferenceCode: referenceCode,
		Text:          text,
		CreatedBy:     createdBy,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, obs); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("reference", referenceCode).
		Str("user", createdBy).
		Msg("observação registrada")
	return obs, nil
}

// ListByReference lista as observações de uma referência.
func (s *ObservationService) ListByReference(ctx context.Context, referenceCode string, includeResolved bool) ([]*entity.Observation, error) {
	if strings.TrimSpace(referenceCode) == "" {
		return nil, fmt.Errorf("%w: referência vazia", domain.ErrInvalidInput)
	}
	return s.repo.ListByReference(ctx, referenceCode, includeResolved)
}

// ListUnresolved lista a fila de pendências abertas.
func (s *ObservationService) ListUnresolved(ctx context.Context, limit int) ([]*entity.Observation, error) {
	return s.repo.ListUnresolved(ctx, limit)
}

// PendingCounts conta as pendências abertas por referência.
func (s *ObservationService) PendingCounts(ctx context.Context, referenceCodes []string) (map[string]int, error) {
	return s.repo.CountUnresolvedByReference(ctx, referenceCodes)
}

// Resolve marca a observação como resolvida.
func (s *ObservationService) Resolve(ctx context.Context, id int64, resolvedBy string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id inválido", domain.ErrInvalidInput)
	}
	return s.repo.Resolve(ctx, id, resolvedBy)
}

// Unresolve reabre uma observação resolvida por engano.
func (s *ObservationService) Unresolve(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id inválido", domain.ErrInvalidInput)
	}
	return s.repo.Unresolve(ctx, id)
}
