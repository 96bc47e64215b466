// Package brigade seguimiento de las actividades de campo: etapas agrotécnicas,
// planes de trabajo por contorno y avance de cada brigadier.
package brigade

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/fieldwork"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/rs/zerolog"
)

// FieldTxRunner ejecuta fn en una transacción con el repositorio de actividades atado a ella.
type FieldTxRunner interface {
	RunField(ctx context.Context, fn func(ctx context.Context, repo repository.FieldActivityRepository) error) error
}

// Service caso de uso de actividades de campo.
type Service struct {
	tx         FieldTxRunner
	stages     repository.WorkStageRepository
	activities repository.FieldActivityRepository
	contours   repository.ContourRepository
	brigadiers repository.BrigadierRepository
	cache      ports.ViewCache
	log        zerolog.Logger
	now        func() time.Time
}

// NewService construye el servicio. cache puede ser nil.
func NewService(
	tx FieldTxRunner,
	stages repository.WorkStageRepository,
	activities repository.FieldActivityRepository,
	contours repository.ContourRepository,
	brigadiers repository.BrigadierRepository,
	cache ports.ViewCache,
	log zerolog.Logger,
) *Service {
	return &Service{
		tx: tx, stages: stages, activities: activities, contours: contours,
		brigadiers: brigadiers, cache: cache, log: log, now: time.Now,
	}
}

// WithClock fija el reloj usado para la fecha de cierre.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ── etapas ───────────────────────────────────────────────────────────────────

// ListWorkStages etapas en su orden.
func (s *Service) ListWorkStages(ctx context.Context, actor access.Actor) ([]*entity.WorkStage, error) {
	if err := access.Require(actor, access.ViewFieldActivities); err != nil {
		return nil, err
	}
	return s.stages.List(ctx)
}

// CreateWorkStage alta de una etapa.
func (s *Service) CreateWorkStage(ctx context.Context, actor access.Actor, name string, order int, description string) (*entity.WorkStage, error) {
	if err := access.Require(actor, access.ManageWorkStages); err != nil {
		return nil, err
	}
	name = textnorm.Name(name)
	if name == "" || order < 0 {
		return nil, fmt.Errorf("%w: la etapa requiere nombre y orden no negativo", domain.ErrInvalidInput)
	}
	st := &entity.WorkStage{ID: uuid.NewString(), Name: name, Order: order, Description: strings.TrimSpace(description)}
	if err := s.stages.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteWorkStage baja de una etapa.
func (s *Service) DeleteWorkStage(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Require(actor, access.ManageWorkStages); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: etapa %q", domain.ErrInvalidInput, id)
	}
	return s.stages.Delete(ctx, id)
}

// ── actividades ──────────────────────────────────────────────────────────────

// AssignWorkPlan asigna al contorno las etapas indicadas en una sola transacción:
// las nuevas nacen PENDING y las existentes conservan su estado y cambian de brigadier.
func (s *Service) AssignWorkPlan(ctx context.Context, actor access.Actor, contourID string, stageIDs []string, brigadierID string) (int, error) {
	if err := access.Require(actor, access.AssignWorkPlan); err != nil {
		return 0, err
	}
	if len(stageIDs) == 0 {
		return 0, fmt.Errorf("%w: el plan requiere al menos una etapa", domain.ErrInvalidInput)
	}
	if err := s.ensureContour(ctx, contourID); err != nil {
		return 0, err
	}
	if err := s.ensureBrigadier(ctx, brigadierID); err != nil {
		return 0, err
	}
	ids := dedupe(stageIDs)
	for _, id := range ids {
		st, err := s.stages.GetByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("buscar etapa: %w", err)
		}
		if st == nil {
			return 0, fmt.Errorf("%w: etapa %s", domain.ErrNotFound, id)
		}
	}

	now := s.now()
	err := s.tx.RunField(ctx, func(ctx context.Context, repo repository.FieldActivityRepository) error {
		for _, stageID := range ids {
			a := &entity.FieldActivity{
				ID:          uuid.NewString(),
				ContourID:   contourID,
				WorkStageID: stageID,
				BrigadierID: &brigadierID,
				Status:      entity.ActivityPending,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := repo.UpsertAssignment(ctx, a); err != nil {
				return fmt.Errorf("asignar etapa %s: %w", stageID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.invalidate()
	s.log.Info().Str("contour_id", contourID).Str("brigadier_id", brigadierID).Int("stages", len(ids)).Msg("plan de trabajo asignado")
	return len(ids), nil
}

// UpdateActivityInput cambio de estado de una actividad.
type UpdateActivityInput struct {
	ContourID   string
	WorkStageID string
	BrigadierID string
	Status      entity.ActivityStatus
	Comment     string
}

// UpdateActivity crea o actualiza la actividad de (contorno, etapa) validando la transición.
// El brigadier solo actualiza actividades a su nombre.
func (s *Service) UpdateActivity(ctx context.Context, actor access.Actor, in UpdateActivityInput) (*entity.FieldActivity, error) {
	if err := access.RequireBrigadier(actor, access.UpdateFieldActivity, in.BrigadierID); err != nil {
		return nil, err
	}
	if !fieldwork.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, in.Status)
	}
	if err := s.ensureContour(ctx, in.ContourID); err != nil {
		return nil, err
	}
	if err := s.ensureBrigadier(ctx, in.BrigadierID); err != nil {
		return nil, err
	}
	st, err := s.stages.GetByID(ctx, in.WorkStageID)
	if err != nil {
		return nil, fmt.Errorf("buscar etapa: %w", err)
	}
	if st == nil {
		return nil, fmt.Errorf("%w: etapa %s", domain.ErrNotFound, in.WorkStageID)
	}

	now := s.now()
	var out *entity.FieldActivity
	err = s.tx.RunField(ctx, func(ctx context.Context, repo repository.FieldActivityRepository) error {
		current, err := repo.Get(ctx, in.ContourID, in.WorkStageID, true)
		if err != nil {
			return err
		}
		exists := current != nil
		if !exists {
			current = &entity.FieldActivity{
				ID:          uuid.NewString(),
				ContourID:   in.ContourID,
				WorkStageID: in.WorkStageID,
				CreatedAt:   now,
			}
		} else if actor.Role == entity.RoleBrigadier && current.BrigadierID != nil && *current.BrigadierID != in.BrigadierID {
			return fmt.Errorf("%w: la actividad está asignada a otro brigadier", domain.ErrForbidden)
		}
		if err := fieldwork.Apply(current, exists, in.Status, now); err != nil {
			return err
		}
		current.BrigadierID = &in.BrigadierID
		current.Comment = strings.TrimSpace(in.Comment)
		current.UpdatedAt = now
		if err := repo.UpsertStatus(ctx, current); err != nil {
			return err
		}
		out = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return out, nil
}

// ListActivities actividades ordenadas por contorno y etapa; brigadierID vacío = todas.
// Un brigadier solo ve las suyas.
func (s *Service) ListActivities(ctx context.Context, actor access.Actor, brigadierID string) ([]*entity.FieldActivityDetail, error) {
	if err := access.Require(actor, access.ViewFieldActivities); err != nil {
		return nil, err
	}
	if actor.Role == entity.RoleBrigadier {
		brigadierID = actor.BrigadierID
	}
	return s.activities.List(ctx, brigadierID)
}

// ResetActivities borra todas las actividades (inicio de campaña).
func (s *Service) ResetActivities(ctx context.Context, actor access.Actor) (int64, error) {
	if err := access.Require(actor, access.ResetFieldActivities); err != nil {
		return 0, err
	}
	n, err := s.activities.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	s.log.Warn().Int64("deleted", n).Str("user_id", actor.UserID).Msg("actividades de campo reiniciadas")
	return n, nil
}

func (s *Service) ensureContour(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: contorno %q", domain.ErrInvalidInput, id)
	}
	c, err := s.contours.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar contorno: %w", err)
	}
	if c == nil {
		return fmt.Errorf("%w: contorno %s", domain.ErrNotFound, id)
	}
	return nil
}

func (s *Service) ensureBrigadier(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: brigadier %q", domain.ErrInvalidInput, id)
	}
	b, err := s.brigadiers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("buscar brigadier: %w", err)
	}
	if b == nil {
		return fmt.Errorf("%w: brigadier %s", domain.ErrNotFound, id)
	}
	return nil
}

// El avance de etapas alimenta el tablero de monitoreo.
func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, ports.CacheKeyMonitoring); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Msg("invalidar caché de monitoreo")
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
