package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var (
	_ repository.WorkStageRepository     = (*WorkStageRepo)(nil)
	_ repository.FieldActivityRepository = (*FieldActivityRepo)(nil)
)

// WorkStageRepo etapas agrotécnicas.
type WorkStageRepo struct {
	q Querier
}

// NewWorkStageRepository construye el repositorio sobre pool o tx.
func NewWorkStageRepository(q Querier) *WorkStageRepo {
	return &WorkStageRepo{q: q}
}

func (r *WorkStageRepo) Create(ctx context.Context, s *entity.WorkStage) error {
	query := "INSERT INTO work_stages (id, name, sort_order, description) VALUES ($1, $2, $3, $4)"
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Order, s.Description); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work stage: %w", err)
	}
	return nil
}

func (r *WorkStageRepo) GetByID(ctx context.Context, id string) (*entity.WorkStage, error) {
	var s entity.WorkStage
	query := "SELECT id, name, sort_order, description FROM work_stages WHERE id = $1"
	if err := pgxscan.Get(ctx, r.q, &s, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work stage: %w", err)
	}
	return &s, nil
}

func (r *WorkStageRepo) List(ctx context.Context) ([]*entity.WorkStage, error) {
	var out []*entity.WorkStage
	query := "SELECT id, name, sort_order, description FROM work_stages ORDER BY sort_order, name"
	if err := pgxscan.Select(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list work stages: %w", err)
	}
	return out, nil
}

// Delete borra la etapa y, en cascada, sus actividades.
func (r *WorkStageRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM work_stages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete work stage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FieldActivityRepo actividades por (contorno, etapa).
type FieldActivityRepo struct {
	q Querier
}

// NewFieldActivityRepository construye el repositorio sobre pool o tx.
func NewFieldActivityRepository(q Querier) *FieldActivityRepo {
	return &FieldActivityRepo{q: q}
}

func (r *FieldActivityRepo) Get(ctx context.Context, contourID, workStageID string, forUpdate bool) (*entity.FieldActivity, error) {
	query := `
		SELECT id, contour_id, work_stage_id, brigadier_id, status, comment, completion_date, created_at, updated_at
		FROM field_activities WHERE contour_id = $1 AND work_stage_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var a entity.FieldActivity
	if err := pgxscan.Get(ctx, r.q, &a, query, contourID, workStageID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get field activity: %w", err)
	}
	return &a, nil
}

// UpsertAssignment nueva actividad PENDING; si ya existe solo cambia el brigadier.
func (r *FieldActivityRepo) UpsertAssignment(ctx context.Context, a *entity.FieldActivity) error {
	query := `
		INSERT INTO field_activities (id, contour_id, work_stage_id, brigadier_id, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, $7)
		ON CONFLICT (contour_id, work_stage_id)
		DO UPDATE SET brigadier_id = EXCLUDED.brigadier_id, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, a.ID, a.ContourID, a.WorkStageID, a.BrigadierID, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert field assignment: %w", err)
	}
	return nil
}

// UpsertStatus guarda el estado ya validado por la máquina de estados.
func (r *FieldActivityRepo) UpsertStatus(ctx context.Context, a *entity.FieldActivity) error {
	query := `
		INSERT INTO field_activities (id, contour_id, work_stage_id, brigadier_id, status, comment, completion_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (contour_id, work_stage_id)
		DO UPDATE SET brigadier_id = EXCLUDED.brigadier_id,
			status = EXCLUDED.status,
			comment = EXCLUDED.comment,
			completion_date = EXCLUDED.completion_date,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ContourID, a.WorkStageID, a.BrigadierID, a.Status, a.Comment, a.CompletionDate, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert field activity: %w", err)
	}
	return nil
}

// List actividades por número de contorno y orden de etapa.
func (r *FieldActivityRepo) List(ctx context.Context, brigadierID string) ([]*entity.FieldActivityDetail, error) {
	q := psql.Select(
		"a.id", "a.contour_id", "a.work_stage_id", "a.brigadier_id", "a.status", "a.comment",
		"a.completion_date", "a.created_at", "a.updated_at",
		"c.number AS contour_number", "c.name AS contour_name",
		"s.name AS stage_name", "s.sort_order AS stage_order",
		"u.full_name AS brigadier_name",
	).
		From("field_activities a").
		Join("contours c ON c.id = a.contour_id").
		Join("work_stages s ON s.id = a.work_stage_id").
		LeftJoin("brigadiers b ON b.id = a.brigadier_id").
		LeftJoin("users u ON u.id = b.user_id").
		OrderBy("c.number", "s.sort_order")
	if brigadierID != "" {
		q = q.Where(squirrel.Eq{"a.brigadier_id": brigadierID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.FieldActivityDetail
	if err := pgxscan.Select(ctx, r.q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list field activities: %w", err)
	}
	return out, nil
}

func (r *FieldActivityRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, "DELETE FROM field_activities")
	if err != nil {
		return 0, fmt.Errorf("reset field activities: %w", err)
	}
	return tag.RowsAffected(), nil
}
