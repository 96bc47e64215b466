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

var _ repository.ContourRepository = (*ContourRepo)(nil)

// ContourRepo parcelas.
type ContourRepo struct {
	q Querier
}

// NewContourRepository construye el repositorio sobre pool o tx.
func NewContourRepository(q Querier) *ContourRepo {
	return &ContourRepo{q: q}
}

func (r *ContourRepo) Create(ctx context.Context, c *entity.Contour) error {
	query := `
		INSERT INTO contours (id, number, name, area, brigadier_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Number, c.Name, c.Area, c.BrigadierID, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contour: %w", err)
	}
	return nil
}

func (r *ContourRepo) GetByID(ctx context.Context, id string) (*entity.Contour, error) {
	var c entity.Contour
	query := "SELECT id, number, name, area, brigadier_id, created_at FROM contours WHERE id = $1"
	if err := pgxscan.Get(ctx, r.q, &c, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contour: %w", err)
	}
	return &c, nil
}

// List contornos por número; brigadierID vacío = todos.
func (r *ContourRepo) List(ctx context.Context, brigadierID string) ([]*entity.Contour, error) {
	q := psql.Select("id", "number", "name", "area", "brigadier_id", "created_at").
		From("contours").
		OrderBy("number")
	if brigadierID != "" {
		q = q.Where(squirrel.Eq{"brigadier_id": brigadierID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.Contour
	if err := pgxscan.Select(ctx, r.q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list contours: %w", err)
	}
	return out, nil
}

// AssignBrigadier brigadierID nil desasigna.
func (r *ContourRepo) AssignBrigadier(ctx context.Context, contourID string, brigadierID *string) error {
	tag, err := r.q.Exec(ctx, "UPDATE contours SET brigadier_id = $2 WHERE id = $1", contourID, brigadierID)
	if err != nil {
		return fmt.Errorf("assign contour: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
