package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var _ repository.BrigadierRepository = (*BrigadierRepo)(nil)

const brigadierProfileQuery = `
	SELECT b.id, b.user_id, b.phone, b.address, b.created_at, u.full_name, u.username
	FROM brigadiers b
	JOIN users u ON u.id = b.user_id`

// BrigadierRepo perfiles de brigadier.
type BrigadierRepo struct {
	q Querier
}

// NewBrigadierRepository construye el repositorio sobre pool o tx.
func NewBrigadierRepository(q Querier) *BrigadierRepo {
	return &BrigadierRepo{q: q}
}

// Create inserta el perfil; el usuario debe existir.
func (r *BrigadierRepo) Create(ctx context.Context, b *entity.Brigadier) error {
	query := `
		INSERT INTO brigadiers (id, user_id, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, b.ID, b.UserID, b.Phone, b.Address, b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brigadier: %w", err)
	}
	return nil
}

func (r *BrigadierRepo) GetByID(ctx context.Context, id string) (*entity.BrigadierProfile, error) {
	return r.getOne(ctx, brigadierProfileQuery+" WHERE b.id = $1", id)
}

func (r *BrigadierRepo) GetByUserID(ctx context.Context, userID string) (*entity.BrigadierProfile, error) {
	return r.getOne(ctx, brigadierProfileQuery+" WHERE b.user_id = $1", userID)
}

// List brigadieres por nombre.
func (r *BrigadierRepo) List(ctx context.Context) ([]*entity.BrigadierProfile, error) {
	var out []*entity.BrigadierProfile
	if err := pgxscan.Select(ctx, r.q, &out, brigadierProfileQuery+" ORDER BY u.full_name"); err != nil {
		return nil, fmt.Errorf("list brigadiers: %w", err)
	}
	return out, nil
}

func (r *BrigadierRepo) getOne(ctx context.Context, query string, args ...any) (*entity.BrigadierProfile, error) {
	var b entity.BrigadierProfile
	if err := pgxscan.Get(ctx, r.q, &b, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brigadier: %w", err)
	}
	return &b, nil
}
