package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// BrigadierRepository perfiles de brigadier con su usuario.
type BrigadierRepository interface {
	Create(ctx context.Context, b *entity.Brigadier) error
	GetByID(ctx context.Context, id string) (*entity.BrigadierProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.BrigadierProfile, error)
	List(ctx context.Context) ([]*entity.BrigadierProfile, error)
}
