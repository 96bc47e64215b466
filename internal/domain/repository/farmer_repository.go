package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// FarmerRepository perfiles de fermer. Los Get devuelven (nil, nil) si no existe.
type FarmerRepository interface {
	Create(ctx context.Context, f *entity.Farmer) error
	GetByID(ctx context.Context, id string) (*entity.Farmer, error)
	GetByINN(ctx context.Context, inn string) (*entity.Farmer, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Farmer, error)
	// Update reescribe los datos del perfil; ErrNotFound si no existe, ErrDuplicate si el INN ya es de otro.
	Update(ctx context.Context, f *entity.Farmer) error
	List(ctx context.Context) ([]*entity.Farmer, error)
}
