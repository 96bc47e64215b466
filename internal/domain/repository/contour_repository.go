package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// ContourRepository parcelas.
type ContourRepository interface {
	Create(ctx context.Context, c *entity.Contour) error
	GetByID(ctx context.Context, id string) (*entity.Contour, error)
	List(ctx context.Context, brigadierID string) ([]*entity.Contour, error)
	// AssignBrigadier brigadierID nil desasigna.
	AssignBrigadier(ctx context.Context, contourID string, brigadierID *string) error
}
