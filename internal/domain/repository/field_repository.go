package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// WorkStageRepository etapas agrotécnicas ordenadas.
type WorkStageRepository interface {
	Create(ctx context.Context, s *entity.WorkStage) error
	GetByID(ctx context.Context, id string) (*entity.WorkStage, error)
	List(ctx context.Context) ([]*entity.WorkStage, error)
	Delete(ctx context.Context, id string) error
}

// FieldActivityRepository actividades únicas por (contorno, etapa).
type FieldActivityRepository interface {
	// Get (nil, nil) si no existe; forUpdate bloquea la fila.
	Get(ctx context.Context, contourID, workStageID string, forUpdate bool) (*entity.FieldActivity, error)
	// UpsertAssignment crea la actividad en PENDING o, si ya existe, solo cambia el brigadier.
	UpsertAssignment(ctx context.Context, a *entity.FieldActivity) error
	// UpsertStatus crea la actividad o actualiza brigadier, estado, comentario y fecha de cierre.
	UpsertStatus(ctx context.Context, a *entity.FieldActivity) error
	List(ctx context.Context, brigadierID string) ([]*entity.FieldActivityDetail, error)
	DeleteAll(ctx context.Context) (int64, error)
}
