package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// WaybillRepository notas de despacho.
type WaybillRepository interface {
	// LockNumbering serializa la emisión de números hasta el fin de la transacción.
	LockNumbering(ctx context.Context) error
	// Last la nota creada más recientemente, de cualquier año; (nil, nil) si no hay ninguna.
	Last(ctx context.Context) (*entity.Waybill, error)
	Create(ctx context.Context, w *entity.Waybill) error
	GetByID(ctx context.Context, id string) (*entity.Waybill, error)
}
