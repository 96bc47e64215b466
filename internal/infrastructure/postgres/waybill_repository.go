package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var _ repository.WaybillRepository = (*WaybillRepo)(nil)

// waybillLockKey clave del advisory lock de numeración.
const waybillLockKey = "waybill_number"

// WaybillRepo notas de despacho.
type WaybillRepo struct {
	q Querier
}

// NewWaybillRepository construye el repositorio sobre pool o tx.
func NewWaybillRepository(q Querier) *WaybillRepo {
	return &WaybillRepo{q: q}
}

// LockNumbering advisory lock de transacción: se libera solo en COMMIT/ROLLBACK.
// Fuera de una transacción no serializa nada.
func (r *WaybillRepo) LockNumbering(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", waybillLockKey); err != nil {
		return fmt.Errorf("lock waybill numbering: %w", err)
	}
	return nil
}

// Last nota con la secuencia más alta. created_at no sirve: se toma antes de esperar
// los bloqueos y puede quedar desordenado respecto del número.
func (r *WaybillRepo) Last(ctx context.Context) (*entity.Waybill, error) {
	query := `
		SELECT id, number, type, receiver_name, shipper_name, created_at
		FROM waybills ORDER BY split_part(number, '-', 3)::int DESC LIMIT 1`
	return r.getOne(ctx, query)
}

// Create inserta la nota; número repetido = ErrDuplicate.
func (r *WaybillRepo) Create(ctx context.Context, w *entity.Waybill) error {
	query := `
		INSERT INTO waybills (id, number, type, receiver_name, shipper_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, w.ID, w.Number, w.Type, w.ReceiverName, w.ShipperName, w.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: nota %s", domain.ErrDuplicate, w.Number)
		}
		return fmt.Errorf("insert waybill: %w", err)
	}
	return nil
}

// GetByID nota por id.
func (r *WaybillRepo) GetByID(ctx context.Context, id string) (*entity.Waybill, error) {
	query := `
		SELECT id, number, type, receiver_name, shipper_name, created_at
		FROM waybills WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *WaybillRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Waybill, error) {
	var w entity.Waybill
	if err := pgxscan.Get(ctx, r.q, &w, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get waybill: %w", err)
	}
	return &w, nil
}
