package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MonitoringRepository = (*MonitoringRepo)(nil)

// MonitoringRepo consultas read-only del tablero.
type MonitoringRepo struct {
	q Querier
}

// NewMonitoringRepository construye el repositorio.
func NewMonitoringRepository(q Querier) *MonitoringRepo {
	return &MonitoringRepo{q: q}
}

func (r *MonitoringRepo) TotalContourArea(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, "SELECT COALESCE(SUM(area), 0) FROM contours").Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total contour area: %w", err)
	}
	return total, nil
}

// StageProgress superficie de contornos con la etapa COMPLETED, para todas las etapas.
func (r *MonitoringRepo) StageProgress(ctx context.Context) ([]repository.StageProgressRow, error) {
	query := `
		SELECT s.id AS stage_id, s.name AS stage_name, s.sort_order AS stage_order,
			COALESCE(SUM(c.area) FILTER (WHERE a.status = $1), 0) AS completed_area
		FROM work_stages s
		LEFT JOIN field_activities a ON a.work_stage_id = s.id
		LEFT JOIN contours c ON c.id = a.contour_id
		GROUP BY s.id, s.name, s.sort_order
		ORDER BY s.sort_order, s.name`
	var out []repository.StageProgressRow
	if err := pgxscan.Select(ctx, r.q, &out, query, entity.ActivityCompleted); err != nil {
		return nil, fmt.Errorf("stage progress: %w", err)
	}
	return out, nil
}

// InboundTotals total histórico de entradas por producto.
func (r *MonitoringRepo) InboundTotals(ctx context.Context) (map[string]decimal.Decimal, error) {
	var rows []struct {
		ProductID string
		Total     decimal.Decimal
	}
	query := "SELECT product_id, SUM(amount) AS total FROM transactions WHERE type = $1 GROUP BY product_id"
	if err := pgxscan.Select(ctx, r.q, &rows, query, entity.TransactionIN); err != nil {
		return nil, fmt.Errorf("inbound totals: %w", err)
	}
	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.ProductID] = row.Total
	}
	return out, nil
}
