package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo contratos anuales sobre PostgreSQL.
type ContractRepo struct {
	q Querier
}

func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Upsert conserva id y created_at de la fila existente y los devuelve en c.
func (r *ContractRepo) Upsert(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (id, farmer_id, year, plan_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (farmer_id, year) DO UPDATE
			SET plan_amount = EXCLUDED.plan_amount,
			    status = EXCLUDED.status,
			    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		c.ID, c.FarmerID, c.Year, c.PlanAmount, c.Status, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert contract: %w", err)
	}
	return nil
}

func (r *ContractRepo) ListByFarmer(ctx context.Context, farmerID string) ([]*entity.Contract, error) {
	var out []*entity.Contract
	query := `
		SELECT id, farmer_id, year, plan_amount, status, created_at, updated_at
		FROM contracts WHERE farmer_id = $1 ORDER BY year DESC`
	if err := pgxscan.Select(ctx, r.q, &out, query, farmerID); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return out, nil
}
