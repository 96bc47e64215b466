package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.BrigadierStockRepository = (*BrigadierStockRepo)(nil)

// BrigadierStockRepo reserva personal de cada brigadier.
type BrigadierStockRepo struct {
	q Querier
}

// NewBrigadierStockRepository construye el repositorio sobre pool o tx.
func NewBrigadierStockRepository(q Querier) *BrigadierStockRepo {
	return &BrigadierStockRepo{q: q}
}

// Get saldo de (brigadier, producto).
func (r *BrigadierStockRepo) Get(ctx context.Context, brigadierID, productID string) (*entity.BrigadierStock, error) {
	var s entity.BrigadierStock
	query := `
		SELECT id, brigadier_id, product_id, amount, updated_at
		FROM brigadier_stocks WHERE brigadier_id = $1 AND product_id = $2`
	if err := pgxscan.Get(ctx, r.q, &s, query, brigadierID, productID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brigadier stock: %w", err)
	}
	return &s, nil
}

// Add crea la fila o suma sobre ella (ON CONFLICT), atómico frente a altas concurrentes.
func (r *BrigadierStockRepo) Add(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO brigadier_stocks (id, brigadier_id, product_id, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (brigadier_id, product_id)
		DO UPDATE SET amount = brigadier_stocks.amount + EXCLUDED.amount, updated_at = EXCLUDED.updated_at
		RETURNING amount`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, uuid.NewString(), brigadierID, productID, amount, time.Now()).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("add brigadier stock: %w", err)
	}
	return total, nil
}

// Consume resta solo si el saldo alcanza; una fila inexistente cuenta como saldo cero.
func (r *BrigadierStockRepo) Consume(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE brigadier_stocks
		SET amount = amount - $3, updated_at = $4
		WHERE brigadier_id = $1 AND product_id = $2 AND amount >= $3
		RETURNING amount`
	var left decimal.Decimal
	err := r.q.QueryRow(ctx, query, brigadierID, productID, amount, time.Now()).Scan(&left)
	if err != nil {
		if pgxscan.NotFound(err) || isCheckViolation(err) {
			return decimal.Zero, domain.ErrBrigadierStockInsufficient
		}
		return decimal.Zero, fmt.Errorf("consume brigadier stock: %w", err)
	}
	return left, nil
}

// ListByBrigadier saldos con nombre y unidad del producto.
func (r *BrigadierStockRepo) ListByBrigadier(ctx context.Context, brigadierID string, positiveOnly bool) ([]*entity.BrigadierStockItem, error) {
	q := psql.Select(
		"s.id", "s.brigadier_id", "s.product_id", "s.amount", "s.updated_at",
		"p.name AS product_name", "p.unit AS product_unit",
	).
		From("brigadier_stocks s").
		Join("products p ON p.id = s.product_id").
		Where(squirrel.Eq{"s.brigadier_id": brigadierID}).
		OrderBy("p.name")
	if positiveOnly {
		q = q.Where(squirrel.Gt{"s.amount": 0})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.BrigadierStockItem
	if err := pgxscan.Select(ctx, r.q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list brigadier stock: %w", err)
	}
	return out, nil
}

// SetAmount fija el saldo (conciliación).
func (r *BrigadierStockRepo) SetAmount(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) error {
	query := `
		INSERT INTO brigadier_stocks (id, brigadier_id, product_id, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (brigadier_id, product_id)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, uuid.NewString(), brigadierID, productID, amount, time.Now()); err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("set brigadier stock: %w", err)
	}
	return nil
}
