package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo libro de asientos; solo INSERT y SELECT (la tabla rechaza UPDATE/DELETE).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el repositorio sobre pool o tx.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func transactionDetailQuery() squirrel.SelectBuilder {
	return psql.Select(
		"t.id", "t.type", "t.amount", "t.product_id", "t.farmer_id", "t.brigadier_id", "t.contour_id",
		"t.batch_number", "t.batch_id", "t.description", "t.created_by_id", "t.date", "t.waybill_id",
		"p.name AS product_name",
		"p.unit AS product_unit",
		"COALESCE(NULLIF(f.ni, ''), NULLIF(f.director_name, ''), f.inn) AS farmer_name",
		"bu.full_name AS brigadier_name",
		"w.number AS waybill_number",
		"cu.full_name AS created_by_name",
	).
		From("transactions t").
		Join("products p ON p.id = t.product_id").
		Join("users cu ON cu.id = t.created_by_id").
		LeftJoin("farmers f ON f.id = t.farmer_id").
		LeftJoin("brigadiers b ON b.id = t.brigadier_id").
		LeftJoin("users bu ON bu.id = b.user_id").
		LeftJoin("waybills w ON w.id = t.waybill_id")
}

// Create inserta un asiento.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, amount, product_id, farmer_id, brigadier_id, contour_id,
			batch_number, batch_id, description, created_by_id, date, waybill_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.Amount, t.ProductID, t.FarmerID, t.BrigadierID, t.ContourID,
		t.BatchNumber, t.BatchID, t.Description, t.CreatedByID, t.Date, t.WaybillID,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID asiento con nombres resueltos; (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.TransactionDetail, error) {
	sql, args, err := transactionDetailQuery().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var t entity.TransactionDetail
	if err := pgxscan.Get(ctx, r.q, &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListByBatch todos los asientos de un lote.
func (r *TransactionRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.TransactionDetail, error) {
	q := transactionDetailQuery().Where(squirrel.Eq{"t.batch_id": batchID}).OrderBy("t.date", "p.name")
	return r.selectDetails(ctx, q)
}

// List asientos filtrados, del más reciente al más antiguo.
func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	q := transactionDetailQuery()
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"t.product_id": f.ProductID})
	}
	if f.FarmerID != "" {
		q = q.Where(squirrel.Eq{"t.farmer_id": f.FarmerID})
	}
	if f.BrigadierID != "" {
		q = q.Where(squirrel.Eq{"t.brigadier_id": f.BrigadierID})
	}
	if f.BatchID != "" {
		q = q.Where(squirrel.Eq{"t.batch_id": f.BatchID})
	}
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"t.type": f.Type})
	}
	q = q.OrderBy("t.date DESC", "t.id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	return r.selectDetails(ctx, q)
}

// TotalsByType suma por tipo de los asientos del producto (opcionalmente de un brigadier).
func (r *TransactionRepo) TotalsByType(ctx context.Context, productID, brigadierID string) (map[entity.TransactionType]decimal.Decimal, error) {
	q := psql.Select("type", "SUM(amount) AS total").
		From("transactions").
		Where(squirrel.Eq{"product_id": productID}).
		GroupBy("type")
	if brigadierID != "" {
		q = q.Where(squirrel.Eq{"brigadier_id": brigadierID})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []struct {
		Type  entity.TransactionType
		Total decimal.Decimal
	}
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("totals by type: %w", err)
	}
	out := make(map[entity.TransactionType]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Total
	}
	return out, nil
}

func (r *TransactionRepo) selectDetails(ctx context.Context, q squirrel.SelectBuilder) ([]*entity.TransactionDetail, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []*entity.TransactionDetail
	if err := pgxscan.Select(ctx, r.q, &out, sql, args...); err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	return out, nil
}
