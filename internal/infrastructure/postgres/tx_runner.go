package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/navbahor-erp/internal/application/brigade"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

var (
	_ warehouse.TxRunner    = (*TxRunner)(nil)
	_ brigade.FieldTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos warehouse.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, warehouse.TxRepos{
			Products:        NewProductRepository(tx),
			Transactions:    NewTransactionRepository(tx),
			BrigadierStocks: NewBrigadierStockRepository(tx),
			Waybills:        NewWaybillRepository(tx),
			Farmers:         NewFarmerRepository(tx),
			Users:           NewUserRepository(tx),
			Brigadiers:      NewBrigadierRepository(tx),
		})
	})
}

// RunField transacción para el plan de trabajo de campo.
func (r *TxRunner) RunField(ctx context.Context, fn func(ctx context.Context, repo repository.FieldActivityRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, NewFieldActivityRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
