package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BrigadierStockRepository reserva por (brigadier, producto). Solo el orquestador la modifica.
type BrigadierStockRepository interface {
	// Get devuelve (nil, nil) si la fila no existe.
	Get(ctx context.Context, brigadierID, productID string) (*entity.BrigadierStock, error)
	// Add upsert: crea la fila si no existe y suma amount. Devuelve el nuevo saldo.
	Add(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) (decimal.Decimal, error)
	// Consume resta amount de una fila existente con saldo suficiente;
	// si no, domain.ErrBrigadierStockInsufficient.
	Consume(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) (decimal.Decimal, error)
	// ListByBrigadier saldos del brigadier; positiveOnly oculta las filas en cero.
	ListByBrigadier(ctx context.Context, brigadierID string, positiveOnly bool) ([]*entity.BrigadierStockItem, error)
	SetAmount(ctx context.Context, brigadierID, productID string, amount decimal.Decimal) error
}
