package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// AdjustStock suma delta al stock central y devuelve el nuevo saldo.
	// Falla con domain.ErrInsufficientStock si el saldo quedaría negativo.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// SetStock reescribe la proyección cacheada (solo conciliación).
	SetStock(ctx context.Context, id string, qty decimal.Decimal) error
}
