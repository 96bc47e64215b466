package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TransactionFilter filtros opcionales del listado del libro.
type TransactionFilter struct {
	ProductID   string
	FarmerID    string
	BrigadierID string
	BatchID     string
	Type        entity.TransactionType
	Limit       int
}

// TransactionRepository libro de asientos: solo inserción y lectura.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.TransactionDetail, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.TransactionDetail, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionDetail, error)
	// TotalsByType suma de cantidades por tipo; brigadierID vacío = todos los asientos del producto.
	TotalsByType(ctx context.Context, productID, brigadierID string) (map[entity.TransactionType]decimal.Decimal, error)
}
