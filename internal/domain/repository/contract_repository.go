package repository

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// ContractRepository contratos anuales de los fermers.
type ContractRepository interface {
	// Upsert crea o actualiza el contrato del (fermer, año); devuelve la fila guardada en c.
	Upsert(ctx context.Context, c *entity.Contract) error
	// ListByFarmer contratos del fermer, del año más reciente al más antiguo.
	ListByFarmer(ctx context.Context, farmerID string) ([]*entity.Contract, error)
}
