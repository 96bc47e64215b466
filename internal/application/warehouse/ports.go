package warehouse

import (
	"context"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products        repository.ProductRepository
	Transactions    repository.TransactionRepository
	BrigadierStocks repository.BrigadierStockRepository
	Waybills        repository.WaybillRepository
	Farmers         repository.FarmerRepository
	Users           repository.UserRepository
	Brigadiers      repository.BrigadierRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Garantiza que un lote se asiente completo o no se asiente.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r TxRepos) error) error
}

// Readers repositorios de solo lectura fuera de transacción (prevalidación y consultas).
type Readers struct {
	Products        repository.ProductRepository
	Transactions    repository.TransactionRepository
	BrigadierStocks repository.BrigadierStockRepository
	Waybills        repository.WaybillRepository
	Farmers         repository.FarmerRepository
	Brigadiers      repository.BrigadierRepository
	Contours        repository.ContourRepository
}

// EventDispatcher entrega avisos sin bloquear (ver notify.Dispatcher).
type EventDispatcher interface {
	Dispatch(ev ports.AdminEvent)
}
