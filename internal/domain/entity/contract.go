package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus estado del contrato anual de un fermer.
type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractCompleted ContractStatus = "COMPLETED"
	ContractCancelled ContractStatus = "CANCELLED"
)

// Valid indica si el estado es conocido.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractCompleted, ContractCancelled:
		return true
	}
	return false
}

// Contract plan de entrega del fermer para una campaña. Uno por (fermer, año).
type Contract struct {
	ID         string
	FarmerID   string
	Year       int
	PlanAmount decimal.Decimal
	Status     ContractStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
