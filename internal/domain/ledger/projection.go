package ledger

import (
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CentralStock reconstruye el stock central de un producto a partir de los totales por tipo.
// ADJUSTMENT no participa.
func CentralStock(totals map[entity.TransactionType]decimal.Decimal) decimal.Decimal {
	return totals[entity.TransactionIN].
		Sub(totals[entity.TransactionOUT]).
		Sub(totals[entity.TransactionTRANSFER])
}

// BrigadierStock reconstruye el saldo de una reserva: lo transferido menos lo consumido.
func BrigadierStock(totals map[entity.TransactionType]decimal.Decimal) decimal.Decimal {
	return totals[entity.TransactionTRANSFER].Sub(totals[entity.TransactionCONSUMPTION])
}
