package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de asiento del libro de inventario.
type TransactionType string

// Tipos de transacción.
const (
	TransactionIN          TransactionType = "IN"          // entrada al almacén central
	TransactionOUT         TransactionType = "OUT"         // salida a fermer o externo
	TransactionTRANSFER    TransactionType = "TRANSFER"    // almacén -> reserva del brigadier
	TransactionCONSUMPTION TransactionType = "CONSUMPTION" // reserva del brigadier -> campo
	TransactionADJUSTMENT  TransactionType = "ADJUSTMENT"
)

// Valid indica si el tipo es conocido.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIN, TransactionOUT, TransactionTRANSFER, TransactionCONSUMPTION, TransactionADJUSTMENT:
		return true
	}
	return false
}

// Transaction asiento inmutable del libro. Nunca se actualiza ni se borra.
type Transaction struct {
	ID          string
	Type        TransactionType
	Amount      decimal.Decimal
	ProductID   string
	FarmerID    *string
	BrigadierID *string
	ContourID   *string
	BatchNumber *string // etiqueta libre de sublote
	BatchID     string  // agrupa las líneas de una misma operación
	Description *string
	CreatedByID string
	Date        time.Time
	WaybillID   *string
}

// TransactionDetail asiento con los nombres de sus referencias, para listados y documentos.
type TransactionDetail struct {
	Transaction
	ProductName   string
	ProductUnit   Unit
	FarmerName    *string
	BrigadierName *string
	WaybillNumber *string
	CreatedByName string
}
