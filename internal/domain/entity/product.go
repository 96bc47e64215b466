package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit unidad de medida de un producto.
type Unit string

// Unidades de medida admitidas.
const (
	UnitKG    Unit = "KG"
	UnitTON   Unit = "TON"
	UnitLITER Unit = "LITER"
	UnitGRAMM Unit = "GRAMM"
	UnitSACK  Unit = "SACK"
	UnitMETER Unit = "METER"
	UnitPIECE Unit = "PIECE"
)

// Valid indica si la unidad pertenece al catálogo cerrado.
func (u Unit) Valid() bool {
	switch u {
	case UnitKG, UnitTON, UnitLITER, UnitGRAMM, UnitSACK, UnitMETER, UnitPIECE:
		return true
	}
	return false
}

// Product producto del almacén central del clúster.
// CurrentStock es una proyección cacheada del libro de transacciones; solo lo modifica el orquestador.
type Product struct {
	ID            string
	Name          string
	Category      string
	Unit          Unit
	CurrentStock  decimal.Decimal
	MinStockAlert decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock central está en o por debajo del umbral de alerta.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinStockAlert)
}
