package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BrigadierStock saldo de un producto bajo custodia de un brigadier. Único por (brigadier, producto).
type BrigadierStock struct {
	ID          string
	BrigadierID string
	ProductID   string
	Amount      decimal.Decimal
	UpdatedAt   time.Time
}

// BrigadierStockItem saldo con los datos del producto para la vista del brigadier.
type BrigadierStockItem struct {
	BrigadierStock
	ProductName string
	ProductUnit Unit
}
