package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contour parcela de tierra (kontur) con su superficie en hectáreas.
type Contour struct {
	ID          string
	Number      string
	Name        string
	Area        decimal.Decimal
	BrigadierID *string
	CreatedAt   time.Time
}
