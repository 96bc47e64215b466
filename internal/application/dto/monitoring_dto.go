package dto

import "github.com/shopspring/decimal"

// MonitoringDTO respuesta de GET /api/monitoring.
type MonitoringDTO struct {
	Inventory     []InventoryGaugeDTO   `json:"inventory"`
	LowStockCount int                   `json:"low_stock_count"`
	TotalArea     decimal.Decimal       `json:"total_area"`
	Stages        []StageProgressDTO    `json:"stages"`
	Recent        []TransactionResponse `json:"recent"`
}

// InventoryGaugeDTO nivel de un producto frente a su pico histórico.
type InventoryGaugeDTO struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	PeakStock     decimal.Decimal `json:"peak_stock"` // max(total IN, stock actual, 1)
	Percent       decimal.Decimal `json:"percent"`
	MinStockAlert decimal.Decimal `json:"min_stock_alert"`
	LowStock      bool            `json:"low_stock"`
}

// StageProgressDTO superficie completada de una etapa.
type StageProgressDTO struct {
	StageID       string          `json:"stage_id"`
	Name          string          `json:"name"`
	Order         int             `json:"order"`
	CompletedArea decimal.Decimal `json:"completed_area"`
	Percent       decimal.Decimal `json:"percent"`
}
