package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StageProgressRow superficie total y completada por etapa.
type StageProgressRow struct {
	StageID       string
	StageName     string
	StageOrder    int
	CompletedArea decimal.Decimal
}

// MonitoringRepository agregados de solo lectura para el tablero.
type MonitoringRepository interface {
	TotalContourArea(ctx context.Context) (decimal.Decimal, error)
	StageProgress(ctx context.Context) ([]StageProgressRow, error)
	// InboundTotals total histórico de entradas por producto.
	InboundTotals(ctx context.Context) (map[string]decimal.Decimal, error)
}
