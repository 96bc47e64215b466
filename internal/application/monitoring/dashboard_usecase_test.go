package monitoring_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/navbahor-erp/internal/application/monitoring"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type products []*entity.Product

func (p products) Create(context.Context, *entity.Product) error                 { return nil }
func (p products) GetByID(context.Context, string) (*entity.Product, error)      { return nil, nil }
func (p products) GetByName(context.Context, string) (*entity.Product, error)    { return nil, nil }
func (p products) List(context.Context) ([]*entity.Product, error)               { return p, nil }
func (p products) ListLowStock(context.Context) ([]*entity.Product, error)       { return nil, nil }
func (p products) GetForUpdate(context.Context, string) (*entity.Product, error) { return nil, nil }
func (p products) SetStock(context.Context, string, decimal.Decimal) error       { return nil }
func (p products) AdjustStock(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type ledger struct {
	recent []*entity.TransactionDetail
	limit  int
}

func (l *ledger) Create(context.Context, *entity.Transaction) error { return nil }
func (l *ledger) GetByID(context.Context, string) (*entity.TransactionDetail, error) {
	return nil, nil
}
func (l *ledger) ListByBatch(context.Context, string) ([]*entity.TransactionDetail, error) {
	return nil, nil
}
func (l *ledger) List(_ context.Context, f repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	l.limit = f.Limit
	return l.recent, nil
}
func (l *ledger) TotalsByType(context.Context, string, string) (map[entity.TransactionType]decimal.Decimal, error) {
	return nil, nil
}

type aggregates struct {
	area   decimal.Decimal
	stages []repository.StageProgressRow
	in     map[string]decimal.Decimal
	err    error
}

func (a aggregates) TotalContourArea(context.Context) (decimal.Decimal, error) { return a.area, nil }
func (a aggregates) StageProgress(context.Context) ([]repository.StageProgressRow, error) {
	return a.stages, a.err
}
func (a aggregates) InboundTotals(context.Context) (map[string]decimal.Decimal, error) {
	return a.in, nil
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestGetSummary(t *testing.T) {
	ps := products{
		{ID: "p1", Name: "Ammiakli selitra", Unit: entity.UnitKG, CurrentStock: d(25), MinStockAlert: d(30)},
		{ID: "p2", Name: "Karbamid", Unit: entity.UnitKG, CurrentStock: d(80), MinStockAlert: d(10)},
		{ID: "p3", Name: "Yangi", Unit: entity.UnitLITER, CurrentStock: d(0)},
	}
	agg := aggregates{
		area: d(200),
		stages: []repository.StageProgressRow{
			{StageID: "s1", StageName: "Shudgor", StageOrder: 1, CompletedArea: d(50)},
			{StageID: "s2", StageName: "Ekish", StageOrder: 2, CompletedArea: d(0)},
		},
		in: map[string]decimal.Decimal{"p1": d(100), "p2": d(40)},
	}
	l := &ledger{recent: []*entity.TransactionDetail{{ProductName: "Karbamid"}}}
	uc := monitoring.NewDashboardUseCase(ps, l, agg, nil, zerolog.Nop())

	out, err := uc.GetSummary(context.Background(), access.Actor{UserID: "m", Role: entity.RoleMonitor})
	require.NoError(t, err)

	require.Len(t, out.Inventory, 3)
	assert.True(t, out.Inventory[0].PeakStock.Equal(d(100)))
	assert.Equal(t, "25", out.Inventory[0].Percent.String())
	assert.True(t, out.Inventory[0].LowStock)
	// el stock actual supera las entradas registradas
	assert.True(t, out.Inventory[1].PeakStock.Equal(d(80)))
	assert.True(t, out.Inventory[2].PeakStock.Equal(d(1)))
	assert.True(t, out.Inventory[2].LowStock)
	assert.Equal(t, 2, out.LowStockCount)

	require.Len(t, out.Stages, 2)
	assert.Equal(t, "25", out.Stages[0].Percent.String())
	assert.True(t, out.Stages[1].Percent.IsZero())
	assert.Len(t, out.Recent, 1)
	assert.Equal(t, 5, l.limit)
}

func TestGetSummary_AccessAndErrors(t *testing.T) {
	uc := monitoring.NewDashboardUseCase(products{}, &ledger{}, aggregates{err: errors.New("db caída")}, nil, zerolog.Nop())

	_, err := uc.GetSummary(context.Background(), access.Actor{UserID: "w", Role: entity.RoleWarehouseman})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetSummary(context.Background(), access.Actor{UserID: "a", Role: entity.RoleDirector})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etapas")
}

func TestPercent(t *testing.T) {
	assert.True(t, monitoring.Percent(d(1), d(0)).IsZero())
	assert.Equal(t, "33.3", monitoring.Percent(d(1), d(3)).String())
}
