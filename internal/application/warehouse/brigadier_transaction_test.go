package warehouse_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrigadier_TransferThenConsume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type:        entity.TransactionIN,
		BrigadierID: f.brigadierID,
		Items:       []warehouse.LineItem{item(f.selitra, 20)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTRANSFER, res.Type)
	assert.NotEmpty(t, res.WaybillID)
	assert.True(t, f.stock(f.selitra).Equal(dec(80)))
	got, _ := f.pool(f.selitra)
	assert.True(t, got.Equal(dec(20)))

	res, err = f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type:        entity.TransactionOUT,
		BrigadierID: f.brigadierID,
		ContourID:   f.contourID,
		Items:       []warehouse.LineItem{item(f.selitra, 15)},
		Description: "12-kontur",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionCONSUMPTION, res.Type)
	assert.Empty(t, res.WaybillID)
	got, _ = f.pool(f.selitra)
	assert.True(t, got.Equal(dec(5)))
	assert.True(t, f.stock(f.selitra).Equal(dec(80)))

	last := f.store.txs[len(f.store.txs)-1]
	require.NotNil(t, last.ContourID)
	assert.Equal(t, f.contourID, *last.ContourID)
	assert.Nil(t, last.WaybillID)
	assert.Len(t, f.store.waybills, 1)
}

func TestBrigadier_ConsumeWithoutPoolRow(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateBrigadierTransaction(context.Background(), f.brigadierAct, warehouse.BrigadierInput{
		Type:        entity.TransactionCONSUMPTION,
		BrigadierID: f.brigadierID,
		Items:       []warehouse.LineItem{item(f.karbamid, 10)},
	})
	require.ErrorIs(t, err, domain.ErrBrigadierStockInsufficient)
	assert.Contains(t, err.Error(), "Karbamid")
	assert.Empty(t, f.store.txs)
	_, ok := f.pool(f.karbamid)
	assert.False(t, ok)
}

func TestBrigadier_ConsumeMoreThanHeld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionTRANSFER, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.karbamid, 5)},
	})
	require.NoError(t, err)

	_, err = f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionCONSUMPTION, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.karbamid, 6)},
	})
	require.ErrorIs(t, err, domain.ErrBrigadierStockInsufficient)
	got, _ := f.pool(f.karbamid)
	assert.True(t, got.Equal(dec(5)))
}

func TestBrigadier_ZeroBalanceHiddenButKept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, typ := range []entity.TransactionType{entity.TransactionIN, entity.TransactionOUT} {
		_, err := f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
			Type: typ, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.karbamid, 4)},
		})
		require.NoError(t, err)
	}

	inv, err := f.svc.GetBrigadierInventory(ctx, f.brigadierAct, f.brigadierID)
	require.NoError(t, err)
	assert.Empty(t, inv)
	got, ok := f.pool(f.karbamid)
	assert.True(t, ok)
	assert.True(t, got.IsZero())

	// Una nueva entrega reutiliza la misma fila.
	_, err = f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionIN, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.karbamid, 3)},
	})
	require.NoError(t, err)
	assert.Len(t, f.store.stocks, 1)
}

func TestBrigadier_Ownership(t *testing.T) {
	f := newFixture(t)
	in := warehouse.BrigadierInput{
		Type: entity.TransactionIN, BrigadierID: uuid.NewString(), Items: []warehouse.LineItem{item(f.selitra, 1)},
	}
	_, err := f.svc.CreateBrigadierTransaction(context.Background(), f.brigadierAct, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.CreateBrigadierTransaction(context.Background(), f.warehouseman, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	root := access.Actor{UserID: uuid.NewString(), Role: entity.RoleSuperAdmin}
	_, err = f.svc.CreateBrigadierTransaction(context.Background(), root, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrigadier_TransferInsufficientCentral(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateBrigadierTransaction(context.Background(), f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionTRANSFER, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.diesel, 1)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.store.waybills)
}

func TestBrigadier_UnknownContour(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateBrigadierTransaction(context.Background(), f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionTRANSFER, BrigadierID: f.brigadierID, ContourID: uuid.NewString(),
		Items: []warehouse.LineItem{item(f.selitra, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrigadier_InvariantsAfterMixedSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ops := []struct {
		typ    entity.TransactionType
		amount int64
	}{
		{entity.TransactionIN, 30}, {entity.TransactionOUT, 10}, {entity.TransactionOUT, 25},
		{entity.TransactionIN, 80}, {entity.TransactionOUT, 20}, {entity.TransactionOUT, 1},
	}
	for _, op := range ops {
		_, _ = f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
			Type: op.typ, BrigadierID: f.brigadierID, Items: []warehouse.LineItem{item(f.selitra, op.amount)},
		})
	}
	assert.False(t, f.stock(f.selitra).IsNegative())
	got, _ := f.pool(f.selitra)
	assert.False(t, got.IsNegative())

	// Conservación: lo que salió del almacén está en la reserva o consumido.
	totals, err := f.store.readers().Transactions.TotalsByType(ctx, f.selitra, f.brigadierID)
	require.NoError(t, err)
	assert.True(t, dec(100).Sub(f.stock(f.selitra)).Equal(totals[entity.TransactionTRANSFER]))
	assert.True(t, got.Equal(totals[entity.TransactionTRANSFER].Sub(totals[entity.TransactionCONSUMPTION])))
}

func TestBrigadier_PoolRowsTouchedInProductOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	items := []warehouse.LineItem{item(f.selitra, 4), item(f.karbamid, 4)}
	_, err := f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
		Type: entity.TransactionTRANSFER, BrigadierID: f.brigadierID, Items: items,
	})
	require.NoError(t, err)

	want := []string{f.selitra, f.karbamid}
	if f.karbamid < f.selitra {
		want = []string{f.karbamid, f.selitra}
	}
	for _, order := range [][]warehouse.LineItem{
		{item(f.selitra, 1), item(f.karbamid, 1)},
		{item(f.karbamid, 1), item(f.selitra, 1)},
	} {
		f.store.poolOps = nil
		res, err := f.svc.CreateBrigadierTransaction(ctx, f.brigadierAct, warehouse.BrigadierInput{
			Type: entity.TransactionCONSUMPTION, BrigadierID: f.brigadierID, Items: order,
		})
		require.NoError(t, err)
		assert.Equal(t, want, f.store.poolOps)
		// los asientos conservan el orden de la petición
		require.Len(t, res.TransactionIDs, 2)
		assert.Equal(t, order[0].ProductID, f.store.txs[len(f.store.txs)-2].ProductID)
	}
	got, _ := f.pool(f.selitra)
	assert.True(t, got.Equal(dec(2)))
}
