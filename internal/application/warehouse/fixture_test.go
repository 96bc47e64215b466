package warehouse_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/navbahor-erp/internal/application/numbering"
	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain/access"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)

type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *recordingCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}
func (c *recordingCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []ports.AdminEvent
}

func (e *recordingEvents) Dispatch(ev ports.AdminEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

type fixture struct {
	store  *memStore
	svc    *warehouse.Service
	cache  *recordingCache
	events *recordingEvents

	warehouseman access.Actor
	brigadierAct access.Actor

	brigadierID string
	farmerID    string
	contourID   string
	selitra     string // 100 TON
	karbamid    string // 50 TON
	diesel      string // 0 LITER
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	f := &fixture{store: s, cache: &recordingCache{}, events: &recordingEvents{}}

	whUser := entity.User{ID: uuid.NewString(), Username: "omborchi", FullName: "Omborchi", Role: entity.RoleWarehouseman}
	brUser := entity.User{ID: uuid.NewString(), Username: "brigadir1", FullName: "Karimov Jasur", Role: entity.RoleBrigadier}
	fmUser := entity.User{ID: uuid.NewString(), Username: "305000111", FullName: "Oltin Vodiy", Role: entity.RoleFarmer}
	for _, u := range []entity.User{whUser, brUser, fmUser} {
		s.users[u.ID] = u
	}

	f.brigadierID = uuid.NewString()
	s.brigadiers[f.brigadierID] = entity.Brigadier{ID: f.brigadierID, UserID: brUser.ID}
	f.farmerID = uuid.NewString()
	s.farmers[f.farmerID] = entity.Farmer{ID: f.farmerID, UserID: fmUser.ID, INN: "305000111", NI: "Oltin Vodiy"}
	f.contourID = uuid.NewString()
	s.contours[f.contourID] = entity.Contour{ID: f.contourID, Number: "12", Area: decimal.NewFromInt(40), BrigadierID: &f.brigadierID}

	f.selitra = f.addProduct("Ammiakli selitra", entity.UnitTON, 100)
	f.karbamid = f.addProduct("Karbamid", entity.UnitTON, 50)
	f.diesel = f.addProduct("Dizel yoqilg'isi", entity.UnitLITER, 0)

	f.warehouseman = access.Actor{UserID: whUser.ID, Role: entity.RoleWarehouseman}
	f.brigadierAct = access.Actor{UserID: brUser.ID, Role: entity.RoleBrigadier, BrigadierID: f.brigadierID}

	cfg := warehouse.DefaultConfig()
	cfg.HashPassword = func(p string) (string, error) { return "hash:" + p, nil }
	f.svc = warehouse.NewService(warehouse.Deps{
		TxRunner:  s,
		Readers:   s.readers(),
		Numbering: numbering.NewServiceWithClock(func() time.Time { return testNow }),
		Cache:     f.cache,
		Events:    f.events,
		Config:    cfg,
		Log:       zerolog.Nop(),
		Now:       func() time.Time { return testNow },
	})
	return f
}

func (f *fixture) addProduct(name string, unit entity.Unit, stock int64) string {
	id := uuid.NewString()
	f.store.products[id] = entity.Product{
		ID: id, Name: name, Unit: unit,
		CurrentStock: decimal.NewFromInt(stock), MinStockAlert: decimal.NewFromInt(10),
	}
	return id
}

func (f *fixture) stock(productID string) decimal.Decimal {
	return f.store.products[productID].CurrentStock
}

func (f *fixture) pool(productID string) (decimal.Decimal, bool) {
	bs, ok := f.store.stocks[stockKey(f.brigadierID, productID)]
	return bs.Amount, ok
}

func item(productID string, amount int64) warehouse.LineItem {
	return warehouse.LineItem{ProductID: productID, Amount: decimal.NewFromInt(amount)}
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
