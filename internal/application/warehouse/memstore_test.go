package warehouse_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/ledger"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// memStore almacén en memoria con semántica transaccional: Run serializa las transacciones
// y restaura la instantánea previa si fn devuelve error.
type memStore struct {
	mu         sync.Mutex
	users      map[string]entity.User
	farmers    map[string]entity.Farmer
	brigadiers map[string]entity.Brigadier
	contours   map[string]entity.Contour
	products   map[string]entity.Product
	stocks     map[string]entity.BrigadierStock
	txs        []entity.Transaction
	waybills   []entity.Waybill

	// beforeTxCreate permite inyectar fallos a mitad del lote.
	beforeTxCreate func(t *entity.Transaction) error
	// poolOps productos de cada Add/Consume sobre reservas, en orden de llamada.
	poolOps []string
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]entity.User{},
		farmers:    map[string]entity.Farmer{},
		brigadiers: map[string]entity.Brigadier{},
		contours:   map[string]entity.Contour{},
		products:   map[string]entity.Product{},
		stocks:     map[string]entity.BrigadierStock{},
	}
}

type snapshot struct {
	users      map[string]entity.User
	farmers    map[string]entity.Farmer
	brigadiers map[string]entity.Brigadier
	contours   map[string]entity.Contour
	products   map[string]entity.Product
	stocks     map[string]entity.BrigadierStock
	txs        []entity.Transaction
	waybills   []entity.Waybill
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() snapshot {
	return snapshot{
		users:      cloneMap(s.users),
		farmers:    cloneMap(s.farmers),
		brigadiers: cloneMap(s.brigadiers),
		contours:   cloneMap(s.contours),
		products:   cloneMap(s.products),
		stocks:     cloneMap(s.stocks),
		txs:        append([]entity.Transaction(nil), s.txs...),
		waybills:   append([]entity.Waybill(nil), s.waybills...),
	}
}

func (s *memStore) restore(sn snapshot) {
	s.users, s.farmers, s.brigadiers, s.contours = sn.users, sn.farmers, sn.brigadiers, sn.contours
	s.products, s.stocks, s.txs, s.waybills = sn.products, sn.stocks, sn.txs, sn.waybills
}

// Run implementa warehouse.TxRunner.
func (s *memStore) Run(ctx context.Context, fn func(ctx context.Context, r warehouse.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn := s.snapshot()
	v := &view{s: s, inTx: true}
	if err := fn(ctx, v.txRepos()); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}

func (s *memStore) readers() warehouse.Readers {
	v := &view{s: s}
	return warehouse.Readers{
		Products: v, Transactions: txView{v}, BrigadierStocks: stockView{v}, Waybills: waybillView{v},
		Farmers: farmerView{v}, Brigadiers: brigadierView{v}, Contours: contourView{v},
	}
}

// view accede al store; fuera de una transacción toma el mutex en cada llamada.
type view struct {
	s    *memStore
	inTx bool
}

func (v *view) guard() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

func (v *view) txRepos() warehouse.TxRepos {
	return warehouse.TxRepos{
		Products: v, Transactions: txView{v}, BrigadierStocks: stockView{v}, Waybills: waybillView{v},
		Farmers: farmerView{v}, Users: userView{v}, Brigadiers: brigadierView{v},
	}
}

// ── productos ────────────────────────────────────────────────────────────────

func (v *view) Create(_ context.Context, p *entity.Product) error {
	defer v.guard()()
	for _, x := range v.s.products {
		if x.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	v.s.products[p.ID] = *p
	return nil
}

func (v *view) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer v.guard()()
	p, ok := v.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (v *view) GetByName(_ context.Context, name string) (*entity.Product, error) {
	defer v.guard()()
	for _, p := range v.s.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, nil
}

func (v *view) List(_ context.Context) ([]*entity.Product, error) {
	defer v.guard()()
	out := make([]*entity.Product, 0, len(v.s.products))
	for _, p := range v.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v *view) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	all, _ := v.List(ctx)
	var out []*entity.Product
	for _, p := range all {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (v *view) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return v.GetByID(ctx, id)
}

func (v *view) AdjustStock(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	defer v.guard()()
	p, ok := v.s.products[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next := p.CurrentStock.Add(delta)
	if next.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	p.CurrentStock = next
	v.s.products[id] = p
	return next, nil
}

func (v *view) SetStock(_ context.Context, id string, qty decimal.Decimal) error {
	defer v.guard()()
	p := v.s.products[id]
	p.CurrentStock = qty
	v.s.products[id] = p
	return nil
}

// ── asientos ─────────────────────────────────────────────────────────────────

type txView struct{ v *view }

func (t txView) Create(_ context.Context, tx *entity.Transaction) error {
	defer t.v.guard()()
	if hook := t.v.s.beforeTxCreate; hook != nil {
		if err := hook(tx); err != nil {
			return err
		}
	}
	t.v.s.txs = append(t.v.s.txs, *tx)
	return nil
}

func (t txView) detail(tx entity.Transaction) *entity.TransactionDetail {
	d := &entity.TransactionDetail{Transaction: tx}
	if p, ok := t.v.s.products[tx.ProductID]; ok {
		d.ProductName, d.ProductUnit = p.Name, p.Unit
	}
	return d
}

func (t txView) GetByID(_ context.Context, id string) (*entity.TransactionDetail, error) {
	defer t.v.guard()()
	for _, tx := range t.v.s.txs {
		if tx.ID == id {
			return t.detail(tx), nil
		}
	}
	return nil, nil
}

func (t txView) ListByBatch(_ context.Context, batchID string) ([]*entity.TransactionDetail, error) {
	defer t.v.guard()()
	var out []*entity.TransactionDetail
	for _, tx := range t.v.s.txs {
		if tx.BatchID == batchID {
			out = append(out, t.detail(tx))
		}
	}
	return out, nil
}

func (t txView) List(_ context.Context, f repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	defer t.v.guard()()
	var out []*entity.TransactionDetail
	for i := len(t.v.s.txs) - 1; i >= 0; i-- {
		tx := t.v.s.txs[i]
		if f.ProductID != "" && tx.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if f.BatchID != "" && tx.BatchID != f.BatchID {
			continue
		}
		if f.BrigadierID != "" && (tx.BrigadierID == nil || *tx.BrigadierID != f.BrigadierID) {
			continue
		}
		if f.FarmerID != "" && (tx.FarmerID == nil || *tx.FarmerID != f.FarmerID) {
			continue
		}
		out = append(out, t.detail(tx))
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (t txView) TotalsByType(_ context.Context, productID, brigadierID string) (map[entity.TransactionType]decimal.Decimal, error) {
	defer t.v.guard()()
	out := map[entity.TransactionType]decimal.Decimal{}
	for _, tx := range t.v.s.txs {
		if tx.ProductID != productID {
			continue
		}
		if brigadierID != "" && (tx.BrigadierID == nil || *tx.BrigadierID != brigadierID) {
			continue
		}
		out[tx.Type] = out[tx.Type].Add(tx.Amount)
	}
	return out, nil
}

// ── reservas de brigadier ────────────────────────────────────────────────────

type stockView struct{ v *view }

func stockKey(b, p string) string { return b + "|" + p }

func (sv stockView) Get(_ context.Context, b, p string) (*entity.BrigadierStock, error) {
	defer sv.v.guard()()
	bs, ok := sv.v.s.stocks[stockKey(b, p)]
	if !ok {
		return nil, nil
	}
	return &bs, nil
}

func (sv stockView) Add(_ context.Context, b, p string, amount decimal.Decimal) (decimal.Decimal, error) {
	defer sv.v.guard()()
	sv.v.s.poolOps = append(sv.v.s.poolOps, p)
	k := stockKey(b, p)
	bs, ok := sv.v.s.stocks[k]
	if !ok {
		bs = entity.BrigadierStock{ID: k, BrigadierID: b, ProductID: p}
	}
	bs.Amount = bs.Amount.Add(amount)
	sv.v.s.stocks[k] = bs
	return bs.Amount, nil
}

func (sv stockView) Consume(_ context.Context, b, p string, amount decimal.Decimal) (decimal.Decimal, error) {
	defer sv.v.guard()()
	sv.v.s.poolOps = append(sv.v.s.poolOps, p)
	k := stockKey(b, p)
	bs, ok := sv.v.s.stocks[k]
	if !ok || bs.Amount.LessThan(amount) {
		return decimal.Zero, domain.ErrBrigadierStockInsufficient
	}
	bs.Amount = bs.Amount.Sub(amount)
	sv.v.s.stocks[k] = bs
	return bs.Amount, nil
}

func (sv stockView) ListByBrigadier(_ context.Context, b string, positiveOnly bool) ([]*entity.BrigadierStockItem, error) {
	defer sv.v.guard()()
	var out []*entity.BrigadierStockItem
	for _, bs := range sv.v.s.stocks {
		if bs.BrigadierID != b || (positiveOnly && !bs.Amount.IsPositive()) {
			continue
		}
		p := sv.v.s.products[bs.ProductID]
		out = append(out, &entity.BrigadierStockItem{BrigadierStock: bs, ProductName: p.Name, ProductUnit: p.Unit})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (sv stockView) SetAmount(_ context.Context, b, p string, amount decimal.Decimal) error {
	defer sv.v.guard()()
	k := stockKey(b, p)
	bs := sv.v.s.stocks[k]
	bs.Amount = amount
	sv.v.s.stocks[k] = bs
	return nil
}

// ── notas de despacho ────────────────────────────────────────────────────────

type waybillView struct{ v *view }

func (w waybillView) LockNumbering(context.Context) error { return nil }

// Last igual que el repositorio: mayor secuencia, sin mirar created_at ni el orden de inserción.
func (w waybillView) Last(_ context.Context) (*entity.Waybill, error) {
	defer w.v.guard()()
	var last *entity.Waybill
	best := -1
	for i := range w.v.s.waybills {
		seq, err := ledger.ParseWaybillSeq(w.v.s.waybills[i].Number)
		if err != nil {
			return nil, err
		}
		if seq > best {
			best, last = seq, &w.v.s.waybills[i]
		}
	}
	if last == nil {
		return nil, nil
	}
	out := *last
	return &out, nil
}

func (w waybillView) Create(_ context.Context, wb *entity.Waybill) error {
	defer w.v.guard()()
	for _, x := range w.v.s.waybills {
		if x.Number == wb.Number {
			return domain.ErrDuplicate
		}
	}
	w.v.s.waybills = append(w.v.s.waybills, *wb)
	return nil
}

func (w waybillView) GetByID(_ context.Context, id string) (*entity.Waybill, error) {
	defer w.v.guard()()
	for _, x := range w.v.s.waybills {
		if x.ID == id {
			return &x, nil
		}
	}
	return nil, nil
}

// ── fermers, usuarios, brigadieres, contornos ───────────────────────────────

type farmerView struct{ v *view }

func (f farmerView) Create(_ context.Context, fm *entity.Farmer) error {
	defer f.v.guard()()
	for _, x := range f.v.s.farmers {
		if x.INN == fm.INN {
			return domain.ErrDuplicate
		}
	}
	f.v.s.farmers[fm.ID] = *fm
	return nil
}

func (f farmerView) find(match func(entity.Farmer) bool) (*entity.Farmer, error) {
	defer f.v.guard()()
	for _, x := range f.v.s.farmers {
		if match(x) {
			return &x, nil
		}
	}
	return nil, nil
}

func (f farmerView) GetByID(_ context.Context, id string) (*entity.Farmer, error) {
	return f.find(func(x entity.Farmer) bool { return x.ID == id })
}

func (f farmerView) GetByINN(_ context.Context, inn string) (*entity.Farmer, error) {
	return f.find(func(x entity.Farmer) bool { return x.INN == inn })
}

func (f farmerView) GetByUserID(_ context.Context, userID string) (*entity.Farmer, error) {
	return f.find(func(x entity.Farmer) bool { return x.UserID == userID })
}

func (f farmerView) Update(_ context.Context, fm *entity.Farmer) error {
	defer f.v.guard()()
	if _, ok := f.v.s.farmers[fm.ID]; !ok {
		return domain.ErrNotFound
	}
	f.v.s.farmers[fm.ID] = *fm
	return nil
}

func (f farmerView) List(_ context.Context) ([]*entity.Farmer, error) {
	defer f.v.guard()()
	var out []*entity.Farmer
	for _, x := range f.v.s.farmers {
		x := x
		out = append(out, &x)
	}
	return out, nil
}

type userView struct{ v *view }

func (u userView) Create(_ context.Context, us *entity.User) error {
	defer u.v.guard()()
	for _, x := range u.v.s.users {
		if x.Username == us.Username {
			return domain.ErrDuplicate
		}
	}
	u.v.s.users[us.ID] = *us
	return nil
}

func (u userView) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer u.v.guard()()
	x, ok := u.v.s.users[id]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

func (u userView) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	defer u.v.guard()()
	for _, x := range u.v.s.users {
		if x.Username == username {
			return &x, nil
		}
	}
	return nil, nil
}

func (u userView) ListByRoles(_ context.Context, roles ...entity.Role) ([]*entity.User, error) {
	defer u.v.guard()()
	var out []*entity.User
	for _, x := range u.v.s.users {
		for _, r := range roles {
			if x.Role == r {
				x := x
				out = append(out, &x)
				break
			}
		}
	}
	return out, nil
}

func (u userView) List(ctx context.Context) ([]*entity.User, error) {
	return u.ListByRoles(ctx, entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleDirector, entity.RoleWarehouseman,
		entity.RoleAgronomist, entity.RoleBrigadier, entity.RoleFarmer, entity.RoleMonitor)
}

func (u userView) Update(_ context.Context, us *entity.User) error {
	defer u.v.guard()()
	if _, ok := u.v.s.users[us.ID]; !ok {
		return domain.ErrNotFound
	}
	u.v.s.users[us.ID] = *us
	return nil
}

func (u userView) Delete(_ context.Context, id string) error {
	defer u.v.guard()()
	delete(u.v.s.users, id)
	return nil
}

type brigadierView struct{ v *view }

func (b brigadierView) Create(_ context.Context, br *entity.Brigadier) error {
	defer b.v.guard()()
	b.v.s.brigadiers[br.ID] = *br
	return nil
}

func (b brigadierView) profile(br entity.Brigadier) *entity.BrigadierProfile {
	u := b.v.s.users[br.UserID]
	return &entity.BrigadierProfile{Brigadier: br, FullName: u.FullName, Username: u.Username}
}

func (b brigadierView) GetByID(_ context.Context, id string) (*entity.BrigadierProfile, error) {
	defer b.v.guard()()
	br, ok := b.v.s.brigadiers[id]
	if !ok {
		return nil, nil
	}
	return b.profile(br), nil
}

func (b brigadierView) GetByUserID(_ context.Context, userID string) (*entity.BrigadierProfile, error) {
	defer b.v.guard()()
	for _, br := range b.v.s.brigadiers {
		if br.UserID == userID {
			return b.profile(br), nil
		}
	}
	return nil, nil
}

func (b brigadierView) List(_ context.Context) ([]*entity.BrigadierProfile, error) {
	defer b.v.guard()()
	var out []*entity.BrigadierProfile
	for _, br := range b.v.s.brigadiers {
		out = append(out, b.profile(br))
	}
	return out, nil
}

type contourView struct{ v *view }

func (c contourView) Create(_ context.Context, ct *entity.Contour) error {
	defer c.v.guard()()
	c.v.s.contours[ct.ID] = *ct
	return nil
}

func (c contourView) GetByID(_ context.Context, id string) (*entity.Contour, error) {
	defer c.v.guard()()
	ct, ok := c.v.s.contours[id]
	if !ok {
		return nil, nil
	}
	return &ct, nil
}

func (c contourView) List(_ context.Context, brigadierID string) ([]*entity.Contour, error) {
	defer c.v.guard()()
	var out []*entity.Contour
	for _, ct := range c.v.s.contours {
		if brigadierID == "" || (ct.BrigadierID != nil && *ct.BrigadierID == brigadierID) {
			ct := ct
			out = append(out, &ct)
		}
	}
	return out, nil
}

func (c contourView) AssignBrigadier(_ context.Context, id string, brigadierID *string) error {
	defer c.v.guard()()
	ct, ok := c.v.s.contours[id]
	if !ok {
		return domain.ErrNotFound
	}
	ct.BrigadierID = brigadierID
	c.v.s.contours[id] = ct
	return nil
}

var (
	_ warehouse.TxRunner                  = (*memStore)(nil)
	_ repository.ProductRepository        = (*view)(nil)
	_ repository.TransactionRepository    = txView{}
	_ repository.BrigadierStockRepository = stockView{}
	_ repository.WaybillRepository        = waybillView{}
	_ repository.FarmerRepository         = farmerView{}
	_ repository.UserRepository           = userView{}
	_ repository.BrigadierRepository      = brigadierView{}
	_ repository.ContourRepository        = contourView{}
)
