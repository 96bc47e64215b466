package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// directory guarda todo en mapas; Run deshace usuarios y perfiles si fn falla.
type directory struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	farmers    map[string]*entity.Farmer
	brigadiers map[string]*entity.Brigadier
	contours   map[string]*entity.Contour
	products   map[string]*entity.Product
	contracts  map[string]*entity.Contract
	ledger     []*entity.TransactionDetail
}

func newDirectory() *directory {
	return &directory{
		users:      map[string]*entity.User{},
		farmers:    map[string]*entity.Farmer{},
		brigadiers: map[string]*entity.Brigadier{},
		contours:   map[string]*entity.Contour{},
		products:   map[string]*entity.Product{},
		contracts:  map[string]*entity.Contract{},
	}
}

func (d *directory) Run(ctx context.Context, fn func(ctx context.Context, r warehouse.TxRepos) error) error {
	users := make(map[string]*entity.User, len(d.users))
	for k, v := range d.users {
		users[k] = v
	}
	farmers := make(map[string]*entity.Farmer, len(d.farmers))
	for k, v := range d.farmers {
		farmers[k] = v
	}
	brigadiers := make(map[string]*entity.Brigadier, len(d.brigadiers))
	for k, v := range d.brigadiers {
		brigadiers[k] = v
	}
	err := fn(ctx, warehouse.TxRepos{
		Users:      userRepo{d},
		Farmers:    farmerRepo{d},
		Brigadiers: brigadierRepo{d},
		Products:   productRepo{d},
	})
	if err != nil {
		d.mu.Lock()
		d.users, d.farmers, d.brigadiers = users, farmers, brigadiers
		d.mu.Unlock()
	}
	return err
}

type userRepo struct{ d *directory }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, e := range r.d.users {
		if e.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.d.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if u, ok := r.d.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListByRoles(_ context.Context, roles ...entity.Role) ([]*entity.User, error) {
	return nil, nil
}

func (r userRepo) List(context.Context) ([]*entity.User, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := make([]*entity.User, 0, len(r.d.users))
	for _, u := range r.d.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.d.users {
		if e.ID != u.ID && e.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.d.users[u.ID] = &cp
	return nil
}

// Delete imita la clave foránea de farmers y brigadiers.
func (r userRepo) Delete(_ context.Context, id string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.users[id]; !ok {
		return domain.ErrNotFound
	}
	for _, f := range r.d.farmers {
		if f.UserID == id {
			return domain.ErrConflict
		}
	}
	for _, b := range r.d.brigadiers {
		if b.UserID == id {
			return domain.ErrConflict
		}
	}
	delete(r.d.users, id)
	return nil
}

type farmerRepo struct{ d *directory }

func (r farmerRepo) Create(_ context.Context, f *entity.Farmer) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, e := range r.d.farmers {
		if e.INN == f.INN {
			return domain.ErrDuplicate
		}
	}
	cp := *f
	r.d.farmers[f.ID] = &cp
	return nil
}

func (r farmerRepo) GetByID(_ context.Context, id string) (*entity.Farmer, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.farmers[id], nil
}

func (r farmerRepo) GetByINN(_ context.Context, inn string) (*entity.Farmer, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, f := range r.d.farmers {
		if f.INN == inn {
			return f, nil
		}
	}
	return nil, nil
}

func (r farmerRepo) GetByUserID(_ context.Context, userID string) (*entity.Farmer, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, f := range r.d.farmers {
		if f.UserID == userID {
			return f, nil
		}
	}
	return nil, nil
}

func (r farmerRepo) Update(_ context.Context, f *entity.Farmer) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.farmers[f.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.d.farmers {
		if e.ID != f.ID && e.INN == f.INN {
			return domain.ErrDuplicate
		}
	}
	cp := *f
	r.d.farmers[f.ID] = &cp
	return nil
}

func (r farmerRepo) List(context.Context) ([]*entity.Farmer, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := make([]*entity.Farmer, 0, len(r.d.farmers))
	for _, f := range r.d.farmers {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName() < out[j].DisplayName() })
	return out, nil
}

type brigadierRepo struct{ d *directory }

func (r brigadierRepo) Create(_ context.Context, b *entity.Brigadier) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	cp := *b
	r.d.brigadiers[b.ID] = &cp
	return nil
}

func (r brigadierRepo) profile(b *entity.Brigadier) *entity.BrigadierProfile {
	p := &entity.BrigadierProfile{Brigadier: *b}
	if u := r.d.users[b.UserID]; u != nil {
		p.FullName, p.Username = u.FullName, u.Username
	}
	return p
}

func (r brigadierRepo) GetByID(_ context.Context, id string) (*entity.BrigadierProfile, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if b, ok := r.d.brigadiers[id]; ok {
		return r.profile(b), nil
	}
	return nil, nil
}

func (r brigadierRepo) GetByUserID(_ context.Context, userID string) (*entity.BrigadierProfile, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, b := range r.d.brigadiers {
		if b.UserID == userID {
			return r.profile(b), nil
		}
	}
	return nil, nil
}

func (r brigadierRepo) List(context.Context) ([]*entity.BrigadierProfile, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := make([]*entity.BrigadierProfile, 0, len(r.d.brigadiers))
	for _, b := range r.d.brigadiers {
		out = append(out, r.profile(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type contourRepo struct{ d *directory }

func (r contourRepo) Create(_ context.Context, c *entity.Contour) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, e := range r.d.contours {
		if e.Number == c.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.d.contours[c.ID] = &cp
	return nil
}

func (r contourRepo) GetByID(_ context.Context, id string) (*entity.Contour, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if c, ok := r.d.contours[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r contourRepo) List(_ context.Context, brigadierID string) ([]*entity.Contour, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var out []*entity.Contour
	for _, c := range r.d.contours {
		if brigadierID != "" && (c.BrigadierID == nil || *c.BrigadierID != brigadierID) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r contourRepo) AssignBrigadier(_ context.Context, id string, brigadierID *string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	c, ok := r.d.contours[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.BrigadierID = brigadierID
	return nil
}

type contractRepo struct{ d *directory }

func (r contractRepo) Upsert(_ context.Context, c *entity.Contract) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, e := range r.d.contracts {
		if e.FarmerID == c.FarmerID && e.Year == c.Year {
			c.ID, c.CreatedAt = e.ID, e.CreatedAt
		}
	}
	cp := *c
	r.d.contracts[c.ID] = &cp
	return nil
}

func (r contractRepo) ListByFarmer(_ context.Context, farmerID string) ([]*entity.Contract, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var out []*entity.Contract
	for _, c := range r.d.contracts {
		if c.FarmerID == farmerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

// ledgerRepo solo lectura: List filtra por fermer o brigadier, fecha descendente.
type ledgerRepo struct{ d *directory }

func (r ledgerRepo) Create(context.Context, *entity.Transaction) error { return domain.ErrConflict }

func (r ledgerRepo) GetByID(context.Context, string) (*entity.TransactionDetail, error) {
	return nil, nil
}

func (r ledgerRepo) ListByBatch(context.Context, string) ([]*entity.TransactionDetail, error) {
	return nil, nil
}

func (r ledgerRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.TransactionDetail, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	var out []*entity.TransactionDetail
	for _, t := range r.d.ledger {
		if f.FarmerID != "" && (t.FarmerID == nil || *t.FarmerID != f.FarmerID) {
			continue
		}
		if f.BrigadierID != "" && (t.BrigadierID == nil || *t.BrigadierID != f.BrigadierID) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r ledgerRepo) TotalsByType(context.Context, string, string) (map[entity.TransactionType]decimal.Decimal, error) {
	return nil, nil
}

type productRepo struct{ d *directory }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, e := range r.d.products {
		if e.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.d.products[p.ID] = &cp
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	return r.d.products[id], nil
}

func (r productRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, p := range r.d.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r productRepo) List(context.Context) ([]*entity.Product, error) {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.d.products))
	for _, p := range r.d.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r productRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	all, _ := r.List(ctx)
	var out []*entity.Product
	for _, p := range all {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) AdjustStock(context.Context, string, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, domain.ErrConflict
}

func (r productRepo) SetStock(context.Context, string, decimal.Decimal) error {
	return domain.ErrConflict
}

type invalidations struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (c *invalidations) Get(context.Context, string, any) (bool, error) { return false, nil }

func (c *invalidations) Set(context.Context, string, any, time.Duration) error { return nil }

func (c *invalidations) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = append(c.keys, keys...)
	return c.err
}
