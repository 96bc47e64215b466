package brigade_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
	"github.com/jhoicas/navbahor-erp/internal/domain/repository"
)

type fieldStore struct {
	mu         sync.Mutex
	stages     map[string]*entity.WorkStage
	activities map[string]*entity.FieldActivity
	contours   map[string]*entity.Contour
	brigadiers map[string]*entity.BrigadierProfile
	failAfter  int
	writes     int
}

func newFieldStore() *fieldStore {
	return &fieldStore{
		stages:     map[string]*entity.WorkStage{},
		activities: map[string]*entity.FieldActivity{},
		contours:   map[string]*entity.Contour{},
		brigadiers: map[string]*entity.BrigadierProfile{},
		failAfter:  -1,
	}
}

func activityKey(contourID, stageID string) string { return contourID + "|" + stageID }

func (s *fieldStore) RunField(ctx context.Context, fn func(ctx context.Context, repo repository.FieldActivityRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]entity.FieldActivity, len(s.activities))
	for k, a := range s.activities {
		snap[k] = *a
	}
	s.writes = 0
	if err := fn(ctx, activityRepo{s: s}); err != nil {
		s.activities = make(map[string]*entity.FieldActivity, len(snap))
		for k, a := range snap {
			a := a
			s.activities[k] = &a
		}
		return err
	}
	return nil
}

// activityRepo opera sin tomar el mutex; lo sostiene RunField o el wrapper locked.
type activityRepo struct{ s *fieldStore }

func (r activityRepo) Get(_ context.Context, contourID, stageID string, _ bool) (*entity.FieldActivity, error) {
	a, ok := r.s.activities[activityKey(contourID, stageID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r activityRepo) write() error {
	if r.s.failAfter >= 0 && r.s.writes >= r.s.failAfter {
		return domain.ErrConflict
	}
	r.s.writes++
	return nil
}

func (r activityRepo) UpsertAssignment(_ context.Context, a *entity.FieldActivity) error {
	if err := r.write(); err != nil {
		return err
	}
	k := activityKey(a.ContourID, a.WorkStageID)
	if cur, ok := r.s.activities[k]; ok {
		cur.BrigadierID = a.BrigadierID
		cur.UpdatedAt = a.UpdatedAt
		return nil
	}
	cp := *a
	r.s.activities[k] = &cp
	return nil
}

func (r activityRepo) UpsertStatus(_ context.Context, a *entity.FieldActivity) error {
	if err := r.write(); err != nil {
		return err
	}
	cp := *a
	r.s.activities[activityKey(a.ContourID, a.WorkStageID)] = &cp
	return nil
}

func (r activityRepo) List(_ context.Context, brigadierID string) ([]*entity.FieldActivityDetail, error) {
	var out []*entity.FieldActivityDetail
	for _, a := range r.s.activities {
		if brigadierID != "" && (a.BrigadierID == nil || *a.BrigadierID != brigadierID) {
			continue
		}
		d := &entity.FieldActivityDetail{FieldActivity: *a}
		if c := r.s.contours[a.ContourID]; c != nil {
			d.ContourNumber, d.ContourName = c.Number, c.Name
		}
		if st := r.s.stages[a.WorkStageID]; st != nil {
			d.StageName, d.StageOrder = st.Name, st.Order
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ContourNumber != out[j].ContourNumber {
			return out[i].ContourNumber < out[j].ContourNumber
		}
		return out[i].StageOrder < out[j].StageOrder
	})
	return out, nil
}

func (r activityRepo) DeleteAll(context.Context) (int64, error) {
	n := int64(len(r.s.activities))
	r.s.activities = map[string]*entity.FieldActivity{}
	return n, nil
}

// lockedActivities acceso fuera de transacción.
type lockedActivities struct{ s *fieldStore }

func (l lockedActivities) Get(ctx context.Context, c, st string, fu bool) (*entity.FieldActivity, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return activityRepo(l).Get(ctx, c, st, fu)
}

func (l lockedActivities) UpsertAssignment(ctx context.Context, a *entity.FieldActivity) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return activityRepo(l).UpsertAssignment(ctx, a)
}

func (l lockedActivities) UpsertStatus(ctx context.Context, a *entity.FieldActivity) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return activityRepo(l).UpsertStatus(ctx, a)
}

func (l lockedActivities) List(ctx context.Context, b string) ([]*entity.FieldActivityDetail, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return activityRepo(l).List(ctx, b)
}

func (l lockedActivities) DeleteAll(ctx context.Context) (int64, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return activityRepo(l).DeleteAll(ctx)
}

type stageRepo struct{ s *fieldStore }

func (r stageRepo) Create(_ context.Context, st *entity.WorkStage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.stages {
		if e.Name == st.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *st
	r.s.stages[st.ID] = &cp
	return nil
}

func (r stageRepo) GetByID(_ context.Context, id string) (*entity.WorkStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.stages[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r stageRepo) List(context.Context) ([]*entity.WorkStage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.WorkStage, 0, len(r.s.stages))
	for _, st := range r.s.stages {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r stageRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.stages, id)
	return nil
}

type contourRepo struct{ s *fieldStore }

func (r contourRepo) Create(_ context.Context, c *entity.Contour) error {
	cp := *c
	r.s.contours[c.ID] = &cp
	return nil
}

func (r contourRepo) GetByID(_ context.Context, id string) (*entity.Contour, error) {
	c, ok := r.s.contours[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r contourRepo) List(context.Context, string) ([]*entity.Contour, error) { return nil, nil }

func (r contourRepo) AssignBrigadier(context.Context, string, *string) error { return nil }

type brigadierRepo struct{ s *fieldStore }

func (r brigadierRepo) Create(context.Context, *entity.Brigadier) error { return nil }

func (r brigadierRepo) GetByID(_ context.Context, id string) (*entity.BrigadierProfile, error) {
	b, ok := r.s.brigadiers[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r brigadierRepo) GetByUserID(context.Context, string) (*entity.BrigadierProfile, error) {
	return nil, nil
}

func (r brigadierRepo) List(context.Context) ([]*entity.BrigadierProfile, error) { return nil, nil }
