package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/repository"
)

type fakeMasterRepo struct {
	masters    map[int64]*domain.Master
	nextID     int64
	lastFilter repository.MasterFilter
}

func newFakeMasterRepo() *fakeMasterRepo {
	return &fakeMasterRepo{masters: map[int64]*domain.Master{}, nextID: 1}
}

func (r *fakeMasterRepo) Create(_ context.Context, m *domain.Master) error {
	m.ID = r.nextID
	m.DateCreate = time.Now()
	r.nextID++
	copied := *m
	r.masters[m.ID] = &copied
	return nil
}

func (r *fakeMasterRepo) Update(_ context.Context, m *domain.Master) error {
	if _, ok := r.masters[m.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *m
	r.masters[m.ID] = &copied
	return nil
}

func (r *fakeMasterRepo) UpdateDocuments(_ context.Context, id int64, contractDoc, passportDoc *string) (*domain.Master, error) {
	m, ok := r.masters[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if contractDoc != nil {
		m.ContractDoc = contractDoc
	}
	if passportDoc != nil {
		m.PassportDoc = passportDoc
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMasterRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.masters[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.masters, id)
	return nil
}

func (r *fakeMasterRepo) GetByID(_ context.Context, id int64) (*domain.Master, error) {
	m, ok := r.masters[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMasterRepo) List(_ context.Context, filter repository.MasterFilter) ([]domain.Master, error) {
	r.lastFilter = filter
	if filter.Cities != nil && len(filter.Cities) == 0 {
		return []domain.Master{}, nil
	}
	result := []domain.Master{}
	for _, m := range r.masters {
		result = append(result, *m)
	}
	return result, nil
}

type fakeDirectorRepo struct {
	directors  map[int64]*domain.Director
	nextID     int64
	lastFilter repository.DirectorFilter
}

func newFakeDirectorRepo() *fakeDirectorRepo {
	return &fakeDirectorRepo{directors: map[int64]*domain.Director{}, nextID: 1}
}

func (r *fakeDirectorRepo) Create(_ context.Context, d *domain.Director) error {
	d.ID = r.nextID
	r.nextID++
	copied := *d
	r.directors[d.ID] = &copied
	return nil
}

func (r *fakeDirectorRepo) Update(_ context.Context, d *domain.Director) error {
	if _, ok := r.directors[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *d
	r.directors[d.ID] = &copied
	return nil
}

func (r *fakeDirectorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.directors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.directors, id)
	return nil
}

func (r *fakeDirectorRepo) GetByID(_ context.Context, id int64) (*domain.Director, error) {
	d, ok := r.directors[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDirectorRepo) List(_ context.Context, filter repository.DirectorFilter) ([]domain.Director, error) {
	r.lastFilter = filter
	result := []domain.Director{}
	for _, d := range r.directors {
		if len(filter.IDs) > 0 && d.ID != filter.IDs[0] {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

type fakeOperatorRepo struct {
	listed []domain.OperatorType
	rows   map[domain.OperatorType]map[int64]*domain.Operator
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{rows: map[domain.OperatorType]map[int64]*domain.Operator{
		domain.OperatorTypeAdmin:    {},
		domain.OperatorTypeOperator: {},
	}}
}

func (r *fakeOperatorRepo) Create(_ context.Context, o *domain.Operator) error {
	o.ID = int64(len(r.rows[o.Type]) + 1)
	copied := *o
	r.rows[o.Type][o.ID] = &copied
	return nil
}

func (r *fakeOperatorRepo) Update(_ context.Context, o *domain.Operator) error {
	if _, ok := r.rows[o.Type][o.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *o
	r.rows[o.Type][o.ID] = &copied
	return nil
}

func (r *fakeOperatorRepo) Delete(_ context.Context, opType domain.OperatorType, id int64) error {
	if _, ok := r.rows[opType][id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.rows[opType], id)
	return nil
}

func (r *fakeOperatorRepo) GetByID(_ context.Context, opType domain.OperatorType, id int64) (*domain.Operator, error) {
	o, ok := r.rows[opType][id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *o
	return &copied, nil
}

func (r *fakeOperatorRepo) List(_ context.Context, opType domain.OperatorType) ([]domain.Operator, error) {
	r.listed = append(r.listed, opType)
	result := []domain.Operator{}
	for _, o := range r.rows[opType] {
		result = append(result, *o)
	}
	return result, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

var pgxNoRows = pgx.ErrNoRows
