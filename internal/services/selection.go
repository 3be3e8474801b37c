package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/store"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

// SelectionService keeps row selections across requests. The selection of a
// table view is seeded from the stored one, changed through the view and
// written back.
// Changes to one selection are serialised, so concurrent requests do not
// overwrite each other's rows.
type SelectionService struct {
	store  *store.Store
	tables *TableService
	locks  *keyedMutex
	log    *zap.SugaredLogger
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func NewSelectionService(st *store.Store, tables *TableService) *SelectionService {
	return &SelectionService{
		store:  st,
		tables: tables,
		locks:  newKeyedMutex(),
		log:    zap.S().Named("selection_service"),
	}
}

func (s *SelectionService) Get(ctx context.Context, table, id string) (*models.Selection, error) {
	if _, err := s.tables.Get(table); err != nil {
		return nil, err
	}
	return s.store.Selection().Get(ctx, table, id)
}

// Load returns the stored selection as a row selection. An unknown id is an
// empty selection.
func (s *SelectionService) Load(ctx context.Context, table, id string) (tablestate.RowSelection, error) {
	sel, err := s.store.Selection().Get(ctx, table, id)
	if srvErrors.IsResourceNotFoundError(err) {
		return tablestate.RowSelection{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make(tablestate.RowSelection, len(sel.RowIDs))
	for _, rowID := range sel.RowIDs {
		out[rowID] = true
	}
	return out, nil
}

// Apply changes the selection id of a table through the view described by
// req and stores the result. An empty id creates a new selection.
func (s *SelectionService) Apply(ctx context.Context, table, id string, req RenderRequest) (*models.Selection, *TableResult, error) {
	t, err := s.tables.Get(table)
	if err != nil {
		return nil, nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	unlock := s.locks.Lock(table + "/" + id)
	defer unlock()

	current, err := s.Load(ctx, table, id)
	if err != nil {
		return nil, nil, err
	}
	req.Selection = current

	res, err := t.Render(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	sel := &models.Selection{ID: id, Table: table, RowIDs: res.State.RowSelection.IDs()}
	if err := s.store.Selection().Save(ctx, sel); err != nil {
		return nil, nil, err
	}
	s.log.Debugw("selection saved", "table", table, "id", id, "rows", len(sel.RowIDs))

	stored, err := s.store.Selection().Get(ctx, table, id)
	if err != nil {
		return nil, nil, err
	}
	return stored, res, nil
}

func (s *SelectionService) Delete(ctx context.Context, table, id string) error {
	if _, err := s.tables.Get(table); err != nil {
		return err
	}
	unlock := s.locks.Lock(table + "/" + id)
	defer unlock()
	return s.store.Selection().Delete(ctx, table, id)
}
