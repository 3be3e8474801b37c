package services

import (
	"context"
	"net/url"
	"slices"

	"go.uber.org/zap"

	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/models"
	"github.com/gctalent/talent-backoffice/internal/store"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

const (
	TableCandidates  = "candidates"
	TableSkills      = "skills"
	TableDepartments = "departments"
)

type TableLimits struct {
	MaxPageSize   int
	ExportMaxRows int
}

// TableService is the registry of tables served by the API.
type TableService struct {
	tables map[string]Table
	names  []string
}

func NewTableService(st *store.Store, candidates *CandidateService, presets config.Presets, limits TableLimits) *TableService {
	s := &TableService{tables: map[string]Table{}}

	s.register(newTable(
		models.TableDefinition{Name: TableCandidates, Title: "Candidates", Mode: models.TableModeServer},
		candidateColumns,
		candidateID,
		rowSource[models.Candidate]{
			fetch: func(ctx context.Context, state tablestate.ViewState, searchable []string) ([]models.Candidate, int, error) {
				res, err := candidates.List(ctx, candidateParams(state, searchable))
				if err != nil {
					return nil, 0, err
				}
				return res.Candidates, res.Total, nil
			},
			byIDs: candidates.ByIDs,
		},
		initialState(TableCandidates, presets),
		limits,
	))

	s.register(newTable(
		models.TableDefinition{Name: TableSkills, Title: "Skills", Mode: models.TableModeMemory},
		skillColumns,
		func(sk models.Skill) string { return sk.ID },
		memorySource(st.Skill().List, func(sk models.Skill) string { return sk.ID }),
		initialState(TableSkills, presets),
		limits,
	))

	s.register(newTable(
		models.TableDefinition{Name: TableDepartments, Title: "Departments", Mode: models.TableModeMemory},
		departmentColumns,
		func(d models.Department) string { return d.ID },
		memorySource(st.Department().List, func(d models.Department) string { return d.ID }),
		initialState(TableDepartments, presets),
		limits,
	))

	return s
}

func (s *TableService) register(t Table) {
	name := t.Definition().Name
	s.tables[name] = t
	s.names = append(s.names, name)
}

// Definitions returns every table in registration order.
func (s *TableService) Definitions() []models.TableDefinition {
	defs := make([]models.TableDefinition, 0, len(s.names))
	for _, name := range s.names {
		defs = append(defs, s.tables[name].Definition())
	}
	return defs
}

func (s *TableService) Get(name string) (Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, srvErrors.NewTableNotFoundError(name)
	}
	return t, nil
}

func (s *TableService) Render(ctx context.Context, name string, req RenderRequest) (*TableResult, error) {
	t, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return t.Render(ctx, req)
}

// Decode returns the view state u describes for the named table.
func (s *TableService) Decode(name string, u *url.URL) (*DecodedView, error) {
	t, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	v := t.Decode(u)
	return &v, nil
}

// memorySource serves a table loaded whole on every request.
func memorySource[T any](list func(context.Context) ([]T, error), rowID func(T) string) rowSource[T] {
	return rowSource[T]{
		fetch: func(ctx context.Context, _ tablestate.ViewState, _ []string) ([]T, int, error) {
			rows, err := list(ctx)
			if err != nil {
				return nil, 0, err
			}
			return rows, len(rows), nil
		},
		byIDs: func(ctx context.Context, ids []string) ([]T, error) {
			rows, err := list(ctx)
			if err != nil {
				return nil, err
			}
			return filterByIDs(rows, rowID, ids), nil
		},
	}
}

func initialState(table string, presets config.Presets) tablestate.InitialState {
	p, ok := presets[table]
	if !ok {
		return tablestate.InitialState{}
	}

	var initial tablestate.InitialState
	if p.Sorting != nil {
		initial.Sorting = tablestate.Sorting{}
		for _, s := range p.Sorting {
			initial.Sorting = append(initial.Sorting, tablestate.SortRule{ColumnID: s.ID, Desc: s.Desc})
		}
	}
	if p.Search != nil {
		initial.Search = &tablestate.Search{Term: p.Search.Term, Column: p.Search.Column}
	}
	if p.PageSize > 0 {
		initial.Pagination = &tablestate.Pagination{PageIndex: tablestate.DefaultPageIndex, PageSize: p.PageSize}
	}
	if p.HiddenColumns != nil {
		initial.HiddenColumns = slices.Clone(tablestate.HiddenColumns(p.HiddenColumns))
	}

	zap.S().Named("table_service").Debugw("table preset", "table", table, "initial", initial)
	return initial
}
