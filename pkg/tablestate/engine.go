package tablestate

import (
	"slices"
	"strings"
)

// Engine computes the visible rows and columns of a table from a view state.
type Engine[T any] interface {
	State() ViewState
	SetState(state ViewState)
	// VisibleColumns returns the columns not hidden by the state.
	VisibleColumns() []Column[T]
	// VisibleRows returns the rows of the current page.
	VisibleRows() []T
	// FilteredRowCount returns the number of rows matching the search,
	// before pagination.
	FilteredRowCount() int
}

// Modes marks which slices are computed by an external data source. A manual
// slice is passed through untouched.
type Modes struct {
	ManualSorting    bool
	ManualFiltering  bool
	ManualPagination bool
}

// MemoryEngine filters, sorts and paginates a slice held in memory.
type MemoryEngine[T any] struct {
	columns []Column[T]
	byID    map[string]Column[T]
	data    []T
	modes   Modes
	state   ViewState

	computed bool
	filtered []T
	page     []T
}

func NewMemoryEngine[T any](columns []Column[T], data []T, modes Modes) *MemoryEngine[T] {
	byID := make(map[string]Column[T], len(columns))
	for _, c := range columns {
		byID[c.ID] = c
	}
	return &MemoryEngine[T]{
		columns: columns,
		byID:    byID,
		data:    data,
		modes:   modes,
		state:   DefaultViewState(),
	}
}

func (e *MemoryEngine[T]) State() ViewState {
	return e.state
}

func (e *MemoryEngine[T]) SetState(state ViewState) {
	e.state = state
	e.computed = false
}

// SetData replaces the rows. The view state is kept.
func (e *MemoryEngine[T]) SetData(data []T) {
	e.data = data
	e.computed = false
}

func (e *MemoryEngine[T]) Modes() Modes {
	return e.modes
}

func (e *MemoryEngine[T]) VisibleColumns() []Column[T] {
	hidden := e.state.HiddenColumns.Set()
	out := make([]Column[T], 0, len(e.columns))
	for _, c := range e.columns {
		if c.Pinned || !hidden.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

func (e *MemoryEngine[T]) VisibleRows() []T {
	e.compute()
	return e.page
}

func (e *MemoryEngine[T]) FilteredRowCount() int {
	e.compute()
	return len(e.filtered)
}

func (e *MemoryEngine[T]) compute() {
	if e.computed {
		return
	}

	rows := e.data
	if !e.modes.ManualFiltering {
		rows = e.filter(rows)
	}
	if !e.modes.ManualSorting {
		rows = e.sort(rows)
	}
	e.filtered = rows

	if e.modes.ManualPagination {
		e.page = rows
	} else {
		e.page = paginate(rows, e.state.Pagination)
	}
	e.computed = true
}

func (e *MemoryEngine[T]) filter(rows []T) []T {
	term := strings.ToLower(strings.TrimSpace(e.state.Search.Term))
	if term == "" {
		return rows
	}

	var cols []Column[T]
	if e.state.Search.IsGlobal() {
		for _, c := range e.columns {
			if c.Searchable {
				cols = append(cols, c)
			}
		}
	} else if c, ok := e.byID[e.state.Search.Column]; ok {
		cols = []Column[T]{c}
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, c := range cols {
			if strings.Contains(strings.ToLower(c.Text(row)), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

func (e *MemoryEngine[T]) sort(rows []T) []T {
	type rule struct {
		col  Column[T]
		desc bool
	}
	rules := make([]rule, 0, len(e.state.Sorting))
	for _, s := range e.state.Sorting {
		if c, ok := e.byID[s.ColumnID]; ok && c.Sortable {
			rules = append(rules, rule{col: c, desc: s.Desc})
		}
	}
	if len(rules) == 0 {
		return rows
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b T) int {
		for _, r := range rules {
			c := CompareValues(r.col.Value(a), r.col.Value(b))
			if c != 0 {
				if r.desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
	return sorted
}

func paginate[T any](rows []T, p Pagination) []T {
	if !p.Valid() {
		return rows
	}
	start := p.Offset()
	if start < 0 || start >= len(rows) {
		return []T{}
	}
	end := min(start+p.PageSize, len(rows))
	return rows[start:end]
}
