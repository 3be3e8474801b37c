package tablestate

import (
	"fmt"
	"slices"
)

// SliceOptions configures who computes one slice of the view. A manual
// slice is computed by the data source (typically the server) and the engine
// passes it through.
type SliceOptions struct {
	Manual bool
}

// Config describes a table view over rows of type T.
type Config[T any] struct {
	Columns []Column[T]
	Data    []T
	RowID   func(T) string
	// Total is the number of rows known to the data source. It is only read
	// when pagination is manual.
	Total int

	Sort       SliceOptions
	Search     SliceOptions
	Pagination SliceOptions

	EnableRowSelection bool
	Fetching           bool

	OnSortChange       func(Sorting)
	OnSearchChange     func(Search)
	OnPaginationChange func(Pagination)
	OnRowSelection     func(RowSelection)

	// Engine replaces the in-memory engine. Its data is owned by the caller.
	Engine Engine[T]
}

// View composes a Controller, column definitions and data into a render
// model. Every state change goes through the controller so the sink stays
// in sync.
type View[T any] struct {
	cfg        Config[T]
	controller *Controller
	engine     Engine[T]
	memory     *MemoryEngine[T]
	selection  *SelectionAdapter[T]
}

func NewView[T any](controller *Controller, cfg Config[T]) *View[T] {
	v := &View[T]{
		cfg:        cfg,
		controller: controller,
		selection:  NewSelectionAdapter(cfg.RowID, controller.State().RowSelection),
	}
	if cfg.Engine != nil {
		v.engine = cfg.Engine
	} else {
		v.memory = NewMemoryEngine(cfg.Columns, cfg.Data, v.Modes())
		v.engine = v.memory
	}
	v.engine.SetState(controller.State())
	return v
}

// Modes returns the engine modes derived from the slice options.
func (v *View[T]) Modes() Modes {
	return Modes{
		ManualSorting:    v.cfg.Sort.Manual,
		ManualFiltering:  v.cfg.Search.Manual,
		ManualPagination: v.cfg.Pagination.Manual,
	}
}

func (v *View[T]) Controller() *Controller {
	return v.controller
}

func (v *View[T]) State() ViewState {
	return v.controller.State()
}

// SetData replaces the rows after a refetch. The selection is kept by id.
func (v *View[T]) SetData(data []T, total int) {
	v.cfg.Data = data
	v.cfg.Total = total
	if v.memory != nil {
		v.memory.SetData(data)
	}
}

func (v *View[T]) SetFetching(fetching bool) {
	v.cfg.Fetching = fetching
}

func (v *View[T]) SetSorting(s Sorting) error {
	if err := v.controller.SetSorting(s); err != nil {
		return err
	}
	v.refresh()
	if v.cfg.OnSortChange != nil {
		v.cfg.OnSortChange(v.controller.State().Sorting)
	}
	return nil
}

// ToggleSort cycles a column through ascending, descending and unsorted.
func (v *View[T]) ToggleSort(columnID string) error {
	current := v.controller.State().Sorting
	var next Sorting
	switch {
	case len(current) == 1 && current[0].ColumnID == columnID && !current[0].Desc:
		next = Sorting{{ColumnID: columnID, Desc: true}}
	case len(current) == 1 && current[0].ColumnID == columnID && current[0].Desc:
		next = Sorting{}
	default:
		next = Sorting{{ColumnID: columnID}}
	}
	return v.SetSorting(next)
}

func (v *View[T]) SetSearch(s Search) error {
	if err := v.controller.SetSearch(s); err != nil {
		return err
	}
	v.refresh()
	if v.cfg.OnSearchChange != nil {
		v.cfg.OnSearchChange(v.controller.State().Search)
	}
	return nil
}

func (v *View[T]) SetPagination(p Pagination) error {
	if err := v.controller.SetPagination(p); err != nil {
		return err
	}
	v.refresh()
	if v.cfg.OnPaginationChange != nil {
		v.cfg.OnPaginationChange(v.controller.State().Pagination)
	}
	return nil
}

func (v *View[T]) SetHiddenColumns(h HiddenColumns) {
	v.controller.SetHiddenColumns(v.hideable(h))
	v.refresh()
}

// ToggleColumn shows a hidden column or hides a visible one.
func (v *View[T]) ToggleColumn(columnID string) {
	hidden := v.controller.State().HiddenColumns
	if i := slices.Index(hidden, columnID); i >= 0 {
		hidden = slices.Delete(hidden, i, i+1)
	} else {
		hidden = append(hidden, columnID)
	}
	v.SetHiddenColumns(hidden)
}

// SelectRowsAt selects or clears rows of the current page by position.
func (v *View[T]) SelectRowsAt(indexes []int, selected bool) error {
	if !v.cfg.EnableRowSelection {
		return fmt.Errorf("%w: row selection is disabled", ErrInvalidState)
	}
	rows := v.Rows()
	current := v.selection.IndexSelection(rows)
	for _, i := range indexes {
		if i < 0 || i >= len(rows) {
			return fmt.Errorf("%w: row index %d out of range", ErrInvalidState, i)
		}
		current[i] = selected
	}
	v.commitSelection(v.selection.ApplyIndexSelection(rows, current))
	return nil
}

// SelectPage selects or clears every row of the current page.
func (v *View[T]) SelectPage(selected bool) error {
	if !v.cfg.EnableRowSelection {
		return fmt.Errorf("%w: row selection is disabled", ErrInvalidState)
	}
	v.commitSelection(v.selection.SetAll(v.Rows(), selected))
	return nil
}

// SelectIDs selects or clears rows by id.
func (v *View[T]) SelectIDs(ids []string, selected bool) error {
	if !v.cfg.EnableRowSelection {
		return fmt.Errorf("%w: row selection is disabled", ErrInvalidState)
	}
	v.commitSelection(v.selection.SetIDs(ids, selected))
	return nil
}

// SetRowSelection replaces the whole selection.
func (v *View[T]) SetRowSelection(sel RowSelection) error {
	if !v.cfg.EnableRowSelection {
		return fmt.Errorf("%w: row selection is disabled", ErrInvalidState)
	}
	v.selection.Set(sel.Clone())
	v.commitSelection(v.selection.Selection())
	return nil
}

func (v *View[T]) commitSelection(sel RowSelection) {
	v.controller.SetRowSelection(sel)
	v.refresh()
	if v.cfg.OnRowSelection != nil {
		v.cfg.OnRowSelection(sel.Clone())
	}
}

// Rows returns the rows of the current page.
func (v *View[T]) Rows() []T {
	v.refresh()
	return v.engine.VisibleRows()
}

// Total returns the number of rows across all pages.
func (v *View[T]) Total() int {
	if v.cfg.Pagination.Manual {
		return v.cfg.Total
	}
	v.refresh()
	return v.engine.FilteredRowCount()
}

func (v *View[T]) PageCount() int {
	return PageCount(v.Total(), v.controller.State().Pagination.PageSize)
}

// PageCount returns ceil(total/pageSize), at least 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func (v *View[T]) refresh() {
	v.engine.SetState(v.controller.State())
}

func (v *View[T]) hideable(h HiddenColumns) HiddenColumns {
	pinned := make(map[string]bool)
	for _, c := range v.cfg.Columns {
		if c.Pinned {
			pinned[c.ID] = true
		}
	}
	out := HiddenColumns{}
	for _, id := range h {
		if !pinned[id] {
			out = append(out, id)
		}
	}
	return out
}

type HeaderModel struct {
	ID       string `json:"id"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Sort     string `json:"sort,omitempty"`
}

type ColumnToggleModel struct {
	ID      string `json:"id"`
	Header  string `json:"header"`
	Visible bool   `json:"visible"`
	Pinned  bool   `json:"pinned"`
}

type CellModel struct {
	ColumnID string `json:"columnId"`
	Value    any    `json:"value"`
	Text     string `json:"text"`
}

type RowModel struct {
	ID       string      `json:"id"`
	Selected bool        `json:"selected"`
	Cells    []CellModel `json:"cells"`
}

type PaginationModel struct {
	PageIndex   int  `json:"pageIndex"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	PageCount   int  `json:"pageCount"`
	Total       int  `json:"total"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

type SelectionModel struct {
	Enabled     bool     `json:"enabled"`
	Count       int      `json:"count"`
	PageAll     bool     `json:"pageAll"`
	PageSome    bool     `json:"pageSome"`
	SelectedIDs []string `json:"selectedIds"`
}

// Model is everything needed to render the table once.
type Model struct {
	Headers    []HeaderModel       `json:"headers"`
	Columns    []ColumnToggleModel `json:"columns"`
	Rows       []RowModel          `json:"rows"`
	Search     Search              `json:"search"`
	Pagination PaginationModel     `json:"pagination"`
	Selection  SelectionModel      `json:"selection"`
	Loading    bool                `json:"loading"`
}

// Model renders the current state. While fetching no rows are rendered.
func (v *View[T]) Model() Model {
	state := v.controller.State()
	visible := v.engine.VisibleColumns()
	rows := v.Rows()
	total := v.Total()

	m := Model{
		Search:  state.Search,
		Loading: v.cfg.Fetching,
		Rows:    []RowModel{},
	}

	if v.cfg.EnableRowSelection {
		m.Headers = append(m.Headers, HeaderModel{ID: SelectColumnID})
	}
	for _, c := range visible {
		h := HeaderModel{ID: c.ID, Header: c.Header, Sortable: c.Sortable}
		for _, s := range state.Sorting {
			if s.ColumnID == c.ID {
				h.Sort = "asc"
				if s.Desc {
					h.Sort = "desc"
				}
			}
		}
		m.Headers = append(m.Headers, h)
	}

	hidden := state.HiddenColumns.Set()
	for _, c := range v.cfg.Columns {
		m.Columns = append(m.Columns, ColumnToggleModel{
			ID:      c.ID,
			Header:  c.Header,
			Visible: c.Pinned || !hidden.Has(c.ID),
			Pinned:  c.Pinned,
		})
	}

	if !v.cfg.Fetching {
		for _, row := range rows {
			rm := RowModel{ID: v.cfg.RowID(row), Selected: v.selection.IsSelected(row)}
			if v.cfg.EnableRowSelection {
				rm.Cells = append(rm.Cells, CellModel{
					ColumnID: SelectColumnID,
					Value:    rm.Selected,
					Text:     fmt.Sprint(rm.Selected),
				})
			}
			for _, c := range visible {
				rm.Cells = append(rm.Cells, CellModel{ColumnID: c.ID, Value: c.Value(row), Text: c.Text(row)})
			}
			m.Rows = append(m.Rows, rm)
		}
	}

	pageCount := PageCount(total, state.Pagination.PageSize)
	m.Pagination = PaginationModel{
		PageIndex:   state.Pagination.PageIndex,
		Page:        state.Pagination.PageIndex + 1,
		PageSize:    state.Pagination.PageSize,
		PageCount:   pageCount,
		Total:       total,
		HasPrevious: state.Pagination.PageIndex > 0,
		HasNext:     state.Pagination.PageIndex+1 < pageCount,
	}

	m.Selection = SelectionModel{
		Enabled:     v.cfg.EnableRowSelection,
		Count:       v.selection.Count(),
		PageAll:     v.selection.AllSelected(rows),
		PageSome:    v.selection.SomeSelected(rows),
		SelectedIDs: v.selection.Selection().IDs(),
	}

	return m
}
