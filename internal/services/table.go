package services

import (
	"context"
	"errors"
	"net/url"
	"slices"

	"github.com/gctalent/talent-backoffice/internal/models"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

// Table renders one registered table from a request URL.
type Table interface {
	Definition() models.TableDefinition
	Render(ctx context.Context, req RenderRequest) (*TableResult, error)
	Decode(u *url.URL) DecodedView
	Sheet(ctx context.Context, req RenderRequest, ids []string) (*Sheet, error)
}

// RenderRequest carries what a client sends for one table view.
type RenderRequest struct {
	// URL is the request URL. Its query holds the view state.
	URL *url.URL
	// Patch changes the state derived from URL before rows are fetched.
	Patch *StatePatch
	// Selection seeds the row selection.
	Selection tablestate.RowSelection
	// Select changes the row selection after rows are fetched.
	Select *SelectRequest
}

type TableResult struct {
	State tablestate.ViewState
	Model tablestate.Model
	// URL is the request URL with the canonical query: every state slice
	// that differs from the table's initial state and nothing else.
	URL *url.URL
}

// DecodedView is the view state a URL describes, without rows.
type DecodedView struct {
	State    tablestate.ViewState
	Defaults tablestate.ViewState
	URL      *url.URL
}

// StatePatch is a set of slice updates applied in field order. A search
// change returns to the first page unless Pagination is also given.
type StatePatch struct {
	Reset         bool                      `json:"reset,omitempty"`
	Sorting       *tablestate.Sorting       `json:"sorting,omitempty"`
	ToggleSort    string                    `json:"toggleSort,omitempty"`
	Search        *tablestate.Search        `json:"search,omitempty"`
	Pagination    *tablestate.Pagination    `json:"pagination,omitempty"`
	HiddenColumns *tablestate.HiddenColumns `json:"hiddenColumns,omitempty"`
	ToggleColumn  string                    `json:"toggleColumn,omitempty"`
}

// SelectRequest selects or deselects rows by id or by index in the current
// page. Indexes are translated to ids through the rows of the page.
type SelectRequest struct {
	RowIDs   []string
	Indexes  []int
	Page     bool
	Selected bool
	// Clear drops the previous selection first.
	Clear bool
}

// Sheet is a flat rendition of rows for export.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// rowSource fetches rows for a view state. Server-driven tables return one
// page and the total of matching rows; in-memory tables return every row.
type rowSource[T any] struct {
	fetch func(ctx context.Context, state tablestate.ViewState, searchable []string) ([]T, int, error)
	byIDs func(ctx context.Context, ids []string) ([]T, error)
}

type table[T any] struct {
	def         models.TableDefinition
	columns     []tablestate.Column[T]
	rowID       func(T) string
	initial     tablestate.InitialState
	source      rowSource[T]
	maxPageSize int
	exportMax   int
}

func newTable[T any](def models.TableDefinition, columns []tablestate.Column[T], rowID func(T) string, source rowSource[T], initial tablestate.InitialState, limits TableLimits) *table[T] {
	def.Columns = make([]models.ColumnDefinition, 0, len(columns))
	for _, c := range columns {
		def.Columns = append(def.Columns, models.ColumnDefinition{
			ID:         c.ID,
			Header:     c.Header,
			Sortable:   c.Sortable,
			Searchable: c.Searchable,
			Pinned:     c.Pinned,
		})
	}
	return &table[T]{
		def:         def,
		columns:     columns,
		rowID:       rowID,
		initial:     initial,
		source:      source,
		maxPageSize: limits.MaxPageSize,
		exportMax:   limits.ExportMaxRows,
	}
}

func (t *table[T]) Definition() models.TableDefinition {
	return t.def
}

func (t *table[T]) manual() bool {
	return t.def.Mode == models.TableModeServer
}

func (t *table[T]) searchable() []string {
	return tablestate.SearchableColumnIDs(t.columns)
}

func (t *table[T]) controller(u *url.URL, selection tablestate.RowSelection) (*tablestate.Controller, *tablestate.URLSink) {
	initial := t.initial
	initial.RowSelection = selection
	sink := tablestate.NewURLSink(u)
	c := tablestate.NewController(
		tablestate.ColumnIDs(t.columns),
		initial,
		sink,
		tablestate.WithSortableColumns(tablestate.SortableColumnIDs(t.columns)...),
		tablestate.WithSearchableColumns(t.searchable()...),
	)
	return c, sink
}

func (t *table[T]) Render(ctx context.Context, req RenderRequest) (*TableResult, error) {
	controller, sink := t.controller(req.URL, req.Selection)

	manual := tablestate.SliceOptions{Manual: t.manual()}
	view := tablestate.NewView(controller, tablestate.Config[T]{
		Columns:            t.columns,
		RowID:              t.rowID,
		Sort:               manual,
		Search:             manual,
		Pagination:         manual,
		EnableRowSelection: true,
		Fetching:           true,
	})

	if req.Patch != nil {
		if err := applyPatch(view, *req.Patch); err != nil {
			return nil, invalidState(err)
		}
	}
	if p := view.State().Pagination; p.PageSize > t.maxPageSize {
		p.PageSize = t.maxPageSize
		if err := view.SetPagination(p); err != nil {
			return nil, invalidState(err)
		}
	}

	rows, total, err := t.source.fetch(ctx, view.State(), t.searchable())
	if err != nil {
		return nil, err
	}
	view.SetData(rows, total)
	view.SetFetching(false)

	if req.Select != nil {
		if err := applySelect(view, *req.Select); err != nil {
			return nil, invalidState(err)
		}
	}

	return &TableResult{
		State: view.State(),
		Model: view.Model(),
		URL:   sink.URL(),
	}, nil
}

func (t *table[T]) Decode(u *url.URL) DecodedView {
	controller, sink := t.controller(u, nil)
	return DecodedView{
		State:    controller.State(),
		Defaults: controller.Defaults(),
		URL:      sink.URL(),
	}
}

// Sheet renders the visible columns of the rows with the given ids, or of
// every row matching the search when ids is nil. Rows keep the view's sort.
func (t *table[T]) Sheet(ctx context.Context, req RenderRequest, ids []string) (*Sheet, error) {
	controller, _ := t.controller(req.URL, nil)
	state := controller.State()
	state.Pagination = tablestate.Pagination{PageIndex: 0, PageSize: t.exportMax}

	var (
		rows []T
		err  error
	)
	modes := tablestate.Modes{}
	if ids != nil {
		state.Search = tablestate.Search{}
		rows, err = t.source.byIDs(ctx, ids)
	} else {
		rows, _, err = t.source.fetch(ctx, state, t.searchable())
		if t.manual() {
			modes = tablestate.Modes{ManualSorting: true, ManualFiltering: true, ManualPagination: true}
		}
	}
	if err != nil {
		return nil, err
	}

	engine := tablestate.NewMemoryEngine(t.columns, rows, modes)
	engine.SetState(state)

	columns := engine.VisibleColumns()
	sheet := &Sheet{Name: t.def.Title, Headers: make([]string, 0, len(columns)), Rows: [][]any{}}
	for _, c := range columns {
		sheet.Headers = append(sheet.Headers, c.Header)
	}
	for _, row := range engine.VisibleRows() {
		cells := make([]any, 0, len(columns))
		for _, c := range columns {
			cells = append(cells, sheetValue(c, row))
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return sheet, nil
}

func sheetValue[T any](c tablestate.Column[T], row T) any {
	switch v := c.Value(row).(type) {
	case string, int, int64, float64, bool:
		return v
	default:
		return c.Text(row)
	}
}

func applyPatch[T any](view *tablestate.View[T], p StatePatch) error {
	if p.Reset {
		d := view.Controller().Defaults()
		if err := view.SetSorting(d.Sorting); err != nil {
			return err
		}
		if err := view.SetSearch(d.Search); err != nil {
			return err
		}
		if err := view.SetPagination(d.Pagination); err != nil {
			return err
		}
		view.SetHiddenColumns(d.HiddenColumns)
	}
	if p.Sorting != nil {
		if err := view.SetSorting(*p.Sorting); err != nil {
			return err
		}
	}
	if p.ToggleSort != "" {
		if err := view.ToggleSort(p.ToggleSort); err != nil {
			return err
		}
	}
	if p.Search != nil && *p.Search != view.State().Search {
		if err := view.SetSearch(*p.Search); err != nil {
			return err
		}
		if p.Pagination == nil {
			pg := view.State().Pagination
			pg.PageIndex = 0
			if err := view.SetPagination(pg); err != nil {
				return err
			}
		}
	}
	if p.Pagination != nil {
		if err := view.SetPagination(*p.Pagination); err != nil {
			return err
		}
	}
	if p.HiddenColumns != nil {
		view.SetHiddenColumns(*p.HiddenColumns)
	}
	if p.ToggleColumn != "" {
		view.ToggleColumn(p.ToggleColumn)
	}
	return nil
}

func applySelect[T any](view *tablestate.View[T], r SelectRequest) error {
	if r.Clear {
		if err := view.SetRowSelection(tablestate.RowSelection{}); err != nil {
			return err
		}
	}
	if r.Page {
		if err := view.SelectPage(r.Selected); err != nil {
			return err
		}
	}
	if len(r.Indexes) > 0 {
		if err := view.SelectRowsAt(r.Indexes, r.Selected); err != nil {
			return err
		}
	}
	if len(r.RowIDs) > 0 {
		if err := view.SelectIDs(r.RowIDs, r.Selected); err != nil {
			return err
		}
	}
	return nil
}

func invalidState(err error) error {
	if errors.Is(err, tablestate.ErrInvalidState) {
		return srvErrors.NewInvalidArgumentError("invalid table state", err)
	}
	return err
}

// filterByIDs keeps rows whose id is in ids, ordered by id.
func filterByIDs[T any](rows []T, rowID func(T) string, ids []string) []T {
	byID := make(map[string]T, len(rows))
	for _, r := range rows {
		byID[rowID(r)] = r
	}
	out := make([]T, 0, len(ids))
	for _, id := range slices.Compact(slices.Sorted(slices.Values(ids))) {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}
