package tablestate

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/util/sets"
)

// ErrInvalidState is returned when an update would break a view state
// invariant.
var ErrInvalidState = errors.New("invalid table state")

type ControllerOption func(*Controller)

// WithKeys overrides the query keys, see KeysWithPrefix.
func WithKeys(keys Keys) ControllerOption {
	return func(c *Controller) {
		c.keys = keys
	}
}

// WithSortableColumns restricts sorting to ids. By default every column is
// sortable.
func WithSortableColumns(ids ...string) ControllerOption {
	return func(c *Controller) {
		c.sortable = sets.New[string](ids...)
	}
}

// WithSearchableColumns restricts column searches to ids. By default every
// column is searchable.
func WithSearchableColumns(ids ...string) ControllerOption {
	return func(c *Controller) {
		c.searchable = sets.New[string](ids...)
	}
}

// Controller owns the view state of one table and mirrors it into a Sink.
// It is not safe for concurrent use.
type Controller struct {
	columns    sets.Set[string]
	sortable   sets.Set[string]
	searchable sets.Set[string]
	keys       Keys
	sink       Sink
	defaults   ViewState
	state      ViewState
	log        *zap.SugaredLogger
}

// NewController derives the view state from the sink's query, the caller's
// initial state and the hard-coded defaults, in that order of precedence.
// Malformed query values are ignored. The sink is synced once so it only
// carries values that differ from the defaults.
func NewController(columnIDs []string, initial InitialState, sink Sink, opts ...ControllerOption) *Controller {
	c := &Controller{
		columns: sets.New[string](columnIDs...),
		keys:    DefaultKeys,
		sink:    sink,
		log:     zap.S().Named("table_state"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sortable == nil {
		c.sortable = c.columns.Clone()
	}
	if c.searchable == nil {
		c.searchable = c.columns.Clone()
	}

	c.defaults = c.defaultsFrom(initial)
	c.state = c.stateFrom(sink.Query(), initial)
	c.Sync()

	return c
}

func (c *Controller) defaultsFrom(initial InitialState) ViewState {
	d := DefaultViewState()

	if initial.Sorting != nil {
		if err := c.validateSorting(initial.Sorting); err == nil {
			d.Sorting = slices.Clone(initial.Sorting)
		} else {
			c.log.Warnw("ignoring initial sorting", "error", err)
		}
	}
	if initial.Search != nil {
		if err := c.validateSearch(*initial.Search); err == nil {
			d.Search = *initial.Search
		} else {
			c.log.Warnw("ignoring initial search", "error", err)
		}
	}
	if initial.Pagination != nil && initial.Pagination.Valid() {
		d.Pagination = *initial.Pagination
	}
	if initial.HiddenColumns != nil {
		d.HiddenColumns = c.knownColumns(initial.HiddenColumns)
	}
	return d
}

func (c *Controller) stateFrom(query url.Values, initial InitialState) ViewState {
	qs := DecodeQuery(query, c.keys)
	state := ViewState{
		Sorting:       slices.Clone(c.defaults.Sorting),
		Search:        c.defaults.Search,
		Pagination:    c.defaults.Pagination,
		HiddenColumns: slices.Clone(c.defaults.HiddenColumns),
		RowSelection:  initial.RowSelection.Clone(),
	}

	if qs.Sorting.OK {
		if err := c.validateSorting(qs.Sorting.Value); err == nil {
			state.Sorting = qs.Sorting.Value
		} else {
			c.log.Debugw("falling back to initial sorting", "error", err)
		}
	} else if query.Has(c.keys.SortRule) {
		c.log.Debugw("falling back to initial sorting", "value", query.Get(c.keys.SortRule))
	}

	if qs.Search.OK {
		if err := c.validateSearch(qs.Search.Value); err == nil {
			state.Search = qs.Search.Value
		} else {
			c.log.Debugw("falling back to initial search", "error", err)
		}
	}

	state.Pagination.PageIndex = qs.PageIndex.Or(state.Pagination.PageIndex)
	state.Pagination.PageSize = qs.PageSize.Or(state.Pagination.PageSize)
	if !state.Pagination.Valid() {
		c.log.Debugw("falling back to initial pagination", "page_index", state.Pagination.PageIndex, "page_size", state.Pagination.PageSize)
		state.Pagination = c.defaults.Pagination
	}

	// An empty value un-hides every column. A value naming only unknown
	// columns keeps the initial hidden columns.
	if qs.HiddenColumns.OK {
		known := c.knownColumns(qs.HiddenColumns.Value)
		if len(known) > 0 || len(qs.HiddenColumns.Value) == 0 {
			state.HiddenColumns = known
		} else {
			c.log.Debugw("falling back to initial hidden columns", "value", query.Get(c.keys.HiddenColumns))
		}
	}

	return state
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState {
	return ViewState{
		Sorting:       slices.Clone(c.state.Sorting),
		Search:        c.state.Search,
		Pagination:    c.state.Pagination,
		HiddenColumns: slices.Clone(c.state.HiddenColumns),
		RowSelection:  c.state.RowSelection.Clone(),
	}
}

// Defaults returns the state against which the sink is compared.
func (c *Controller) Defaults() ViewState {
	return c.defaults
}

func (c *Controller) Keys() Keys {
	return c.keys
}

func (c *Controller) ColumnIDs() []string {
	return sets.List(c.columns)
}

func (c *Controller) UpdateSorting(fn func(Sorting) Sorting) error {
	next := fn(slices.Clone(c.state.Sorting))
	if next == nil {
		next = Sorting{}
	}
	if err := c.validateSorting(next); err != nil {
		return err
	}
	c.state.Sorting = next
	c.sync(c.syncSorting)
	return nil
}

func (c *Controller) SetSorting(s Sorting) error {
	return c.UpdateSorting(func(Sorting) Sorting { return s })
}

func (c *Controller) UpdateSearch(fn func(Search) Search) error {
	next := fn(c.state.Search)
	if err := c.validateSearch(next); err != nil {
		return err
	}
	c.state.Search = next
	c.sync(c.syncSearch)
	return nil
}

func (c *Controller) SetSearch(s Search) error {
	return c.UpdateSearch(func(Search) Search { return s })
}

func (c *Controller) UpdatePagination(fn func(Pagination) Pagination) error {
	next := fn(c.state.Pagination)
	if !next.Valid() {
		return fmt.Errorf("%w: page index %d, page size %d", ErrInvalidState, next.PageIndex, next.PageSize)
	}
	c.state.Pagination = next
	c.sync(c.syncPagination)
	return nil
}

func (c *Controller) SetPagination(p Pagination) error {
	return c.UpdatePagination(func(Pagination) Pagination { return p })
}

// UpdateHiddenColumns drops ids that are not columns of the table.
func (c *Controller) UpdateHiddenColumns(fn func(HiddenColumns) HiddenColumns) {
	c.state.HiddenColumns = c.knownColumns(fn(slices.Clone(c.state.HiddenColumns)))
	c.sync(c.syncHiddenColumns)
}

func (c *Controller) SetHiddenColumns(h HiddenColumns) {
	c.UpdateHiddenColumns(func(HiddenColumns) HiddenColumns { return h })
}

// UpdateRowSelection has no query key, the sink is left untouched.
func (c *Controller) UpdateRowSelection(fn func(RowSelection) RowSelection) {
	next := fn(c.state.RowSelection.Clone())
	if next == nil {
		next = RowSelection{}
	}
	c.state.RowSelection = next.Clone()
}

func (c *Controller) SetRowSelection(r RowSelection) {
	c.UpdateRowSelection(func(RowSelection) RowSelection { return r })
}

// Sync writes every slice to the sink.
func (c *Controller) Sync() {
	c.sync(c.syncSorting, c.syncSearch, c.syncPagination, c.syncHiddenColumns)
}

func (c *Controller) sync(passes ...func(url.Values)) {
	q := c.sink.Query()
	if q == nil {
		q = url.Values{}
	}
	for _, pass := range passes {
		pass(q)
	}
	c.sink.Replace(q)
}

func (c *Controller) syncSorting(q url.Values) {
	if c.state.Sorting.Equal(c.defaults.Sorting) {
		q.Del(c.keys.SortRule)
		return
	}
	q.Set(c.keys.SortRule, EncodeSorting(c.state.Sorting))
}

// syncSearch treats term and column as one slice so the decoded search
// always equals the in-memory one.
func (c *Controller) syncSearch(q url.Values) {
	if c.state.Search == c.defaults.Search {
		q.Del(c.keys.SearchTerm)
		q.Del(c.keys.SearchColumn)
		return
	}
	term, column := EncodeSearch(c.state.Search)
	q.Set(c.keys.SearchTerm, term)
	if column == "" {
		q.Del(c.keys.SearchColumn)
	} else {
		q.Set(c.keys.SearchColumn, column)
	}
}

func (c *Controller) syncPagination(q url.Values) {
	if c.state.Pagination.PageIndex == c.defaults.Pagination.PageIndex {
		q.Del(c.keys.Page)
	} else {
		q.Set(c.keys.Page, EncodePage(c.state.Pagination.PageIndex))
	}
	if c.state.Pagination.PageSize == c.defaults.Pagination.PageSize {
		q.Del(c.keys.PageSize)
	} else {
		q.Set(c.keys.PageSize, EncodePageSize(c.state.Pagination.PageSize))
	}
}

func (c *Controller) syncHiddenColumns(q url.Values) {
	if c.state.HiddenColumns.Equal(c.defaults.HiddenColumns) {
		q.Del(c.keys.HiddenColumns)
		return
	}
	q.Set(c.keys.HiddenColumns, EncodeHiddenColumns(c.state.HiddenColumns))
}

func (c *Controller) validateSorting(s Sorting) error {
	for _, rule := range s {
		if !c.sortable.Has(rule.ColumnID) {
			return fmt.Errorf("%w: column %q is not sortable", ErrInvalidState, rule.ColumnID)
		}
	}
	return nil
}

func (c *Controller) validateSearch(s Search) error {
	if s.Column == "" {
		return nil
	}
	if !c.columns.Has(s.Column) {
		return fmt.Errorf("%w: unknown search column %q", ErrInvalidState, s.Column)
	}
	if !c.searchable.Has(s.Column) {
		return fmt.Errorf("%w: column %q is not searchable", ErrInvalidState, s.Column)
	}
	return nil
}

func (c *Controller) knownColumns(ids HiddenColumns) HiddenColumns {
	out := HiddenColumns{}
	for _, id := range ids {
		if c.columns.Has(id) && !out.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
