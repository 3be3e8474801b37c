package tablestate

import (
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	DefaultPageIndex = 0
	DefaultPageSize  = 10

	// MaxRowOffset bounds the end of any page, so offsets stay positive and
	// fit a SQL OFFSET.
	MaxRowOffset = 1<<31 - 1
)

// SortRule orders rows by one column.
type SortRule struct {
	ColumnID string `json:"id"`
	Desc     bool   `json:"desc"`
}

type Sorting []SortRule

func (s Sorting) Equal(other Sorting) bool {
	return slices.Equal(s, other)
}

// Search restricts rows to those matching Term. An empty Column searches
// every searchable column.
type Search struct {
	Term   string `json:"term"`
	Column string `json:"column,omitempty"`
}

func (s Search) IsGlobal() bool {
	return s.Column == ""
}

type Pagination struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// Valid reports whether the page lies within MaxRowOffset rows.
func (p Pagination) Valid() bool {
	if p.PageIndex < 0 || p.PageSize <= 0 || p.PageSize > MaxRowOffset {
		return false
	}
	return p.PageIndex < MaxRowOffset/p.PageSize
}

// Offset returns the index of the first row of the page, 0 when the
// pagination is not valid.
func (p Pagination) Offset() int {
	if !p.Valid() {
		return 0
	}
	return p.PageIndex * p.PageSize
}

// HiddenColumns is a set of column ids. Order is not significant.
type HiddenColumns []string

func (h HiddenColumns) Set() sets.Set[string] {
	return sets.New(h...)
}

func (h HiddenColumns) Has(id string) bool {
	return slices.Contains(h, id)
}

func (h HiddenColumns) Equal(other HiddenColumns) bool {
	return h.Set().Equal(other.Set())
}

// RowSelection maps row ids to true. Absent ids are not selected.
type RowSelection map[string]bool

func (r RowSelection) IDs() []string {
	ids := make([]string, 0, len(r))
	for id, selected := range r {
		if selected {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (r RowSelection) Clone() RowSelection {
	out := make(RowSelection, len(r))
	for id, selected := range r {
		if selected {
			out[id] = true
		}
	}
	return out
}

// ViewState is the full view configuration of one table instance.
type ViewState struct {
	Sorting       Sorting       `json:"sorting"`
	Search        Search        `json:"search"`
	Pagination    Pagination    `json:"pagination"`
	HiddenColumns HiddenColumns `json:"hiddenColumns"`
	RowSelection  RowSelection  `json:"rowSelection"`
}

// InitialState holds the caller's defaults. Nil fields are absent and fall
// back to the hard-coded defaults.
type InitialState struct {
	Sorting       Sorting
	Search        *Search
	Pagination    *Pagination
	HiddenColumns HiddenColumns
	RowSelection  RowSelection
}

// DefaultViewState returns the hard-coded defaults.
func DefaultViewState() ViewState {
	return ViewState{
		Sorting:       Sorting{},
		Pagination:    Pagination{PageIndex: DefaultPageIndex, PageSize: DefaultPageSize},
		HiddenColumns: HiddenColumns{},
		RowSelection:  RowSelection{},
	}
}
