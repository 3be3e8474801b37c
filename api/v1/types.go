package v1

import (
	"time"

	"github.com/gctalent/talent-backoffice/pkg/tablestate"
)

// Defines values for TableMode.
const (
	TableModeServer TableMode = "server"
	TableModeMemory TableMode = "memory"
)

// TableMode tells where sorting, search and pagination run.
type TableMode string

// Column defines model for Column.
type Column struct {
	Header     string `json:"header"`
	Id         string `json:"id"`
	Pinned     bool   `json:"pinned"`
	Searchable bool   `json:"searchable"`
	Sortable   bool   `json:"sortable"`
}

// Table defines model for Table.
type Table struct {
	Columns []Column  `json:"columns"`
	Mode    TableMode `json:"mode"`
	Name    string    `json:"name"`
	Title   string    `json:"title"`
}

// TableList defines model for TableList.
type TableList struct {
	Tables []Table `json:"tables"`
}

// TableView is one rendered table view.
type TableView struct {
	// Location is the canonical rows URL of the view.
	Location string               `json:"location"`
	Model    tablestate.Model     `json:"model"`
	Query    string               `json:"query"`
	State    tablestate.ViewState `json:"state"`
	Table    string               `json:"table"`
}

// StatePatch defines model for StatePatch.
type StatePatch struct {
	HiddenColumns *tablestate.HiddenColumns `json:"hiddenColumns,omitempty"`
	Pagination    *tablestate.Pagination    `json:"pagination,omitempty"`
	Reset         *bool                     `json:"reset,omitempty"`
	Search        *tablestate.Search        `json:"search,omitempty"`
	Sorting       *tablestate.Sorting       `json:"sorting,omitempty"`
	ToggleColumn  *string                   `json:"toggleColumn,omitempty"`
	ToggleSort    *string                   `json:"toggleSort,omitempty"`
}

// SelectionRequest selects rows by id or by index in the current page.
// Selected defaults to true.
type SelectionRequest struct {
	Clear    *bool    `json:"clear,omitempty"`
	Indexes  []int    `json:"indexes,omitempty"`
	Page     *bool    `json:"page,omitempty"`
	RowIds   []string `json:"rowIds,omitempty"`
	Selected *bool    `json:"selected,omitempty"`
}

// Selection defines model for Selection.
type Selection struct {
	CreatedAt time.Time  `json:"createdAt"`
	Id        string     `json:"id"`
	RowIds    []string   `json:"rowIds"`
	Table     string     `json:"table"`
	UpdatedAt time.Time  `json:"updatedAt"`
	View      *TableView `json:"view,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Error string `json:"error"`
}

// GetTableRowsParams defines parameters for GetTableRows.
type GetTableRowsParams struct {
	// Selection seeds the row selection from a stored selection.
	Selection *string `form:"selection,omitempty" json:"selection,omitempty"`
}

// PatchTableStateParams defines parameters for PatchTableState.
type PatchTableStateParams struct {
	Selection *string `form:"selection,omitempty" json:"selection,omitempty"`
}

// ExportTableParams defines parameters for ExportTable.
type ExportTableParams struct {
	// Selection exports the rows of a stored selection instead of the view.
	Selection *string `form:"selection,omitempty" json:"selection,omitempty"`
}

// PatchTableStateJSONRequestBody defines body for PatchTableState for application/json ContentType.
type PatchTableStateJSONRequestBody = StatePatch

// UpdateSelectionJSONRequestBody defines body for UpdateSelection for application/json ContentType.
type UpdateSelectionJSONRequestBody = SelectionRequest
